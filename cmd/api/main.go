package main

import (
	"log"
	"os"

	"tradedesk/cmd"
	"tradedesk/internal/util"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

func main() {
	zap.S().Infow("starting api", "commit", os.Getenv("commit_hash"))

	secrets, err := util.LoadSecrets()
	if err != nil {
		log.Fatal(err)
	}
	apiHandler, err := cmd.InitializeDependenciesFromSecrets(secrets)
	if err != nil {
		log.Fatal(err)
	}
	defer cmd.CloseDependencies(apiHandler)

	scheduler, err := cmd.StartPriceRefresh(apiHandler, secrets.Allocation.PriceRefreshSchedule)
	if err != nil {
		log.Fatal(err)
	}
	defer scheduler.Stop()

	err = apiHandler.StartApi(secrets.Port)
	if err != nil {
		log.Fatal(err)
	}
}
