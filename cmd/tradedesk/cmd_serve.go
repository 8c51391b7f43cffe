package main

import (
	"tradedesk/cmd"
	"tradedesk/internal/util"

	"github.com/spf13/cobra"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API with the price refresh job",
	RunE: func(c *cobra.Command, args []string) error {
		secrets, err := util.LoadSecrets()
		if err != nil {
			return err
		}
		if servePort != 0 {
			secrets.Port = servePort
		}

		apiHandler, err := cmd.InitializeDependenciesFromSecrets(secrets)
		if err != nil {
			return err
		}
		defer cmd.CloseDependencies(apiHandler)

		scheduler, err := cmd.StartPriceRefresh(apiHandler, secrets.Allocation.PriceRefreshSchedule)
		if err != nil {
			return err
		}
		defer scheduler.Stop()

		return apiHandler.StartApi(secrets.Port)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from secrets)")
}
