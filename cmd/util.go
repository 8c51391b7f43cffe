package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"tradedesk/api"
	"tradedesk/internal/logger"
	"tradedesk/internal/repository"
	"tradedesk/internal/service"
	"tradedesk/internal/util"

	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const oracleRequestsPerSecond = 2

func CloseDependencies(handler *api.ApiHandler) {
	err := handler.Db.Close()
	if err != nil {
		log.Fatalf("failed to close db: %v", err)
	}
}

func NewOracleRepository(secrets util.OracleSecrets) (repository.OracleRepository, error) {
	var oracle repository.OracleRepository
	switch strings.ToLower(secrets.Backend) {
	case "gpt":
		gptRepository, err := repository.NewGptRepository(secrets.GptApiKey)
		if err != nil {
			return nil, err
		}
		oracle = gptRepository
	case "", "ollama":
		oracle = repository.NewOllamaOracleRepository(secrets.OllamaUrl, secrets.OllamaModel)
	default:
		return nil, fmt.Errorf("unknown oracle backend %q", secrets.Backend)
	}

	return repository.NewBreakerOracleRepository(secrets.Backend, oracle, oracleRequestsPerSecond), nil
}

func InitializeDependencies() (*api.ApiHandler, error) {
	secrets, err := util.LoadSecrets()
	if err != nil {
		return nil, fmt.Errorf("failed to load secrets: %w", err)
	}
	return InitializeDependenciesFromSecrets(secrets)
}

func InitializeDependenciesFromSecrets(secrets *util.Secrets) (*api.ApiHandler, error) {
	oracleRepository, err := NewOracleRepository(secrets.Oracle)
	if err != nil {
		return nil, err
	}

	dbConn, err := sql.Open("postgres", secrets.Db.ToConnectionStr())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to db: %w", err)
	}

	tradeRepository := repository.NewTradeRepository(dbConn)
	userAccountRepository := repository.NewUserAccountRepository(dbConn)
	allocationRepository := repository.NewAllocationRepository(dbConn)
	watchlistRepository := repository.NewWatchlistRepository(dbConn)

	var (
		priceRepository  repository.PriceRepository
		brokerRepository repository.BrokerRepository
	)
	if secrets.Alpaca.ApiKey != "" {
		alpacaRepository, err := repository.NewAlpacaRepository(secrets.Alpaca.ApiKey, secrets.Alpaca.ApiSecret, secrets.Alpaca.Endpoint)
		if err != nil {
			return nil, err
		}
		priceRepository = alpacaRepository
		if secrets.Alpaca.SubmitOrders {
			brokerRepository = alpacaRepository
		}
	}
	if strings.EqualFold(os.Getenv("TRADEDESK_ENV"), "test") && secrets.Alpaca.SubmitOrders {
		brokerRepository = NewPaperBrokerRepository(brokerRepository)
	}

	allocationService := service.NewAllocationService(
		dbConn,
		oracleRepository,
		tradeRepository,
		userAccountRepository,
		allocationRepository,
		brokerRepository,
		secrets.Allocation.MaxAttempts,
	)
	tradeService := service.NewTradeService(
		dbConn,
		tradeRepository,
		userAccountRepository,
		priceRepository,
	)

	apiHandler := &api.ApiHandler{
		Db:                   dbConn,
		ApiRequestRepository: repository.ApiRequestRepositoryHandler{},
		AllocationService:    allocationService,
		TradeService:         tradeService,
		WatchlistService:     service.NewWatchlistService(watchlistRepository),
		AccountService:       service.NewAccountService(userAccountRepository, tradeRepository),
		ChatService:          service.NewChatService(oracleRepository),
		JwtDecodeToken:       secrets.Jwt,
	}

	return apiHandler, nil
}

// StartPriceRefresh schedules RefreshPrices on a cron schedule. The caller
// stops the returned scheduler.
func StartPriceRefresh(handler *api.ApiHandler, schedule string) (*cron.Cron, error) {
	scheduler := cron.New()
	_, err := scheduler.AddFunc(schedule, func() {
		ctx := logger.WithContext(context.Background(), zap.S().With("job", "refreshPrices"))
		if _, err := handler.TradeService.RefreshPrices(ctx); err != nil {
			zap.S().Errorw("failed to refresh prices", "error", err.Error())
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid price refresh schedule %q: %w", schedule, err)
	}
	scheduler.Start()
	return scheduler, nil
}
