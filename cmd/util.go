package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"strings"

	"wealthtracker/api"
	integration_tests "wealthtracker/integration-tests"
	"wealthtracker/internal/app"
	"wealthtracker/internal/logger"
	"wealthtracker/internal/repository"
	"wealthtracker/internal/service"
	l1_service "wealthtracker/internal/service/l1"
	l2_service "wealthtracker/internal/service/l2"
	"wealthtracker/internal/util"
	"wealthtracker/pkg/retry"
	"wealthtracker/pkg/yahoo"

	_ "github.com/lib/pq"
)

func CloseDependencies(handler *api.ApiHandler) {
	if handler == nil || handler.Db == nil {
		return
	}
	if err := handler.Db.Close(); err != nil {
		logger.New().Errorf("failed to close db: %v", err)
	}
}

func newQuoteRepository(secrets *util.Secrets) repository.QuoteRepository {
	retryHandler := retry.New(retry.Config{
		MaxAttempts:    secrets.Quotes.MaxAttempts,
		BaseDelay:      secrets.Quotes.BaseDelay(),
		AttemptTimeout: secrets.Quotes.Timeout(),
	})

	yahooClient := yahoo.NewClient(
		yahoo.WithBaseURL(secrets.Quotes.BaseURL),
		yahoo.WithHTTPClient(&http.Client{Timeout: secrets.Quotes.Timeout()}),
	)
	yahooRepository := repository.NewYahooQuoteRepository(yahooClient, retryHandler)

	if !secrets.Alpaca.Enabled() {
		return yahooRepository
	}
	// alpaca has the fresher quotes, yahoo still serves history
	return repository.NewAlpacaQuoteRepository(
		secrets.Alpaca.ApiKey,
		secrets.Alpaca.ApiSecret,
		secrets.Alpaca.Endpoint,
		retryHandler,
		yahooRepository,
	)
}

func InitializeDependencies() (*api.ApiHandler, error) {
	ctx := context.Background()
	log := logger.New()

	secrets, err := util.LoadSecrets()
	if err != nil {
		return nil, fmt.Errorf("failed to load secrets: %w", err)
	}

	dbConn, err := sql.Open("postgres", secrets.Db.ToConnectionStr())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to db: %w", err)
	}

	assetRepository := repository.NewAssetRepository(dbConn)
	priceHistoryRepository := repository.NewPriceHistoryRepository(dbConn)
	quoteRepository := newQuoteRepository(secrets)

	if strings.EqualFold(os.Getenv(util.EnvVar), "test") {
		quoteRepository = integration_tests.NewMockQuoteRepositoryForTests()
	}

	backfillService := l1_service.NewBackfillService(
		quoteRepository,
		priceHistoryRepository,
		secrets.History.Anchor(),
		secrets.History.BatchSize,
	)
	refreshService := l2_service.NewRefreshService(
		assetRepository,
		priceHistoryRepository,
		quoteRepository,
		secrets.Quotes.RateLimitDelay(),
		secrets.Quotes.LiveQuoteWorkers,
	)
	valuationService := l2_service.NewValuationService(
		assetRepository,
		priceHistoryRepository,
		secrets.History.TrendThresholdPct,
	)

	var emailService service.EmailService
	if secrets.SES.Region != "" && secrets.SES.FromEmail != "" {
		emailRepository, err := repository.NewEmailRepository(ctx, secrets.SES.Region, secrets.SES.FromEmail)
		if err != nil {
			return nil, fmt.Errorf("failed to create email repository: %w", err)
		}
		emailService = service.NewEmailService(emailRepository)
	} else {
		log.Info("ses not configured, refresh reports disabled")
	}

	apiHandler := &api.ApiHandler{
		Db:                 dbConn,
		BackfillService:    backfillService,
		RefreshService:     refreshService,
		ValuationService:   valuationService,
		PortfolioPromptApp: app.NewPortfolioPromptApp(valuationService, assetRepository),
		AssetRepository:    assetRepository,
		JwtDecodeToken:     secrets.Jwt,
		JwtIssuer:          secrets.JwtIssuer,
	}
	apiHandler.ScheduledRefreshHandler = app.ScheduledRefreshHandler{
		RefreshService: refreshService,
		EmailService:   emailService,
		ReportEmail:    secrets.Report.ToEmail,
	}

	return apiHandler, nil
}
