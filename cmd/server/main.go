package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/adiwidodo/perjadin/internal/application/port"
	"github.com/adiwidodo/perjadin/internal/application/service"
	"github.com/adiwidodo/perjadin/internal/config"
	"github.com/adiwidodo/perjadin/internal/document"
	"github.com/adiwidodo/perjadin/internal/domain/expense"
	"github.com/adiwidodo/perjadin/internal/infrastructure/authz"
	"github.com/adiwidodo/perjadin/internal/infrastructure/eventlog"
	"github.com/adiwidodo/perjadin/internal/infrastructure/persistence/repository"
	"github.com/adiwidodo/perjadin/internal/infrastructure/persistence/sqlite"
	httpapi "github.com/adiwidodo/perjadin/internal/interfaces/http"
	"github.com/adiwidodo/perjadin/internal/storage"
	"github.com/adiwidodo/perjadin/pkg/database"
	"github.com/adiwidodo/perjadin/pkg/utils"
)

func main() {
	_ = gotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting travel report finalization service",
		zap.Int("port", cfg.Server.Port))

	db, err := database.Open(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	migrator := database.NewMigrator(db, logger)
	if err := migrator.RunMigrations(cfg.Database.MigrationsDir); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	txManager := sqlite.NewDB(db, logger)

	expenseRepo := repository.NewExpenseRepository(db, logger)
	narrativeRepo := repository.NewNarrativeRepository(db, logger)
	reviewRepo := repository.NewReviewRepository(db, logger)
	fullboardRepo := repository.NewFullboardPriceRepository(db, logger)
	reportRepo := repository.NewReportRepository(db, expenseRepo, narrativeRepo, reviewRepo, logger)

	authorizer := authz.NewEmployeeAuthorizer(db, logger)
	publisher := eventlog.NewPublisher(logger)
	kvLogger := utils.NewKVLogger(logger)

	reportService := service.NewReportService(
		reportRepo, expenseRepo, narrativeRepo, reviewRepo, txManager, publisher, kvLogger)
	reviewService := service.NewReviewService(
		reportRepo, reviewRepo, authorizer, txManager, publisher, kvLogger)

	// fullboard tiers are seed data; a startup snapshot keeps the
	// aggregator free of database round trips
	rates, err := loadRateTable(fullboardRepo)
	if err != nil {
		logger.Fatal("Failed to load fullboard rate table", zap.Error(err))
	}
	aggregator := expense.NewAggregator(rates, logger)

	compiler := document.NewCompiler(reportRepo, aggregator, logger)
	writer := document.NewStatementWriter(cfg.Statement.AgencyName, cfg.Statement.City, logger)
	store := storage.NewDocumentStore(cfg.Statement.OutputDir, logger)

	handlers := httpapi.NewHandlers(
		reportService, reviewService, compiler, writer,
		fullboardRepo, store, kvLogger)

	server := httpapi.NewServer(httpapi.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, handlers, kvLogger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
	logger.Info("Server exited")
}

func loadRateTable(repo port.FullboardPriceRepository) (expense.RateTable, error) {
	prices, err := repo.List(context.Background())
	if err != nil {
		return nil, err
	}
	table := make(expense.RateTable, len(prices))
	for _, p := range prices {
		table[p.ID] = p.Rate
	}
	return table, nil
}
