package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/gofactura/internal/adapter/http"
	"github.com/iho/gofactura/internal/adapter/http/handler"
	postgresRepo "github.com/iho/gofactura/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/gofactura/internal/adapter/repository/redis"
	"github.com/iho/gofactura/internal/adapter/source/jsonfile"
	"github.com/iho/gofactura/internal/infrastructure/config"
	"github.com/iho/gofactura/internal/infrastructure/metrics"
	"github.com/iho/gofactura/internal/infrastructure/postgres"
	"github.com/iho/gofactura/internal/infrastructure/redis"
	"github.com/iho/gofactura/internal/usecase"
)

func main() {
	// Setup logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if cfg.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Setup log level
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	ctx := context.Background()

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	connectCtx, cancelConnect := context.WithTimeout(ctx, cfg.DatabaseTimeout)
	defer cancelConnect()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(connectCtx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(connectCtx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Source file store
	sourceStore, err := jsonfile.NewStore(cfg.SourceFolder)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open source folder")
	}

	appMetrics := metrics.New()

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	invoiceRepo := postgresRepo.NewInvoiceRepository(pool, appMetrics)
	retrier := postgresRepo.NewRetrier()
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	cache := redisRepo.NewCache(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	clock := usecase.SystemClock{}

	// Initialize use cases
	invoiceUC := usecase.NewInvoiceUseCase(txManager, invoiceRepo, idGen, clock, cache, appMetrics)
	importUC := usecase.NewImportUseCase(txManager, invoiceRepo, sourceStore, idGen, clock, cache, retrier, appMetrics)
	reportUC := usecase.NewReportUseCase(invoiceRepo, clock, cache, appMetrics)

	// Initialize handlers
	invoiceHandler := handler.NewInvoiceHandler(invoiceUC, importUC, sourceStore)
	reportHandler := handler.NewReportHandler(reportUC)
	sourceFileHandler := handler.NewSourceFileHandler(sourceStore)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		InvoiceHandler:    invoiceHandler,
		ReportHandler:     reportHandler,
		SourceFileHandler: sourceFileHandler,
		HealthHandler:     healthHandler,
		IdempotencyStore:  idempotencyStore,
		IdempotencyTTL:    cfg.IdempotencyTTL,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
