// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/mfigueroa/stockpos-be/internal/adapters/db"
	redis_a "github.com/mfigueroa/stockpos-be/internal/adapters/redis_adapter"
	"github.com/mfigueroa/stockpos-be/internal/adapters/storage"
	"github.com/mfigueroa/stockpos-be/internal/core/ports"
	"github.com/mfigueroa/stockpos-be/internal/core/services"
	"github.com/mfigueroa/stockpos-be/internal/handlers"
	"github.com/mfigueroa/stockpos-be/internal/handlers/middleware"
	"github.com/mfigueroa/stockpos-be/internal/pkg/config"
	"github.com/mfigueroa/stockpos-be/internal/pkg/logger"
)

// Build information injected at compile time
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	slogger := logger.SetupLogger("debug", "json")

	slogger.Info("starting stock and point-of-sale backend",
		slog.String("version", Version),
		slog.String("build_time", BuildTime),
	)

	cfg, err := config.Load(slogger.Logger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Reconfigure logger with loaded settings
	slogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat)
	slogger.Info("configuration loaded",
		slog.String("environment", cfg.App.Environment),
		slog.String("log_level", cfg.App.LogLevel),
	)

	ctx := context.Background()

	if cfg.AWS.UseSecrets {
		sm, err := config.NewAWSSecretsManager(cfg.AWS.Region, cfg.AWS.SecretsName, slogger.Logger)
		if err != nil {
			slogger.Error("failed to initialize secrets manager", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if err := cfg.ApplySecrets(ctx, sm); err != nil {
			slogger.Error("failed to apply secrets", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	deps, err := initializeDependencies(ctx, cfg, slogger)
	if err != nil {
		slogger.Error("failed to initialize dependencies", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer deps.cleanup()

	if !cfg.IsProduction() {
		if err := runMigrations(ctx, cfg, slogger.Logger); err != nil {
			slogger.Error("failed to run migrations", slog.String("error", err.Error()))
		}
	}

	server := setupHTTPServer(cfg, deps, slogger)

	serverErrors := make(chan error, 1)
	go func() {
		slogger.Info("starting HTTP server",
			slog.String("address", cfg.GetServerAddress()),
		)
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slogger.Error("server error", slog.String("error", err.Error()))
		}
	case sig := <-shutdown:
		slogger.Info("shutdown signal received",
			slog.String("signal", sig.String()),
		)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slogger.Error("failed to gracefully shutdown server", slog.String("error", err.Error()))
			server.Close()
		}

		slogger.Info("server shutdown complete")
	}
}

// dependencies holds all application dependencies
type dependencies struct {
	database          *db.Database
	redisClient       *redis.Client
	cache             ports.CacheRepository
	asynqClient       *asynq.Client
	asynqInspector    *asynq.Inspector
	stockService      ports.StockService
	stockReader       ports.StockReader
	itemsHandler      *handlers.ItemsHandler
	itemTypesHandler  *handlers.ItemTypesHandler
	salesHandler      *handlers.SalesHandler
	saleGroupsHandler *handlers.SaleGroupsHandler
	healthHandler     *handlers.HealthHandler
	exportHandler     *handlers.ExportHandler
	importHandler     *handlers.ImportHandler
}

func (d *dependencies) cleanup() {
	if d.asynqClient != nil {
		d.asynqClient.Close()
	}
	if d.redisClient != nil {
		d.redisClient.Close()
	}
	if d.database != nil {
		d.database.Close()
	}
}

func initializeDependencies(ctx context.Context, cfg *config.Config, l *logger.Logger) (*dependencies, error) {
	deps := &dependencies{}
	slogger := l.Logger

	slogger.Info("connecting to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Name),
	)

	database, err := db.NewDatabase(ctx, &db.Config{
		Host:               cfg.Database.Host,
		Port:               cfg.Database.Port,
		User:               cfg.Database.User,
		Password:           cfg.Database.Password,
		Database:           cfg.Database.Name,
		SSLMode:            cfg.Database.SSLMode,
		MaxConnections:     cfg.Database.MaxConnections,
		MinConnections:     cfg.Database.MinConnections,
		MaxConnLifetime:    cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:    cfg.Database.MaxConnIdleTime,
		HealthCheckPeriod:  cfg.Database.HealthCheckPeriod,
		ConnectTimeout:     cfg.Database.ConnectTimeout,
		EnableQueryLogging: cfg.Database.EnableQueryLogging,
	}, slogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	deps.database = database

	slogger.Info("connecting to Redis",
		slog.String("host", cfg.Redis.Host),
		slog.String("port", cfg.Redis.Port),
	)

	redisClient := redis_a.NewClient(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password,
		cfg.Redis.DB, cfg.Redis.PoolSize, cfg.Redis.MinIdleConns)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	deps.redisClient = redisClient
	deps.cache = redis_a.NewCache(redisClient, cfg.Redis.TTL, slogger)

	asynqRedisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Asynq.RedisAddr,
		Password: cfg.Asynq.RedisPassword,
		DB:       cfg.Asynq.RedisDB,
	}
	deps.asynqClient = asynq.NewClient(asynqRedisOpt)
	deps.asynqInspector = asynq.NewInspector(asynqRedisOpt)

	store := db.NewStockStore(database, slogger)
	deps.stockReader = db.NewStockReader(database, slogger)
	deps.stockService = services.NewStockService(store, deps.cache, slogger)

	reportStorage, err := newStorageClient(ctx, cfg, slogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize report storage: %w", err)
	}

	deps.itemsHandler = handlers.NewItemsHandler(deps.stockService, deps.stockReader, deps.cache, slogger)
	deps.itemTypesHandler = handlers.NewItemTypesHandler(deps.stockService, deps.stockReader, slogger)
	deps.salesHandler = handlers.NewSalesHandler(deps.stockService, deps.stockReader, deps.cache, slogger)
	deps.saleGroupsHandler = handlers.NewSaleGroupsHandler(deps.stockService, deps.stockReader, slogger)
	deps.healthHandler = handlers.NewHealthHandler(database, redisClient, deps.asynqInspector, cfg, slogger)
	deps.exportHandler = handlers.NewExportHandler(deps.stockReader, deps.cache, deps.asynqClient,
		reportStorage, cfg.Reports.DefaultPeriod, slogger)

	maxFileSize := int64(cfg.FileProcessing.PDFMaxSizeMB) * 1024 * 1024
	deps.importHandler = handlers.NewImportHandler(deps.asynqClient, slogger, maxFileSize, cfg.FileProcessing.TempDir)

	slogger.Info("all dependencies initialized successfully")
	return deps, nil
}

// newStorageClient picks local disk in development unless an S3 endpoint
// or real AWS credentials are configured.
func newStorageClient(ctx context.Context, cfg *config.Config, slogger *slog.Logger) (storage.StorageClient, error) {
	if cfg.IsDevelopment() && cfg.AWS.S3Endpoint == "" {
		return storage.NewLocalStorage(cfg.FileProcessing.TempDir, slogger), nil
	}

	return storage.NewS3Storage(ctx, &storage.S3Config{
		Region:          cfg.AWS.Region,
		Bucket:          cfg.AWS.S3Bucket,
		AccessKeyID:     cfg.AWS.AccessKeyID,
		SecretAccessKey: cfg.AWS.SecretAccessKey,
		Endpoint:        cfg.AWS.S3Endpoint,
		UsePathStyle:    cfg.AWS.UsePathStyle,
	}, slogger)
}

func setupHTTPServer(cfg *config.Config, deps *dependencies, l *logger.Logger) *http.Server {
	mux := http.NewServeMux()
	registerRoutes(mux, deps)

	// Apply middleware in reverse order (innermost first)
	var handler http.Handler = mux
	handler = middleware.Compression(handler)
	if cfg.Security.SecureHeaders {
		handler = middleware.SecureHeaders(handler)
	}
	if len(cfg.Security.AllowedOrigins) > 0 {
		handler = middleware.CORS(cfg.Security.AllowedOrigins)(handler)
	}
	if cfg.Security.RateLimitRequests > 0 {
		handler = middleware.RateLimit(cfg.Security.RateLimitRequests, cfg.Security.RateLimitDuration)(handler)
	}
	handler = middleware.Recovery(l.Logger)(handler)
	handler = middleware.Logger(l)(handler)
	handler = middleware.RequestID(handler)

	return &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        handler,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
		ErrorLog:       slog.NewLogLogger(l.Handler(), slog.LevelError),
	}
}

func registerRoutes(mux *http.ServeMux, deps *dependencies) {
	apiV1 := "/api/v1"

	mux.HandleFunc("GET /health", deps.healthHandler.Health)
	mux.HandleFunc("GET /ready", deps.healthHandler.Readiness)

	// Item catalog and stock levels
	mux.HandleFunc("POST "+apiV1+"/items", deps.itemsHandler.CreateItem)
	mux.HandleFunc("GET "+apiV1+"/items", deps.itemsHandler.ListItems)
	mux.HandleFunc("GET "+apiV1+"/items/low-stock", deps.itemsHandler.ListLowStock)
	mux.HandleFunc("GET "+apiV1+"/items/{id}", deps.itemsHandler.GetItem)
	mux.HandleFunc("PUT "+apiV1+"/items/{id}", deps.itemsHandler.UpdateItem)
	mux.HandleFunc("DELETE "+apiV1+"/items/{id}", deps.itemsHandler.DeleteItem)
	mux.HandleFunc("POST "+apiV1+"/items/{id}/restock", deps.itemsHandler.RestockItem)
	mux.HandleFunc("PUT "+apiV1+"/items/{id}/allocation", deps.itemsHandler.SetAllocation)
	mux.HandleFunc("GET "+apiV1+"/items/{id}/allocation", deps.itemsHandler.GetAllocation)

	// Item categories
	mux.HandleFunc("POST "+apiV1+"/item-types", deps.itemTypesHandler.CreateItemType)
	mux.HandleFunc("GET "+apiV1+"/item-types", deps.itemTypesHandler.ListItemTypes)
	mux.HandleFunc("GET "+apiV1+"/item-types/{id}", deps.itemTypesHandler.GetItemType)
	mux.HandleFunc("PUT "+apiV1+"/item-types/{id}", deps.itemTypesHandler.UpdateItemType)
	mux.HandleFunc("DELETE "+apiV1+"/item-types/{id}", deps.itemTypesHandler.DeleteItemType)

	// Sales and the movement ledger
	mux.HandleFunc("POST "+apiV1+"/sales", deps.salesHandler.RecordSale)
	mux.HandleFunc("PUT "+apiV1+"/sales/{id}", deps.salesHandler.ReviseSale)
	mux.HandleFunc("GET "+apiV1+"/ledger", deps.salesHandler.ListLedger)
	mux.HandleFunc("GET "+apiV1+"/stats/sales", deps.salesHandler.SaleStats)

	// Grouped customer transactions
	mux.HandleFunc("POST "+apiV1+"/sale-groups", deps.saleGroupsHandler.CreateSaleGroup)
	mux.HandleFunc("GET "+apiV1+"/sale-groups", deps.saleGroupsHandler.ListSaleGroups)
	mux.HandleFunc("GET "+apiV1+"/sale-groups/{id}", deps.saleGroupsHandler.GetSaleGroup)
	mux.HandleFunc("DELETE "+apiV1+"/sale-groups/{id}", deps.saleGroupsHandler.DeleteSaleGroup)

	// Supplier invoice import
	mux.HandleFunc("POST "+apiV1+"/import/invoice", deps.importHandler.ImportInvoicePDF)

	// Exports and async sales reports
	mux.HandleFunc("GET "+apiV1+"/export/excel", deps.exportHandler.ExportExcel)
	mux.HandleFunc("GET "+apiV1+"/export/csv", deps.exportHandler.ExportCSV)
	mux.HandleFunc("GET "+apiV1+"/export/json", deps.exportHandler.ExportJSON)
	mux.HandleFunc("POST "+apiV1+"/export/reports", deps.exportHandler.ScheduleReport)
	mux.HandleFunc("GET "+apiV1+"/export/reports/{jobID}", deps.exportHandler.GetReport)
}

func runMigrations(ctx context.Context, cfg *config.Config, slogger *slog.Logger) error {
	slogger.Info("running database migrations")

	migrationConfig := &db.MigrationConfig{
		DatabaseURL: cfg.GetDatabaseURL(),
		SourcePath:  cfg.Database.MigrationPath,
		TableName:   "schema_migrations",
		SchemaName:  "public",
	}

	return db.RunMigrationsWithRetry(ctx, migrationConfig, slogger, 3)
}
