// test/helpers/helpers.go
package helpers

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/mfigueroa/stockpos-be/internal/adapters/db"
	"github.com/mfigueroa/stockpos-be/internal/core/domain"
	"github.com/mfigueroa/stockpos-be/internal/pkg/config"
)

// TestDB represents a test database instance
type TestDB struct {
	PgxPool  *pgxpool.Pool
	Database *db.Database
	Resource *dockertest.Resource
	Pool     *dockertest.Pool
	Config   *db.Config
}

// TestRedis represents a test Redis instance
type TestRedis struct {
	Client *redis.Client
	Server *miniredis.Miniredis
}

// TestLogger returns a logger that stays quiet unless -v is set.
func TestLogger() *slog.Logger {
	level := slog.LevelError
	if testing.Verbose() {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

// SetupTestDB creates a PostgreSQL container for integration tests
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	require.NoError(t, err, "Could not connect to Docker")

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=test",
			"POSTGRES_PASSWORD=test",
			"POSTGRES_DB=test_stockpos",
			"listen_addresses = '*'",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err, "Could not start PostgreSQL container")

	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Logf("Could not purge resource: %s", err)
		}
	})

	dbConfig := &db.Config{
		Host:               "localhost",
		Port:               resource.GetPort("5432/tcp"),
		User:               "test",
		Password:           "test",
		Database:           "test_stockpos",
		SSLMode:            "disable",
		MaxConnections:     5,
		MinConnections:     1,
		MaxConnLifetime:    time.Hour,
		MaxConnIdleTime:    time.Minute * 30,
		HealthCheckPeriod:  time.Minute,
		ConnectTimeout:     time.Second * 10,
		EnableQueryLogging: testing.Verbose(),
	}

	var database *db.Database
	err = pool.Retry(func() error {
		ctx := context.Background()
		var err error
		database, err = db.NewDatabase(ctx, dbConfig, TestLogger())
		if err != nil {
			return err
		}
		return database.Ping(ctx)
	})
	require.NoError(t, err, "Could not connect to PostgreSQL")

	ctx := context.Background()
	migrationConfig := &db.MigrationConfig{
		DatabaseURL: fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s",
			dbConfig.User, dbConfig.Password, dbConfig.Host, dbConfig.Port,
			dbConfig.Database, dbConfig.SSLMode),
		UseEmbedded: true,
		TableName:   "schema_migrations",
		SchemaName:  "public",
	}

	err = db.RunMigrationsWithRetry(ctx, migrationConfig, TestLogger(), 3)
	require.NoError(t, err, "Could not run migrations")

	return &TestDB{
		PgxPool:  database.Pool(),
		Database: database,
		Resource: resource,
		Pool:     pool,
		Config:   dbConfig,
	}
}

// SetupTestRedis starts an in-process miniredis and a client bound to
// it. Both are torn down with the test.
func SetupTestRedis(t *testing.T) *TestRedis {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	return &TestRedis{Client: client, Server: mr}
}

// LoadTestConfig returns a test configuration
func LoadTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "test-api",
			Environment: "test",
			Version:     "test",
			LogLevel:    "debug",
			LogFormat:   "text",
			Debug:       true,
		},
		Database: config.DatabaseConfig{
			Host:               "localhost",
			Port:               "5432",
			User:               "test",
			Password:           "test",
			Name:               "test_stockpos",
			SSLMode:            "disable",
			MaxConnections:     10,
			MinConnections:     2,
			EnableQueryLogging: true,
		},
		Redis: config.RedisConfig{
			Host:     "localhost",
			Port:     "6379",
			DB:       0,
			TTL:      time.Hour,
			PoolSize: 10,
		},
		Reports: config.ReportsConfig{
			S3Prefix:      "reports/sales",
			DefaultPeriod: 30 * 24 * time.Hour,
			ReorderTTL:    24 * time.Hour,
		},
		FileProcessing: config.FileProcessingConfig{
			PDFMaxSizeMB:      50,
			ProcessingTimeout: 5 * time.Minute,
			TempDir:           "/tmp",
			CleanupInterval:   time.Hour,
			CleanupMaxAge:     24 * time.Hour,
		},
		Security: config.SecurityConfig{
			RateLimitRequests: 100,
			RateLimitDuration: time.Minute,
			AllowedOrigins:    []string{"*"},
			SecureHeaders:     false,
			RequestIDHeader:   "X-Request-ID",
		},
		Server: config.ServerConfig{
			Host:         "localhost",
			Port:         "8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
	}
}

// CreateTestItem creates a test item
func CreateTestItem(overrides ...func(*domain.Item)) *domain.Item {
	now := time.Now().UTC()
	item := &domain.Item{
		ID:           uuid.New(),
		Name:         "Colombian Roast 500g",
		SKU:          fmt.Sprintf("CR-%s", uuid.NewString()[:8]),
		Description:  "Whole bean dark roast",
		Price:        decimal.NewFromFloat(12.50),
		TotalAmount:  decimal.NewFromInt(40),
		ReorderLevel: decimal.NewFromInt(5),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	for _, override := range overrides {
		override(item)
	}

	return item
}

// CreateTestAllocation creates a retail allocation for an item
func CreateTestAllocation(itemID uuid.UUID, quantity decimal.Decimal) *domain.RetailAllocation {
	now := time.Now().UTC()
	return &domain.RetailAllocation{
		ID:        uuid.New(),
		ItemID:    itemID,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// TruncateAllTables truncates all tables in the test database
func TruncateAllTables(t *testing.T, db *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()
	tables := []string{
		"ledger_entries",
		"sale_groups",
		"retail_allocations",
		"items",
	}

	for _, table := range tables {
		_, err := db.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err, "Failed to truncate table: %s", table)
	}
}

// SeedItems inserts items with matching retail allocations directly
func SeedItems(t *testing.T, db *pgxpool.Pool, items []domain.Item, retail map[uuid.UUID]decimal.Decimal) {
	t.Helper()

	ctx := context.Background()
	for _, item := range items {
		_, err := db.Exec(ctx, `
			INSERT INTO items (id, name, sku, description, price, total_amount, reorder_level, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			item.ID, item.Name, item.SKU, item.Description,
			item.Price, item.TotalAmount, item.ReorderLevel,
			item.CreatedAt, item.UpdatedAt,
		)
		require.NoError(t, err, "Failed to seed item")

		if qty, ok := retail[item.ID]; ok {
			_, err := db.Exec(ctx, `
				INSERT INTO retail_allocations (id, item_id, quantity, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5)`,
				uuid.New(), item.ID, qty, item.CreatedAt, item.UpdatedAt,
			)
			require.NoError(t, err, "Failed to seed retail allocation")
		}
	}
}

// AssertEventuallyWithTimeout polls the condition until it holds or
// the timeout expires.
func AssertEventuallyWithTimeout(t *testing.T, condition func() bool, timeout time.Duration, msg string) {
	t.Helper()

	for deadline := time.Now().Add(timeout); time.Now().Before(deadline); {
		if condition() {
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
	t.Errorf("Condition not met within %v: %s", timeout, msg)
}

// CreateTempFile writes content to a temp file that is removed with
// the test.
func CreateTempFile(t *testing.T, content []byte, extension string) string {
	t.Helper()

	path := CreateTempFileIn(t, "", content, extension)
	t.Cleanup(func() { os.Remove(path) })
	return path
}

// CreateTempFileIn writes content to a temp file in a specific
// directory. The caller owns cleanup.
func CreateTempFileIn(t *testing.T, dir string, content []byte, extension string) string {
	t.Helper()

	file, err := os.CreateTemp(dir, "test-*"+extension)
	require.NoError(t, err, "Failed to create temp file")
	_, err = file.Write(content)
	require.NoError(t, err, "Failed to write to temp file")
	require.NoError(t, file.Close())

	return file.Name()
}

// SetFileModTime backdates a file's modification time
func SetFileModTime(t *testing.T, path string, modTime time.Time) {
	t.Helper()

	require.NoError(t, os.Chtimes(path, modTime, modTime), "Failed to set file mod time")
}
