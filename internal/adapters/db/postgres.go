// internal/adapters/db/postgres.go
package db

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
)

// Config carries the connection and pool settings for Postgres.
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	SSLMode  string

	MaxConnections    int32
	MinConnections    int32
	MaxConnLifetime   time.Duration
	MaxConnIdleTime   time.Duration
	HealthCheckPeriod time.Duration
	ConnectTimeout    time.Duration

	EnableQueryLogging bool
}

// withDefaults fills any zero-valued settings so a sparse Config still
// produces a usable pool.
func (c *Config) withDefaults() *Config {
	out := *c
	if out.Host == "" {
		out.Host = "localhost"
	}
	if out.Port == "" {
		out.Port = "5432"
	}
	if out.User == "" {
		out.User = "stockpos"
	}
	if out.Database == "" {
		out.Database = "stockpos"
	}
	if out.SSLMode == "" {
		out.SSLMode = "prefer"
	}
	if out.MaxConnections == 0 {
		out.MaxConnections = 25
	}
	if out.MinConnections == 0 {
		out.MinConnections = 5
	}
	if out.MaxConnLifetime == 0 {
		out.MaxConnLifetime = time.Hour
	}
	if out.MaxConnIdleTime == 0 {
		out.MaxConnIdleTime = 30 * time.Minute
	}
	if out.HealthCheckPeriod == 0 {
		out.HealthCheckPeriod = time.Minute
	}
	if out.ConnectTimeout == 0 {
		out.ConnectTimeout = 10 * time.Second
	}
	return &out
}

// dsn renders the config as a postgres:// URL. The password is
// URL-escaped so special characters survive the round trip.
func (c *Config) dsn() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   c.Host + ":" + c.Port,
		Path:   c.Database,
	}
	q := url.Values{}
	q.Set("sslmode", c.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// DefaultConfig returns the settings used when no config is supplied.
func DefaultConfig() *Config {
	return (&Config{}).withDefaults()
}

// Database wraps a pgx connection pool. All adapters in this package
// issue their queries through it.
type Database struct {
	pool   *pgxpool.Pool
	config *Config
	logger *slog.Logger
}

// NewDatabase opens a connection pool and verifies it with a ping.
func NewDatabase(ctx context.Context, config *Config, logger *slog.Logger) (*Database, error) {
	if config == nil {
		config = DefaultConfig()
	} else {
		config = config.withDefaults()
	}

	poolCfg, err := pgxpool.ParseConfig(config.dsn())
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}

	poolCfg.MaxConns = config.MaxConnections
	poolCfg.MinConns = config.MinConnections
	poolCfg.MaxConnLifetime = config.MaxConnLifetime
	poolCfg.MaxConnIdleTime = config.MaxConnIdleTime
	poolCfg.HealthCheckPeriod = config.HealthCheckPeriod
	poolCfg.ConnConfig.ConnectTimeout = config.ConnectTimeout

	// Cache prepared statement descriptions rather than full prepared
	// statements, which keeps things working behind pgbouncer.
	poolCfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheDescribe
	poolCfg.ConnConfig.StatementCacheCapacity = 512

	if config.EnableQueryLogging {
		poolCfg.ConnConfig.Tracer = &tracelog.TraceLog{
			Logger:   queryLogger{logger: logger},
			LogLevel: tracelog.LogLevelDebug,
		}
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, config.ConnectTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	logger.Info("database pool ready",
		slog.String("host", config.Host),
		slog.String("database", config.Database),
		slog.Int("max_conns", int(config.MaxConnections)),
	)

	return &Database{pool: pool, config: config, logger: logger}, nil
}

// Pool exposes the underlying pgx pool for callers that need direct
// access, such as the seeder and migration runner.
func (db *Database) Pool() *pgxpool.Pool {
	return db.pool
}

// Close releases all pooled connections.
func (db *Database) Close() {
	db.logger.Info("closing database pool")
	db.pool.Close()
}

// Ping checks connectivity on a pooled connection.
func (db *Database) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// Health reports pool utilization plus a liveness probe result. The
// readiness endpoint folds these into its response details.
func (db *Database) Health(ctx context.Context) map[string]interface{} {
	stat := db.pool.Stat()
	health := map[string]interface{}{
		"total_connections":    stat.TotalConns(),
		"idle_connections":     stat.IdleConns(),
		"acquired_connections": stat.AcquiredConns(),
		"max_connections":      stat.MaxConns(),
		"acquire_count":        stat.AcquireCount(),
		"acquire_duration":     stat.AcquireDuration().String(),
	}

	probeCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	var one int
	if err := db.pool.QueryRow(probeCtx, "SELECT 1").Scan(&one); err != nil {
		health["status"] = "unhealthy"
		health["error"] = err.Error()
	} else {
		health["status"] = "healthy"
	}
	return health
}

// Query runs a query on the pool.
func (db *Database) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	return db.pool.Query(ctx, sql, args...)
}

// QueryRow runs a single-row query on the pool.
func (db *Database) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	return db.pool.QueryRow(ctx, sql, args...)
}

// Exec runs a statement on the pool.
func (db *Database) Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	return db.pool.Exec(ctx, sql, args...)
}

// queryLogger adapts slog to the pgx tracelog interface.
type queryLogger struct {
	logger *slog.Logger
}

func (l queryLogger) Log(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]interface{}) {
	attrs := make([]slog.Attr, 0, len(data))
	for k, v := range data {
		attrs = append(attrs, slog.Any(k, v))
	}
	l.logger.LogAttrs(ctx, slogLevel(level), msg, attrs...)
}

func slogLevel(level tracelog.LogLevel) slog.Level {
	switch level {
	case tracelog.LogLevelTrace, tracelog.LogLevelDebug:
		return slog.LevelDebug
	case tracelog.LogLevelInfo:
		return slog.LevelInfo
	case tracelog.LogLevelWarn:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
