package sql

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	_defaultQueryTimeout = 5 * time.Second
	_maxRetries          = 5
	_retryDelay          = 2 * time.Second
	_passwordEnv         = "GROUND_CONTROL_POSTGRES_PASSWORD"
)

type PostgresConfig struct {
	DSN          string        `mapstructure:"dsn"`
	QueryTimeout time.Duration `mapstructure:"query_timeout"`
	AutoMigrate  bool          `mapstructure:"auto_migrate"`
}

func withPassword(dsn string) string {
	if pass, ok := os.LookupEnv(_passwordEnv); ok {
		return fmt.Sprintf("%s password=%s", dsn, pass)
	}
	return dsn
}

func NewPosgreORM(config PostgresConfig) (*DB, error) {
	gormDB, err := gorm.Open(postgres.Open(withPassword(config.DSN)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("opening postgres: %w", err)
	}

	timeout := config.QueryTimeout
	if timeout <= 0 {
		timeout = _defaultQueryTimeout
	}
	return &DB{
		DB:                   gormDB,
		autoMigrationEnabled: config.AutoMigrate,
		timeout:              timeout,
		system:               "postgresql",
	}, nil
}

func NewPostgreDatabase(config PostgresConfig) *PostgreDatabase {
	return &PostgreDatabase{dsn: withPassword(config.DSN)}
}

var _ Database = (*PostgreDatabase)(nil)

// PostgreDatabase is a pgx pool kept beside the ORM for health checks.
type PostgreDatabase struct {
	dsn  string
	Conn *pgxpool.Pool
}

func (d *PostgreDatabase) Open(ctx context.Context) error {
	var lastErr error
	for attempt := range _maxRetries {
		conn, err := pgxpool.New(ctx, d.dsn)
		if err == nil {
			d.Conn = conn
			return nil
		}
		lastErr = err
		slog.Warn("postgres pool unavailable", slog.Int("attempt", attempt+1), slog.Any("error", err))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(_retryDelay):
		}
	}

	return fmt.Errorf("connecting to postgres after %d retries: %w", _maxRetries, lastErr)
}

func (d *PostgreDatabase) Close() {
	if d.Conn != nil {
		d.Conn.Close()
	}
}

func (d *PostgreDatabase) Ping(ctx context.Context) error {
	if d.Conn == nil {
		return fmt.Errorf("postgres pool not open")
	}
	pingCtx, cancel := context.WithTimeout(ctx, _defaultQueryTimeout)
	defer cancel()
	return d.Conn.Ping(pingCtx)
}
