// Package sqlite provides the SQLite storage client backed by GORM.
//
// It exists for local development and tests; production deployments run
// against the postgres client with the same store code.
package sqlite

import (
	"context"
	"fmt"
	"time"

	sqlitedriver "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/kart-io/haven/pkg/component/storage"
	options "github.com/kart-io/haven/pkg/options/sqlite"
)

// Client wraps gorm.DB and implements storage.Client.
type Client struct {
	db   *gorm.DB
	opts *options.Options
}

var _ storage.Client = (*Client)(nil)

// New creates a new SQLite client from the provided options.
func New(opts *options.Options) (*Client, error) {
	if opts == nil {
		return nil, fmt.Errorf("sqlite options cannot be nil")
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sqlite options: %w", err)
	}

	logLevel := gormlogger.Silent
	switch opts.LogLevel {
	case 2:
		logLevel = gormlogger.Error
	case 3:
		logLevel = gormlogger.Warn
	case 4:
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(sqlitedriver.Open(opts.Path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	return &Client{db: db, opts: opts}, nil
}

// NewInMemory opens an in-memory SQLite database. Intended for tests.
func NewInMemory() (*Client, error) {
	return New(&options.Options{Path: ":memory:", LogLevel: 1})
}

// DB returns the underlying gorm.DB instance.
func (c *Client) DB() *gorm.DB {
	return c.db
}

// Name returns the storage type identifier.
func (c *Client) Name() string {
	return "sqlite"
}

// Ping verifies the connection to the database.
func (c *Client) Ping(ctx context.Context) error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the database connection.
func (c *Client) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Health returns a HealthChecker for monitoring endpoints.
func (c *Client) Health() storage.HealthChecker {
	return func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		return c.Ping(ctx)
	}
}
