package database

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gLogger "gorm.io/gorm/logger"

	"github.com/ayoussef/atlas/models"
)

// Config is the embedded store configuration. Path ":memory:" keeps
// the catalogue in memory, which tests rely on.
type Config struct {
	Path     string `env:"DB_PATH" yaml:"path" env-default:"atlas.db"`
	LogQuery bool   `env:"DB_LOG_QUERY" yaml:"log_query"`
}

func (c *Config) Validate() error {
	if c.Path == "" {
		return models.ErrDatabaseNotConfigured
	}
	return nil
}

// New opens the embedded sqlite store and migrates the catalogue schema.
func New(c *Config) (*gorm.DB, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	dsn := c.Path
	if dsn != ":memory:" {
		dsn = fmt.Sprintf("%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", c.Path)
	}

	cfg := &gorm.Config{}
	if !c.LogQuery {
		cfg.Logger = gLogger.Discard
	}

	db, err := gorm.Open(sqlite.Open(dsn), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm connection: %w", err)
	}

	if err := db.AutoMigrate(&models.Country{}, &models.SnapshotMeta{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	// sqlite allows a single writer; cap the pool so gorm does not
	// queue writes behind a locked connection.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB from gorm: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}
