// Package pgstore implements the storage backend on a Postgres server.
package pgstore

import (
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/OCAP2/mailbox/internal/config"
	"github.com/OCAP2/mailbox/internal/storage/gormstore"
)

// Backend wraps the shared GORM backend with a Postgres connection.
type Backend struct {
	*gormstore.Backend
}

// New connects to the configured Postgres server and verifies the
// connection with a ping.
func New(cfg config.PostgresConfig, log zerolog.Logger) (*Backend, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.Username, cfg.Password, cfg.Database,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening postgres db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("accessing sql interface: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	sqlDB.SetMaxOpenConns(10)

	log.Debug().Str("host", cfg.Host).Str("database", cfg.Database).Msg("postgres storage opened")
	return &Backend{Backend: gormstore.New(db, log)}, nil
}
