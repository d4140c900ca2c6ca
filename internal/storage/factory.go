package storage

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/OCAP2/mailbox/internal/config"
	"github.com/OCAP2/mailbox/internal/storage/memory"
	pgstore "github.com/OCAP2/mailbox/internal/storage/postgres"
	sqlitestore "github.com/OCAP2/mailbox/internal/storage/sqlite"
)

// NewBackend creates a storage backend based on configuration.
func NewBackend(cfg config.StorageConfig, log zerolog.Logger) (Backend, error) {
	switch cfg.Type {
	case "memory":
		return memory.New(cfg.Memory), nil
	case "sqlite":
		return sqlitestore.New(cfg.SQLite, log)
	case "postgres":
		return pgstore.New(cfg.Postgres, log)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
