// Package sqlitestore implements the storage backend on a local SQLite
// database file via the pure-Go driver.
package sqlitestore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/OCAP2/mailbox/internal/config"
	"github.com/OCAP2/mailbox/internal/storage/gormstore"
)

// Backend wraps the shared GORM backend with SQLite specifics.
type Backend struct {
	*gormstore.Backend
}

// New opens (creating if necessary) the configured database file.
func New(cfg config.SQLiteConfig, log zerolog.Logger) (*Backend, error) {
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating database dir: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db at %s: %w", cfg.Path, err)
	}
	log.Debug().Str("path", cfg.Path).Msg("sqlite storage opened")

	return &Backend{Backend: gormstore.New(db, log)}, nil
}
