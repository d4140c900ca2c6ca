// Package gormstore implements the storage backend on top of a GORM
// database handle. The sqlite and postgres packages wrap it with their
// respective drivers.
package gormstore

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/OCAP2/mailbox/pkg/core"
)

// TransferRecord is the persisted form of core.Transfer.
type TransferRecord struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time

	Run       string `gorm:"index"`
	Channel   string `gorm:"index"`
	Seq       uint64
	Payload   string
	Labels    datatypes.JSON
	SentAt    time.Time
	TakenAt   time.Time
	LatencyNs int64
}

// RunRecord is the persisted form of core.RunSummary.
type RunRecord struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time

	Run        string `gorm:"index"`
	Scenario   string
	Messages   int
	Producers  int
	Consumers  int
	Capacity   int
	StartedAt  time.Time
	FinishedAt time.Time
	DurationNs int64
}

// Models lists everything Init migrates.
var Models = []any{
	&TransferRecord{},
	&RunRecord{},
}

// Backend records transfers and runs through a GORM handle.
type Backend struct {
	db  *gorm.DB
	log zerolog.Logger
}

// New creates a backend over an already-opened database.
func New(db *gorm.DB, log zerolog.Logger) *Backend {
	return &Backend{db: db, log: log}
}

// DB exposes the underlying handle for queries beyond the Backend
// interface, such as run exports.
func (b *Backend) DB() *gorm.DB {
	return b.db
}

// Init migrates the schema.
func (b *Backend) Init() error {
	if err := b.db.AutoMigrate(Models...); err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}
	b.log.Debug().Msg("storage schema migrated")
	return nil
}

// Close releases the underlying connection pool.
func (b *Backend) Close() error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return fmt.Errorf("accessing sql interface: %w", err)
	}
	return sqlDB.Close()
}

// RecordTransfer persists one transfer.
func (b *Backend) RecordTransfer(t *core.Transfer) error {
	labels, err := json.Marshal(t.Labels)
	if err != nil {
		return fmt.Errorf("marshalling labels: %w", err)
	}

	rec := TransferRecord{
		Run:       t.Run,
		Channel:   t.Channel,
		Seq:       t.Seq,
		Payload:   t.Payload,
		Labels:    datatypes.JSON(labels),
		SentAt:    t.SentAt,
		TakenAt:   t.TakenAt,
		LatencyNs: t.Latency.Nanoseconds(),
	}
	if err := b.db.Create(&rec).Error; err != nil {
		return fmt.Errorf("inserting transfer: %w", err)
	}
	return nil
}

// RecordRun persists one run summary.
func (b *Backend) RecordRun(r *core.RunSummary) error {
	rec := RunRecord{
		Run:        r.Run,
		Scenario:   r.Scenario,
		Messages:   r.Messages,
		Producers:  r.Producers,
		Consumers:  r.Consumers,
		Capacity:   r.Capacity,
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
		DurationNs: r.Duration.Nanoseconds(),
	}
	if err := b.db.Create(&rec).Error; err != nil {
		return fmt.Errorf("inserting run summary: %w", err)
	}
	return nil
}
