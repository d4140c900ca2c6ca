// Package memory implements the storage backend in process memory, exporting
// everything recorded as a JSON document on Close.
package memory

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/OCAP2/mailbox/internal/config"
	"github.com/OCAP2/mailbox/pkg/core"
)

// export is the JSON document written on Close.
type export struct {
	ExportedAt time.Time         `json:"exportedAt"`
	Runs       []core.RunSummary `json:"runs"`
	Transfers  []core.Transfer   `json:"transfers"`
}

// Backend accumulates transfers and run summaries in memory.
type Backend struct {
	cfg config.MemoryConfig

	mu        sync.Mutex
	runs      []core.RunSummary
	transfers []core.Transfer

	exportedPath string
}

// New creates a memory backend.
func New(cfg config.MemoryConfig) *Backend {
	return &Backend{cfg: cfg}
}

// Init creates the output directory.
func (b *Backend) Init() error {
	if err := os.MkdirAll(b.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	return nil
}

// RecordTransfer appends a transfer.
func (b *Backend) RecordTransfer(t *core.Transfer) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.transfers = append(b.transfers, *t)
	return nil
}

// RecordRun appends a run summary.
func (b *Backend) RecordRun(r *core.RunSummary) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.runs = append(b.runs, *r)
	return nil
}

// Close exports everything recorded to a timestamped JSON file, gzipped if
// configured.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	doc := export{
		ExportedAt: time.Now(),
		Runs:       b.runs,
		Transfers:  b.transfers,
	}

	name := fmt.Sprintf("mailbox_%s.json", doc.ExportedAt.Format("20060102_150405"))
	if b.cfg.CompressOutput {
		name += ".gz"
	}
	path := filepath.Join(b.cfg.OutputDir, name)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	if b.cfg.CompressOutput {
		gz := gzip.NewWriter(f)
		defer gz.Close()
		if err := json.NewEncoder(gz).Encode(doc); err != nil {
			return fmt.Errorf("encoding export: %w", err)
		}
	} else {
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding export: %w", err)
		}
	}

	b.exportedPath = path
	return nil
}

// ExportedFilePath returns the path written by Close, or empty before Close.
func (b *Backend) ExportedFilePath() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.exportedPath
}

// Transfers returns a snapshot of recorded transfers.
func (b *Backend) Transfers() []core.Transfer {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]core.Transfer, len(b.transfers))
	copy(out, b.transfers)
	return out
}

// Runs returns a snapshot of recorded run summaries.
func (b *Backend) Runs() []core.RunSummary {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]core.RunSummary, len(b.runs))
	copy(out, b.runs)
	return out
}
