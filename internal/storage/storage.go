// Package storage defines the backend interface the demo pipelines record
// their results through.
package storage

import "github.com/OCAP2/mailbox/pkg/core"

// Backend is the interface all storage implementations must satisfy.
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// Recording
	RecordTransfer(t *core.Transfer) error
	RecordRun(r *core.RunSummary) error
}

// Exportable is an optional interface for backends that produce an output
// file on Close.
type Exportable interface {
	ExportedFilePath() string
}
