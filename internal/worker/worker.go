// Package worker runs pools of consumers that drain closable job channels
// and record completed transfers to a storage backend.
package worker

import (
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/OCAP2/mailbox/internal/storage"
	"github.com/OCAP2/mailbox/pkg/core"
	"github.com/OCAP2/mailbox/pkg/mailbox"
)

// Dependencies holds all dependencies for the worker manager.
type Dependencies struct {
	Logger  zerolog.Logger
	Backend storage.Backend // nil disables recording
}

// Manager manages consumer goroutines.
type Manager struct {
	deps Dependencies
}

// NewManager creates a new worker manager.
func NewManager(deps Dependencies) *Manager {
	return &Manager{deps: deps}
}

// ProcessTransfers drains jobs with the given number of workers until the
// channel is closed and empty. Each worker stamps pickup time and latency on
// the transfers it takes and records them to the backend. Blocks until all
// workers have finished; returns the first recording error, after the
// channel has drained.
func (m *Manager) ProcessTransfers(jobs *mailbox.Closable[core.Transfer], workers int) error {
	if workers < 1 {
		workers = 1
	}

	g := new(errgroup.Group)
	for i := 0; i < workers; i++ {
		workerID := strconv.Itoa(i)
		g.Go(func() error {
			var firstErr error
			for tr := range jobs.All() {
				tr.TakenAt = time.Now()
				tr.Latency = tr.TakenAt.Sub(tr.SentAt)
				if tr.Labels == nil {
					tr.Labels = make(map[string]string, 1)
				}
				tr.Labels["worker"] = workerID

				if m.deps.Backend == nil {
					continue
				}
				if err := m.deps.Backend.RecordTransfer(&tr); err != nil {
					// Keep draining so producers blocked on a full
					// channel are not wedged by a storage failure.
					m.deps.Logger.Error().Err(err).
						Str("channel", tr.Channel).
						Uint64("seq", tr.Seq).
						Msg("failed to record transfer")
					if firstErr == nil {
						firstErr = err
					}
				}
			}
			return firstErr
		})
	}
	return g.Wait()
}
