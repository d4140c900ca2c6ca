// Package monitor periodically samples the depth of registered channels and
// reports it to the log and, when configured, to InfluxDB.
package monitor

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/OCAP2/mailbox/internal/influx"
)

// Depth is the view of a channel the monitor needs. Both mailbox channel
// types satisfy it.
type Depth interface {
	Len() int
	Cap() int
}

// Dependencies holds all dependencies for the monitor service.
type Dependencies struct {
	Logger   zerolog.Logger
	Influx   *influx.Manager // nil disables metric export
	Interval time.Duration
}

// Service samples registered channels on a fixed interval.
type Service struct {
	deps      Dependencies
	mu        sync.RWMutex
	channels  map[string]Depth
	isRunning bool
	stopChan  chan struct{}
}

// NewService creates a new monitor service.
func NewService(deps Dependencies) *Service {
	if deps.Interval <= 0 {
		deps.Interval = time.Second
	}
	return &Service{
		deps:     deps,
		channels: make(map[string]Depth),
		stopChan: make(chan struct{}),
	}
}

// Register adds a channel under the given name. Registering the same name
// again replaces the previous channel.
func (s *Service) Register(name string, ch Depth) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.channels[name] = ch
}

// IsRunning returns whether the sampler goroutine is running.
func (s *Service) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Start launches the sampler goroutine. Starting a running service is a
// no-op.
func (s *Service) Start() {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = true
	s.stopChan = make(chan struct{})
	stop := s.stopChan
	s.mu.Unlock()

	go func() {
		ticker := time.NewTicker(s.deps.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				s.sample()
			}
		}
	}()
}

// Stop stops the sampler.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isRunning {
		close(s.stopChan)
		s.isRunning = false
	}
}

func (s *Service) sample() {
	s.mu.RLock()
	snapshot := make(map[string]Depth, len(s.channels))
	for name, ch := range s.channels {
		snapshot[name] = ch
	}
	s.mu.RUnlock()

	for name, ch := range snapshot {
		depth, capacity := ch.Len(), ch.Cap()
		s.deps.Logger.Debug().
			Str("channel", name).
			Int("depth", depth).
			Int("capacity", capacity).
			Msg("channel depth")

		if s.deps.Influx != nil {
			s.deps.Influx.WriteDepth(name, depth, capacity)
		}
	}
}
