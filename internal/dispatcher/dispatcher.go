// Package dispatcher routes named events to registered handlers, optionally
// decoupling callers from slow handlers through bounded mailbox queues.
package dispatcher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/OCAP2/mailbox/pkg/mailbox"
	"github.com/OCAP2/mailbox/pkg/task"
)

// Event is a single incoming command.
type Event struct {
	Command   string
	Args      []string
	Timestamp time.Time
}

// HandlerFunc processes an event and returns a result.
type HandlerFunc func(Event) (any, error)

// Logger is the pluggable logging interface.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// Option configures handler registration.
type Option func(*handlerConfig)

type handlerConfig struct {
	capacity int
	logged   bool
}

// Buffered makes the handler asynchronous behind a closable mailbox of the
// given capacity. Dispatch enqueues and returns immediately while the queue
// has room; a full queue applies backpressure to the caller instead of
// dropping events.
func Buffered(capacity int) Option {
	return func(c *handlerConfig) {
		c.capacity = capacity
	}
}

// Logged adds debug logging around the handler.
func Logged() Option {
	return func(c *handlerConfig) {
		c.logged = true
	}
}

// Dispatcher routes events to registered handlers.
type Dispatcher struct {
	handlers map[string]HandlerFunc
	logger   Logger

	queueDepth metric.Int64ObservableGauge
	processed  metric.Int64Counter

	mu     sync.RWMutex
	queues map[string]*mailbox.Closable[Event]
	wg     sync.WaitGroup
}

// New creates a Dispatcher with the given logger. Metrics come from the
// global OTel meter, which is a no-op unless the application configured a
// provider.
func New(logger Logger) (*Dispatcher, error) {
	d := &Dispatcher{
		handlers: make(map[string]HandlerFunc),
		queues:   make(map[string]*mailbox.Closable[Event]),
		logger:   logger,
	}

	m := meter()

	var err error

	d.queueDepth, err = m.Int64ObservableGauge(
		"dispatcher.queue.depth",
		metric.WithDescription("Events buffered per handler queue"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating queue depth gauge: %w", err)
	}

	_, err = m.RegisterCallback(
		func(ctx context.Context, o metric.Observer) error {
			d.mu.RLock()
			defer d.mu.RUnlock()
			for cmd, q := range d.queues {
				o.ObserveInt64(d.queueDepth, int64(q.Len()),
					metric.WithAttributes(attribute.String("command", cmd)))
			}
			return nil
		},
		d.queueDepth,
	)
	if err != nil {
		return nil, fmt.Errorf("registering queue depth callback: %w", err)
	}

	d.processed, err = m.Int64Counter(
		"dispatcher.events.processed",
		metric.WithDescription("Total events processed"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating processed counter: %w", err)
	}

	return d, nil
}

// Register adds a handler for the given command. Options are applied inside
// out: a handler that is both Buffered and Logged logs at enqueue time.
func (d *Dispatcher) Register(command string, h HandlerFunc, opts ...Option) {
	cfg := &handlerConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	handler := h

	if cfg.capacity > 0 {
		handler = d.withQueue(command, cfg.capacity, handler)
	}

	if cfg.logged {
		handler = d.withLogging(command, handler)
	}

	d.handlers[command] = handler
}

// Dispatch routes an event to its registered handler.
func (d *Dispatcher) Dispatch(e Event) (any, error) {
	h, ok := d.handlers[e.Command]
	if !ok {
		return nil, fmt.Errorf("unknown command: %s", e.Command)
	}
	return h(e)
}

// HasHandler returns true if a handler is registered for the command.
func (d *Dispatcher) HasHandler(command string) bool {
	_, ok := d.handlers[command]
	return ok
}

// Close shuts down all buffered handler queues and waits for queued events
// to drain. The dispatcher must not be used after Close.
func (d *Dispatcher) Close() {
	d.mu.RLock()
	for _, q := range d.queues {
		q.Close()
	}
	d.mu.RUnlock()
	d.wg.Wait()
}

func (d *Dispatcher) withQueue(command string, capacity int, h HandlerFunc) HandlerFunc {
	q, err := mailbox.NewClosable[Event](capacity)
	if err != nil {
		// capacity is validated positive in Register; keep the handler
		// synchronous rather than fail registration.
		d.logger.Error("invalid handler queue capacity", "command", command, "error", err)
		return h
	}

	d.mu.Lock()
	d.queues[command] = q
	d.mu.Unlock()

	cmdAttr := attribute.String("command", command)

	d.wg.Add(1)
	task.Spawn(func() {
		defer d.wg.Done()
		for e := range q.All() {
			if _, err := h(e); err != nil {
				d.logger.Error("queued event failed", "command", command, "error", err)
			}
			d.processed.Add(context.Background(), 1, metric.WithAttributes(cmdAttr))
		}
	})

	return func(e Event) (any, error) {
		q.Send(e)
		return "queued", nil
	}
}

func (d *Dispatcher) withLogging(command string, h HandlerFunc) HandlerFunc {
	return func(e Event) (any, error) {
		start := time.Now()
		d.logger.Debug("handling event", "command", command, "args", len(e.Args))

		result, err := h(e)

		if err != nil {
			d.logger.Error("event failed", "command", command, "duration", time.Since(start), "error", err)
		} else {
			d.logger.Debug("event complete", "command", command, "duration", time.Since(start))
		}

		return result, err
	}
}
