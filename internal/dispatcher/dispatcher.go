package dispatcher

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Event is a unit of traffic routed through the bridge: an inbound PDU or an
// outbound platform event, keyed by route (for example "pdu.EntityState").
type Event struct {
	Route     string
	Payload   any
	Timestamp time.Time
}

// HandlerFunc processes an event and returns a result.
type HandlerFunc func(Event) (any, error)

// Logger interface for pluggable logging.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// Option configures handler registration.
type Option func(*config)

type config struct {
	bufferSize int
	blocking   bool
	logged     bool
	queue      string
}

// Buffered makes the handler async with a queue of the given size.
func Buffered(size int) Option {
	return func(c *config) {
		c.bufferSize = size
	}
}

// Queue makes the handler async on the named queue. Routes registered with
// the same name share one worker and are handled in dispatch order. The size
// of the first registration creates the queue; later sizes are ignored.
func Queue(name string, size int) Option {
	return func(c *config) {
		c.queue = name
		c.bufferSize = size
	}
}

// Blocking makes a buffered handler block when the queue is full instead of dropping.
func Blocking() Option {
	return func(c *config) {
		c.blocking = true
	}
}

// Logged adds debug logging to the handler.
func Logged() Option {
	return func(c *config) {
		c.logged = true
	}
}

// Dispatcher routes events to registered handlers.
// Handlers must be registered before the first Dispatch.
type Dispatcher struct {
	handlers map[string]HandlerFunc
	logger   Logger

	queueSize metric.Int64ObservableGauge
	processed metric.Int64Counter
	dropped   metric.Int64Counter

	mu      sync.RWMutex
	buffers map[string]chan queued
	workers sync.WaitGroup
	closed  bool
}

// New creates a new Dispatcher with the given logger.
// Uses the global OTel meter for metrics (no-op if not configured).
func New(logger Logger) (*Dispatcher, error) {
	d := &Dispatcher{
		handlers: make(map[string]HandlerFunc),
		buffers:  make(map[string]chan queued),
		logger:   logger,
	}

	m := meter()

	var err error

	d.queueSize, err = m.Int64ObservableGauge(
		"dispatcher.queue.size",
		metric.WithDescription("Current number of events in queue"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating queue size gauge: %w", err)
	}

	_, err = m.RegisterCallback(
		func(ctx context.Context, o metric.Observer) error {
			d.mu.RLock()
			defer d.mu.RUnlock()
			for name, buf := range d.buffers {
				o.ObserveInt64(d.queueSize, int64(len(buf)),
					metric.WithAttributes(attribute.String("queue", name)))
			}
			return nil
		},
		d.queueSize,
	)
	if err != nil {
		return nil, fmt.Errorf("registering queue callback: %w", err)
	}

	d.processed, err = m.Int64Counter(
		"dispatcher.events.processed",
		metric.WithDescription("Total events processed"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating processed counter: %w", err)
	}

	d.dropped, err = m.Int64Counter(
		"dispatcher.events.dropped",
		metric.WithDescription("Total events dropped due to full queue"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating dropped counter: %w", err)
	}

	return d, nil
}

// Register adds a handler for the given route with optional configuration.
func (d *Dispatcher) Register(route string, h HandlerFunc, opts ...Option) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	handler := h

	if cfg.bufferSize > 0 {
		name := cfg.queue
		if name == "" {
			name = route
		}
		handler = d.withBuffer(name, cfg.bufferSize, cfg.blocking, handler)
	}

	if cfg.logged {
		handler = d.withLogging(route, handler)
	}

	d.handlers[route] = handler
}

// Dispatch routes an event to its registered handler.
func (d *Dispatcher) Dispatch(e Event) (any, error) {
	h, ok := d.handlers[e.Route]
	if !ok {
		return nil, fmt.Errorf("unknown route: %s", e.Route)
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	return h(e)
}

// HasHandler returns true if a handler is registered for the route.
func (d *Dispatcher) HasHandler(route string) bool {
	_, ok := d.handlers[route]
	return ok
}

// Routes returns the registered routes in name order.
func (d *Dispatcher) Routes() []string {
	routes := make([]string, 0, len(d.handlers))
	for r := range d.handlers {
		routes = append(routes, r)
	}
	sort.Strings(routes)
	return routes
}

// Close stops accepting buffered events and waits until every queued event
// has been handled. Dispatching to a buffered route after Close panics.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	for _, buf := range d.buffers {
		close(buf)
	}
	d.mu.Unlock()

	d.workers.Wait()
}

type queued struct {
	event   Event
	handler HandlerFunc
}

func (d *Dispatcher) withBuffer(name string, size int, blocking bool, h HandlerFunc) HandlerFunc {
	d.mu.Lock()
	buffer, ok := d.buffers[name]
	if !ok {
		buffer = make(chan queued, size)
		d.buffers[name] = buffer
		d.workers.Add(1)
		go d.drain(name, buffer)
	}
	d.mu.Unlock()

	queueAttr := attribute.String("queue", name)

	if blocking {
		return func(e Event) (any, error) {
			buffer <- queued{event: e, handler: h}
			return "queued", nil
		}
	}

	return func(e Event) (any, error) {
		select {
		case buffer <- queued{event: e, handler: h}:
			return "queued", nil
		default:
			d.dropped.Add(context.Background(), 1, metric.WithAttributes(queueAttr, attribute.String("route", e.Route)))
			return nil, fmt.Errorf("queue full: %s", name)
		}
	}
}

func (d *Dispatcher) drain(name string, buffer <-chan queued) {
	defer d.workers.Done()
	queueAttr := attribute.String("queue", name)
	for q := range buffer {
		if _, err := q.handler(q.event); err != nil && d.logger != nil {
			d.logger.Error("buffered event failed", "route", q.event.Route, "error", err)
		}
		d.processed.Add(context.Background(), 1, metric.WithAttributes(queueAttr, attribute.String("route", q.event.Route)))
	}
}

func (d *Dispatcher) withLogging(route string, h HandlerFunc) HandlerFunc {
	return func(e Event) (any, error) {
		start := time.Now()
		d.logger.Debug("handling event", "route", route, "payload", fmt.Sprintf("%T", e.Payload))

		result, err := h(e)

		if err != nil {
			d.logger.Error("event failed", "route", route, "duration", time.Since(start), "error", err)
		} else {
			d.logger.Debug("event complete", "route", route, "duration", time.Since(start))
		}

		return result, err
	}
}
