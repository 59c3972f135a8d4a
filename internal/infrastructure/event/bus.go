package event

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/horologe/storefront/internal/domain/shared"
	"github.com/horologe/storefront/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Observer receives delivery outcomes, typically to feed metrics
type Observer interface {
	EventDropped(eventType string)
	EventHandled(eventType string, elapsed time.Duration, err error)
}

// Options configures the worker pool
type Options struct {
	Workers        int
	QueueSize      int
	HandlerTimeout time.Duration
}

// Stats is a snapshot of bus counters
type Stats struct {
	Published int64 `json:"published"`
	Dropped   int64 `json:"dropped"`
	Handled   int64 `json:"handled"`
	Failed    int64 `json:"failed"`
	Queued    int   `json:"queued"`
}

type envelope struct {
	ctx   context.Context
	event shared.DomainEvent
}

// AsyncEventBus delivers events to subscribed handlers on a fixed pool of
// workers. Publish never blocks: when the queue is full the event is
// dropped and logged.
type AsyncEventBus struct {
	opts     Options
	logger   *zap.Logger
	observer Observer

	subMu    sync.RWMutex
	byType   map[string][]shared.EventHandler
	wildcard []shared.EventHandler

	// lifeMu guards queue against send-after-close
	lifeMu  sync.RWMutex
	queue   chan envelope
	running bool
	stopped bool
	wg      sync.WaitGroup

	published atomic.Int64
	dropped   atomic.Int64
	handled   atomic.Int64
	failed    atomic.Int64
}

// Option customizes an AsyncEventBus
type Option func(*AsyncEventBus)

// WithObserver reports delivery outcomes to o
func WithObserver(o Observer) Option {
	return func(b *AsyncEventBus) {
		b.observer = o
	}
}

// NewAsyncEventBus creates a bus; call Start before publishing
func NewAsyncEventBus(opts Options, log *zap.Logger, options ...Option) *AsyncEventBus {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = 64
	}
	if opts.HandlerTimeout <= 0 {
		opts.HandlerTimeout = 10 * time.Second
	}
	b := &AsyncEventBus{
		opts:   opts,
		logger: log,
		byType: make(map[string][]shared.EventHandler),
		queue:  make(chan envelope, opts.QueueSize),
	}
	for _, o := range options {
		o(b)
	}
	return b
}

// Publish enqueues events for asynchronous delivery. It returns nil even
// when events are dropped so callers never fail on notification side
// effects.
func (b *AsyncEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	b.lifeMu.RLock()
	defer b.lifeMu.RUnlock()

	for _, e := range events {
		if !b.running {
			b.drop(ctx, e, "event bus not running")
			continue
		}
		select {
		case b.queue <- envelope{ctx: ctx, event: e}:
			b.published.Add(1)
		default:
			b.drop(ctx, e, "event queue full")
		}
	}
	return nil
}

func (b *AsyncEventBus) drop(ctx context.Context, e shared.DomainEvent, reason string) {
	b.dropped.Add(1)
	logger.Enrich(ctx, b.logger).Warn("Dropping event",
		zap.String("reason", reason),
		zap.String("event_type", e.EventType()),
		zap.String("event_id", e.EventID().String()),
	)
	if b.observer != nil {
		b.observer.EventDropped(e.EventType())
	}
}

// Subscribe registers handler for eventTypes, or for the handler's own
// EventTypes when none are given. An empty set subscribes to everything.
func (b *AsyncEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}

	b.subMu.Lock()
	defer b.subMu.Unlock()
	if len(eventTypes) == 0 {
		b.wildcard = append(b.wildcard, handler)
		return
	}
	for _, t := range eventTypes {
		b.byType[t] = append(b.byType[t], handler)
	}
}

// Unsubscribe removes handler from every subscription
func (b *AsyncEventBus) Unsubscribe(handler shared.EventHandler) {
	b.subMu.Lock()
	defer b.subMu.Unlock()

	b.wildcard = without(b.wildcard, handler)
	for t, hs := range b.byType {
		if rest := without(hs, handler); len(rest) > 0 {
			b.byType[t] = rest
		} else {
			delete(b.byType, t)
		}
	}
}

func without(hs []shared.EventHandler, target shared.EventHandler) []shared.EventHandler {
	out := hs[:0:0]
	for _, h := range hs {
		if h != target {
			out = append(out, h)
		}
	}
	return out
}

func (b *AsyncEventBus) handlersFor(eventType string) []shared.EventHandler {
	b.subMu.RLock()
	defer b.subMu.RUnlock()
	out := make([]shared.EventHandler, 0, len(b.byType[eventType])+len(b.wildcard))
	out = append(out, b.byType[eventType]...)
	return append(out, b.wildcard...)
}

// Start launches the workers. A stopped bus cannot be restarted.
func (b *AsyncEventBus) Start(_ context.Context) error {
	b.lifeMu.Lock()
	defer b.lifeMu.Unlock()

	if b.stopped {
		return fmt.Errorf("event bus already stopped")
	}
	if b.running {
		return nil
	}
	b.running = true
	for i := 0; i < b.opts.Workers; i++ {
		b.wg.Add(1)
		go b.work()
	}
	b.logger.Info("Event bus started",
		zap.Int("workers", b.opts.Workers),
		zap.Int("queue_size", b.opts.QueueSize),
	)
	return nil
}

// Stop refuses new events and waits for queued ones to drain until ctx
// expires. Events still queued after that are lost.
func (b *AsyncEventBus) Stop(ctx context.Context) error {
	b.lifeMu.Lock()
	if !b.running {
		b.stopped = true
		b.lifeMu.Unlock()
		return nil
	}
	b.running = false
	b.stopped = true
	close(b.queue)
	b.lifeMu.Unlock()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		b.logger.Info("Event bus stopped", zap.Int64("handled", b.handled.Load()))
		return nil
	case <-ctx.Done():
		b.logger.Warn("Event bus stop timed out", zap.Int("abandoned", len(b.queue)))
		return ctx.Err()
	}
}

// Stats returns a snapshot of the bus counters
func (b *AsyncEventBus) Stats() Stats {
	return Stats{
		Published: b.published.Load(),
		Dropped:   b.dropped.Load(),
		Handled:   b.handled.Load(),
		Failed:    b.failed.Load(),
		Queued:    len(b.queue),
	}
}

func (b *AsyncEventBus) work() {
	defer b.wg.Done()
	for env := range b.queue {
		for _, h := range b.handlersFor(env.event.EventType()) {
			b.deliver(env, h)
		}
	}
}

// deliver runs one handler detached from the publisher's cancellation but
// keeping its values (request id, trace span) for logging.
func (b *AsyncEventBus) deliver(env envelope, h shared.EventHandler) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(env.ctx), b.opts.HandlerTimeout)
	defer cancel()

	start := time.Now()
	err := b.safeHandle(ctx, h, env.event)
	elapsed := time.Since(start)

	if err != nil {
		b.failed.Add(1)
		logger.Enrich(ctx, b.logger).Error("Event handler failed",
			zap.String("event_type", env.event.EventType()),
			zap.String("event_id", env.event.EventID().String()),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
	} else {
		b.handled.Add(1)
	}
	if b.observer != nil {
		b.observer.EventHandled(env.event.EventType(), elapsed, err)
	}
}

func (b *AsyncEventBus) safeHandle(ctx context.Context, h shared.EventHandler, e shared.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()
	return h.Handle(ctx, e)
}

var _ shared.EventBus = (*AsyncEventBus)(nil)
