package telemetry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/horologe/storefront/internal/domain/order"
	"github.com/horologe/storefront/internal/domain/shared"
)

// BusinessMetrics records storefront activity: orders placed, status
// changes, order values and the health of the event bus.
type BusinessMetrics struct {
	logger *zap.Logger

	orderPlacedTotal   *Counter
	orderValue         *Histogram
	statusChangesTotal *Counter
	ordersByStatus     *Gauge

	eventsDropped   *Counter
	eventsHandled   *Counter
	handlerDuration *Histogram

	stopChan    chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once
}

// OrderCounter supplies the per-status order counts for the gauge
type OrderCounter interface {
	CountByStatus(ctx context.Context) (map[order.OrderStatus]int64, error)
}

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewBusinessMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}

// NewBusinessMetrics creates the storefront instruments on meter.
func NewBusinessMetrics(meter metric.Meter, logger *zap.Logger) (*BusinessMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	bm := &BusinessMetrics{
		logger:   logger,
		stopChan: make(chan struct{}),
	}

	var err error
	if bm.orderPlacedTotal, err = NewCounter(meter,
		"storefront_order_placed_total", "Total number of orders placed", "{orders}"); err != nil {
		return nil, err
	}
	if bm.orderValue, err = NewHistogram(meter, HistogramOpts{
		Name:        "storefront_order_value",
		Description: "Distribution of order totals in store currency",
		Unit:        "{currency}",
		Boundaries:  OrderValueBuckets,
	}); err != nil {
		return nil, err
	}
	if bm.statusChangesTotal, err = NewCounter(meter,
		"storefront_order_status_changes_total", "Order status updates by target status", "{changes}"); err != nil {
		return nil, err
	}
	if bm.ordersByStatus, err = NewGauge(meter,
		"storefront_orders", "Current number of orders per status", "{orders}"); err != nil {
		return nil, err
	}
	if bm.eventsDropped, err = NewCounter(meter,
		"storefront_events_dropped_total", "Domain events dropped because the queue was full", "{events}"); err != nil {
		return nil, err
	}
	if bm.eventsHandled, err = NewCounter(meter,
		"storefront_events_handled_total", "Domain event deliveries by outcome", "{events}"); err != nil {
		return nil, err
	}
	if bm.handlerDuration, err = NewHistogram(meter, HistogramOpts{
		Name:        "storefront_event_handler_duration_seconds",
		Description: "Time spent in event handlers",
		Unit:        "s",
		Boundaries:  HandlerDurationBuckets,
	}); err != nil {
		return nil, err
	}
	return bm, nil
}

// EventTypes subscribes the metrics to order events
func (bm *BusinessMetrics) EventTypes() []string {
	return []string{order.EventTypeOrderPlaced, order.EventTypeOrderStatusChanged}
}

// Handle records metrics for an order event
func (bm *BusinessMetrics) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *order.OrderPlacedEvent:
		bm.orderPlacedTotal.Inc(ctx)
		bm.orderValue.Record(ctx, e.Total.InexactFloat64())
	case *order.OrderStatusChangedEvent:
		bm.statusChangesTotal.Inc(ctx,
			AttrOrderStatus.String(e.NewStatus.String()),
			AttrPrevStatus.String(e.PreviousStatus.String()),
		)
	default:
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}
	return nil
}

// EventDropped counts an event the bus could not queue
func (bm *BusinessMetrics) EventDropped(eventType string) {
	bm.eventsDropped.Inc(context.Background(), AttrEventType.String(eventType))
}

// EventHandled records one handler invocation
func (bm *BusinessMetrics) EventHandled(eventType string, elapsed time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	ctx := context.Background()
	bm.eventsHandled.Inc(ctx, AttrEventType.String(eventType), AttrOutcome.String(outcome))
	bm.handlerDuration.RecordDuration(ctx, elapsed, AttrEventType.String(eventType))
}

// StartPeriodicCollection samples order counts per status every interval
// (default: 5 minutes) until Stop or ctx is done. Non-blocking.
func (bm *BusinessMetrics) StartPeriodicCollection(ctx context.Context, counter OrderCounter, interval time.Duration) {
	bm.collectOnce.Do(func() {
		if interval <= 0 {
			interval = 5 * time.Minute
		}
		go bm.runPeriodicCollection(ctx, counter, interval)
	})
}

func (bm *BusinessMetrics) runPeriodicCollection(ctx context.Context, counter OrderCounter, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	bm.collectOrderCounts(ctx, counter)
	for {
		select {
		case <-bm.stopChan:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			bm.collectOrderCounts(ctx, counter)
		}
	}
}

func (bm *BusinessMetrics) collectOrderCounts(ctx context.Context, counter OrderCounter) {
	counts, err := counter.CountByStatus(ctx)
	if err != nil {
		bm.logger.Warn("Failed to collect order counts", zap.Error(err))
		return
	}
	for _, status := range order.AllStatuses() {
		bm.ordersByStatus.Record(ctx, counts[status], AttrOrderStatus.String(status.String()))
	}
}

// Stop stops the periodic collection.
func (bm *BusinessMetrics) Stop() {
	bm.stopOnce.Do(func() {
		close(bm.stopChan)
	})
}

var _ shared.EventHandler = (*BusinessMetrics)(nil)
