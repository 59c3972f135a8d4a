package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"
	"go.uber.org/zap"

	notificationapp "github.com/horologe/storefront/internal/application/notification"
	"github.com/horologe/storefront/internal/infrastructure/config"
)

// ErrGatewayUnavailable is returned while the circuit is open
var ErrGatewayUnavailable = errors.New("notification gateway unavailable")

// DispatcherOptions tunes throttling and the circuit breaker
type DispatcherOptions struct {
	RatePerSecond      float64
	Burst              int
	BreakerMaxFailures uint32
	BreakerOpenTimeout time.Duration
}

// OptionsFromConfig maps notification config onto dispatcher options
func OptionsFromConfig(cfg config.NotificationConfig) DispatcherOptions {
	return DispatcherOptions{
		RatePerSecond:      cfg.RatePerSecond,
		Burst:              cfg.Burst,
		BreakerMaxFailures: cfg.BreakerMaxFailures,
		BreakerOpenTimeout: cfg.BreakerOpenTimeout,
	}
}

// Dispatcher throttles outbound messages and stops calling a failing
// gateway until it has had time to recover
type Dispatcher struct {
	next    notificationapp.Sender
	limiter *rate.Limiter
	cb      *gobreaker.CircuitBreaker[struct{}]
	logger  *zap.Logger
}

// NewDispatcher wraps next
func NewDispatcher(next notificationapp.Sender, opts DispatcherOptions, logger *zap.Logger) *Dispatcher {
	if opts.Burst <= 0 {
		opts.Burst = 1
	}
	if opts.BreakerMaxFailures == 0 {
		opts.BreakerMaxFailures = 5
	}

	limit := rate.Inf
	if opts.RatePerSecond > 0 {
		limit = rate.Limit(opts.RatePerSecond)
	}

	d := &Dispatcher{
		next:    next,
		limiter: rate.NewLimiter(limit, opts.Burst),
		logger:  logger,
	}
	d.cb = gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        "notification-gateway",
		MaxRequests: 1,
		Timeout:     opts.BreakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= opts.BreakerMaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
	return d
}

// Send waits for a rate token, then delivers through the breaker
func (d *Dispatcher) Send(ctx context.Context, msg notificationapp.Message) error {
	if err := d.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("notification throttled: %w", err)
	}

	_, err := d.cb.Execute(func() (struct{}, error) {
		return struct{}{}, d.next.Send(ctx, msg)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		d.logger.Debug("Notification rejected by open circuit",
			zap.String("channel", string(msg.Channel)),
			zap.String("order_id", msg.OrderID),
		)
		return fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	return err
}

// State reports the breaker state
func (d *Dispatcher) State() gobreaker.State {
	return d.cb.State()
}

// NewSender builds the configured sender chain
func NewSender(cfg config.NotificationConfig, logger *zap.Logger) (notificationapp.Sender, error) {
	var base notificationapp.Sender
	switch cfg.Sender {
	case "", "log":
		base = NewLogSender(logger)
	case "webhook":
		if cfg.WebhookURL == "" {
			return nil, errors.New("notification.webhook_url is required for the webhook sender")
		}
		base = NewWebhookSender(cfg.WebhookURL, cfg.WebhookTimeout)
	default:
		return nil, fmt.Errorf("unknown notification sender %q", cfg.Sender)
	}
	return NewDispatcher(base, OptionsFromConfig(cfg), logger), nil
}

var _ notificationapp.Sender = (*Dispatcher)(nil)
