package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/horologe/storefront/internal/domain/order"
	"github.com/horologe/storefront/internal/domain/settings"
	"github.com/horologe/storefront/internal/domain/shared"
	"github.com/horologe/storefront/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// StoreSettingsSource supplies templates and the currency symbol
type StoreSettingsSource interface {
	FindStore(ctx context.Context) (*settings.StoreSettings, error)
}

// OrderNotificationHandler composes and sends customer messages for order
// events. It runs on the event bus workers, after the order write has
// committed, so its failures never reach the HTTP caller.
type OrderNotificationHandler struct {
	composer *Composer
	sender   Sender
	settings StoreSettingsSource
	logger   *zap.Logger
}

// NewOrderNotificationHandler creates the handler
func NewOrderNotificationHandler(composer *Composer, sender Sender, src StoreSettingsSource, logger *zap.Logger) *OrderNotificationHandler {
	return &OrderNotificationHandler{
		composer: composer,
		sender:   sender,
		settings: src,
		logger:   logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *OrderNotificationHandler) EventTypes() []string {
	return []string{order.EventTypeOrderPlaced, order.EventTypeOrderStatusChanged}
}

// Handle sends every composed message. A failed message does not stop the
// others; the combined error is returned for the bus to record.
func (h *OrderNotificationHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	log := logger.Enrich(ctx, h.logger)
	store := h.storeSettings(ctx, log)

	var msgs []Message
	switch e := event.(type) {
	case *order.OrderPlacedEvent:
		msgs = h.composer.OrderPlaced(e, store)
	case *order.OrderStatusChangedEvent:
		msgs = h.composer.StatusChanged(e, store)
	default:
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}

	var errs []error
	for _, m := range msgs {
		if m.Recipient == "" {
			log.Warn("Skipping notification without recipient",
				zap.String("order_id", m.OrderID),
				zap.String("channel", string(m.Channel)),
			)
			continue
		}
		if err := h.sender.Send(ctx, m); err != nil {
			log.Error("Failed to send notification",
				zap.String("order_id", m.OrderID),
				zap.String("channel", string(m.Channel)),
				zap.Error(err),
			)
			errs = append(errs, fmt.Errorf("%s: %w", m.Channel, err))
		}
	}
	return errors.Join(errs...)
}

// storeSettings falls back to defaults so a settings outage still lets
// customers hear about their order
func (h *OrderNotificationHandler) storeSettings(ctx context.Context, log *zap.Logger) *settings.StoreSettings {
	s, err := h.settings.FindStore(ctx)
	if err != nil {
		log.Warn("Using default notification templates", zap.Error(err))
		return settings.DefaultStoreSettings()
	}
	return s
}

var _ shared.EventHandler = (*OrderNotificationHandler)(nil)
