package order

import (
	"github.com/google/uuid"
	"github.com/horologe/storefront/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeOrder = "Order"

// Event type constants
const (
	EventTypeOrderPlaced        = "OrderPlaced"
	EventTypeOrderStatusChanged = "OrderStatusChanged"
)

// Recipient carries what a notifier needs to reach the customer
type Recipient struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	WhatsAppEnabled bool   `json:"whatsapp_enabled"`
}

func recipientOf(o *Order) Recipient {
	return Recipient{
		Name:            o.Customer.Name,
		Email:           o.Customer.Email,
		Phone:           o.Customer.Phone,
		WhatsAppEnabled: o.WhatsAppEnabled,
	}
}

// OrderPlacedEvent is raised when a new order is created
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	OrderID   uuid.UUID       `json:"order_id"`
	Recipient Recipient       `json:"recipient"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
}

// NewOrderPlacedEvent creates a new OrderPlacedEvent
func NewOrderPlacedEvent(o *Order) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPlaced, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		Recipient:       recipientOf(o),
		Total:           o.Total,
		ItemCount:       len(o.Items),
	}
}

// EventType returns the event type name
func (e *OrderPlacedEvent) EventType() string {
	return EventTypeOrderPlaced
}

// OrderStatusChangedEvent is raised after every status update
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderID        uuid.UUID       `json:"order_id"`
	Recipient      Recipient       `json:"recipient"`
	Total          decimal.Decimal `json:"total"`
	PreviousStatus OrderStatus     `json:"previous_status"`
	NewStatus      OrderStatus     `json:"new_status"`
}

// NewOrderStatusChangedEvent creates a new OrderStatusChangedEvent
func NewOrderStatusChangedEvent(o *Order, previous OrderStatus) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		Recipient:       recipientOf(o),
		Total:           o.Total,
		PreviousStatus:  previous,
		NewStatus:       o.Status,
	}
}

// EventType returns the event type name
func (e *OrderStatusChangedEvent) EventType() string {
	return EventTypeOrderStatusChanged
}
