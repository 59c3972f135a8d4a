package order

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/horologe/storefront/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the fulfilment status of an order
type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusShipped   OrderStatus = "Shipped"
	StatusDelivered OrderStatus = "Delivered"
	StatusCancelled OrderStatus = "Cancelled"
)

// AllStatuses lists every status in lifecycle order
func AllStatuses() []OrderStatus {
	return []OrderStatus{StatusPending, StatusShipped, StatusDelivered, StatusCancelled}
}

// ParseStatus converts a wire value into an OrderStatus
func ParseStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if !status.IsValid() {
		return "", shared.NewValidationError("invalid order status %q", s)
	}
	return status, nil
}

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no transition leaves this status
func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo checks if the status can transition to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case StatusPending:
		return target == StatusShipped || target == StatusCancelled
	case StatusShipped:
		return target == StatusDelivered || target == StatusCancelled
	case StatusDelivered, StatusCancelled:
		return false
	}
	return false
}

// Customer holds the contact details copied onto the order at checkout.
// They are not a reference to a user account so that guests can order.
type Customer struct {
	Name  string
	Email string
	Phone string
}

// ProductRef is the subset of a product loaded alongside an order item
type ProductRef struct {
	ID         uuid.UUID
	Name       string
	Slug       string
	Image      string
	CategoryID uuid.UUID
}

// OrderItem represents a line item in an order
type OrderItem struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	ProductID string
	Quantity  int
	Price     decimal.Decimal // unit price captured at purchase time
	Variant   string
	Product   *ProductRef // nil when the product no longer exists
}

// Subtotal returns price × quantity
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// LineInput describes one line of a new order
type LineInput struct {
	ProductID string
	Quantity  int
	Price     decimal.Decimal
	Variant   string
}

// Order is the aggregate root for a customer order
type Order struct {
	shared.BaseAggregateRoot
	Total           decimal.Decimal
	Status          OrderStatus
	Customer        Customer
	ShippingAddress string
	WhatsAppEnabled bool
	Items           []OrderItem
}

// NewOrder validates the checkout input and builds a Pending order.
// The submitted total must equal the sum of the line subtotals.
func NewOrder(customer Customer, shippingAddress string, whatsAppEnabled bool, lines []LineInput, total decimal.Decimal) (*Order, error) {
	if len(lines) == 0 {
		return nil, shared.NewValidationError("order must contain at least one item")
	}
	if total.IsNegative() {
		return nil, shared.NewValidationError("order total cannot be negative")
	}
	customer.Name = strings.TrimSpace(customer.Name)
	customer.Email = strings.TrimSpace(customer.Email)
	customer.Phone = strings.TrimSpace(customer.Phone)
	if customer.Name == "" {
		return nil, shared.NewValidationError("customer name is required")
	}
	if customer.Email == "" {
		return nil, shared.NewValidationError("customer email is required")
	}
	shippingAddress = strings.TrimSpace(shippingAddress)
	if shippingAddress == "" {
		return nil, shared.NewValidationError("shipping address is required")
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Status:            StatusPending,
		Customer:          customer,
		ShippingAddress:   shippingAddress,
		WhatsAppEnabled:   whatsAppEnabled,
		Items:             make([]OrderItem, 0, len(lines)),
	}

	for idx, line := range lines {
		item, err := newOrderItem(o.ID, line)
		if err != nil {
			return nil, shared.NewValidationError("item %d: %s", idx+1, err.Error())
		}
		o.Items = append(o.Items, item)
	}

	computed := o.ComputedTotal()
	if !computed.Equal(total) {
		return nil, shared.NewValidationError("order total %s does not match item sum %s", total.String(), computed.String())
	}
	o.Total = computed

	o.AddDomainEvent(NewOrderPlacedEvent(o))
	return o, nil
}

func newOrderItem(orderID uuid.UUID, line LineInput) (OrderItem, error) {
	productID := strings.TrimSpace(line.ProductID)
	if productID == "" {
		return OrderItem{}, fmt.Errorf("product id is required")
	}
	if line.Quantity < 1 {
		return OrderItem{}, fmt.Errorf("quantity must be at least 1")
	}
	if line.Price.IsNegative() {
		return OrderItem{}, fmt.Errorf("price cannot be negative")
	}
	return OrderItem{
		ID:        uuid.New(),
		OrderID:   orderID,
		ProductID: productID,
		Quantity:  line.Quantity,
		Price:     line.Price,
		Variant:   strings.TrimSpace(line.Variant),
	}, nil
}

// SetStatus moves the order to target. With enforce=false any valid status
// may be set from any other, including the current one. With enforce=true
// only the edges of the lifecycle graph are accepted.
func (o *Order) SetStatus(target OrderStatus, enforce bool) error {
	if !target.IsValid() {
		return shared.NewValidationError("invalid order status %q", target)
	}
	if enforce && !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError(shared.CodeInvalidState,
			fmt.Sprintf("Cannot move order from %s to %s", o.Status, target))
	}

	previous := o.Status
	o.Status = target
	o.Touch()

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, previous))
	return nil
}

// ComputedTotal sums item subtotals
func (o *Order) ComputedTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// ItemCount returns the number of line items
func (o *Order) ItemCount() int {
	return len(o.Items)
}

// TotalQuantity returns the number of units across all lines
func (o *Order) TotalQuantity() int {
	qty := 0
	for _, item := range o.Items {
		qty += item.Quantity
	}
	return qty
}

// IsCancelled reports whether the order was cancelled
func (o *Order) IsCancelled() bool {
	return o.Status == StatusCancelled
}

// IsDelivered reports whether the order was delivered
func (o *Order) IsDelivered() bool {
	return o.Status == StatusDelivered
}
