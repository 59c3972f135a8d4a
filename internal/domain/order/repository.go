package order

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ListFilter narrows an order listing. Zero values mean "no restriction".
type ListFilter struct {
	Status           *OrderStatus
	ExcludeCancelled bool
	Search           string // matched against id, customer name and customer email
	CreatedFrom      *time.Time
	CreatedTo        *time.Time // exclusive
	Limit            int
}

// Summary aggregates orders of one status
type Summary struct {
	Count   int64
	Revenue decimal.Decimal
}

// CustomerSummary is a customer derived from the contact details on orders,
// keyed by lower-cased email
type CustomerSummary struct {
	Name        string
	Email       string
	Phone       string
	OrderCount  int64
	TotalSpent  decimal.Decimal // excludes cancelled orders
	LastOrderAt time.Time
}

// Repository defines persistence operations for orders
type Repository interface {
	// FindByID loads an order with items and referenced products
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	// FindAll returns orders newest-first with items and referenced products
	FindAll(ctx context.Context, filter ListFilter) ([]Order, error)
	// Create persists an order and its items atomically
	Create(ctx context.Context, o *Order) error
	// UpdateStatus writes the status and update time of an existing order
	UpdateStatus(ctx context.Context, o *Order) error
	// CountByStatus returns the number of orders per status
	CountByStatus(ctx context.Context) (map[OrderStatus]int64, error)
	// Summarize returns count and summed totals for orders in a status
	Summarize(ctx context.Context, status OrderStatus) (Summary, error)
	// ListCustomers groups orders by customer email, most recent buyer first
	ListCustomers(ctx context.Context, search string) ([]CustomerSummary, error)
}
