package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/horologe/storefront/internal/domain/order"
	"github.com/horologe/storefront/internal/domain/settings"
	"github.com/horologe/storefront/internal/domain/shared"
	"github.com/horologe/storefront/internal/infrastructure/printing"
	"github.com/stretchr/testify/mock"
)

// MockOrderRepository is a mock implementation of order.Repository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter order.ListFilter) ([]order.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) Create(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) CountByStatus(ctx context.Context) (map[order.OrderStatus]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[order.OrderStatus]int64), args.Error(1)
}

func (m *MockOrderRepository) Summarize(ctx context.Context, status order.OrderStatus) (order.Summary, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(order.Summary), args.Error(1)
}

func (m *MockOrderRepository) ListCustomers(ctx context.Context, search string) ([]order.CustomerSummary, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.CustomerSummary), args.Error(1)
}

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// MockInvoicePrinter is a mock implementation of InvoicePrinter
type MockInvoicePrinter struct {
	mock.Mock
}

func (m *MockInvoicePrinter) Print(ctx context.Context, data printing.InvoiceData) (*printing.Document, error) {
	args := m.Called(ctx, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*printing.Document), args.Error(1)
}

// MockSettingsSource is a mock implementation of StoreSettingsSource
type MockSettingsSource struct {
	mock.Mock
}

func (m *MockSettingsSource) FindStore(ctx context.Context) (*settings.StoreSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settings.StoreSettings), args.Error(1)
}
