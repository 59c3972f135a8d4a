package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/horologe/storefront/internal/domain/analytics"
	"github.com/horologe/storefront/internal/domain/catalog"
	"github.com/horologe/storefront/internal/domain/order"
	"github.com/horologe/storefront/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

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

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Category, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAll(ctx context.Context) ([]catalog.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) Save(ctx context.Context, c *catalog.Category) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCategoryRepository) ExistsBySlug(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoryRepository) ProductCounts(ctx context.Context) (map[uuid.UUID]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]int64), args.Error(1)
}

type MockProductCounter struct {
	mock.Mock
}

func (m *MockProductCounter) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

var (
	diversID = uuid.New()
	dressID  = uuid.New()
)

func testCategories() []catalog.Category {
	divers := catalog.Category{Name: "Divers"}
	divers.ID = diversID
	dress := catalog.Category{Name: "Dress"}
	dress.ID = dressID
	return []catalog.Category{divers, dress}
}

func orderAt(created time.Time, lines ...order.OrderItem) order.Order {
	o := order.Order{Status: order.StatusDelivered, Items: lines}
	o.ID = uuid.New()
	o.CreatedAt = created
	for _, l := range lines {
		o.Total = o.Total.Add(l.Subtotal())
	}
	return o
}

func line(category uuid.UUID, qty int, price int64) order.OrderItem {
	return order.OrderItem{
		ProductID: uuid.NewString(),
		Quantity:  qty,
		Price:     decimal.NewFromInt(price),
		Product:   &order.ProductRef{ID: uuid.New(), CategoryID: category},
	}
}

func setupService(orders []order.Order) (*Service, *MockOrderRepository, *MockCategoryRepository) {
	orderRepo := new(MockOrderRepository)
	catRepo := new(MockCategoryRepository)
	orderRepo.On("FindAll", mock.Anything, mock.MatchedBy(func(f order.ListFilter) bool {
		return f.ExcludeCancelled && f.CreatedFrom != nil && f.CreatedTo != nil
	})).Return(orders, nil)
	orderRepo.On("Summarize", mock.Anything, order.StatusDelivered).
		Return(order.Summary{Count: 4, Revenue: decimal.NewFromInt(1000)}, nil)
	orderRepo.On("CountByStatus", mock.Anything).Return(map[order.OrderStatus]int64{
		order.StatusPending:   3,
		order.StatusDelivered: 4,
		order.StatusCancelled: 1,
	}, nil)
	catRepo.On("FindAll", mock.Anything).Return(testCategories(), nil)

	return NewService(orderRepo, catRepo, new(MockProductCounter), time.UTC, zap.NewNop()), orderRepo, catRepo
}

func TestCompute_YearTrendMarchAndAugust(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	svc, _, _ := setupService([]order.Order{
		orderAt(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC), line(diversID, 1, 400)),
		orderAt(time.Date(2026, 8, 2, 18, 0, 0, 0, time.UTC), line(dressID, 2, 300)),
	})

	report, err := svc.Compute(context.Background(), analytics.PeriodYear, now)

	require.NoError(t, err)
	require.Len(t, report.TrendData, 12)
	for i, p := range report.TrendData {
		switch i {
		case 2:
			assert.Equal(t, "Mar", p.Label)
			assert.True(t, decimal.NewFromInt(400).Equal(p.Value))
		case 7:
			assert.Equal(t, "Aug", p.Label)
			assert.True(t, decimal.NewFromInt(600).Equal(p.Value))
		default:
			assert.True(t, p.Value.IsZero(), "bucket %d should be empty", i)
		}
	}
}

func TestCompute_CategorySharesSumTo100(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	svc, _, _ := setupService([]order.Order{
		orderAt(now.Add(-time.Hour), line(diversID, 1, 100), line(dressID, 2, 100)),
	})

	report, err := svc.Compute(context.Background(), analytics.PeriodWeek, now)

	require.NoError(t, err)
	require.Len(t, report.TrendData, 7)
	require.Len(t, report.CategoryStats, 2)
	assert.True(t, decimal.RequireFromString("33.33").Equal(report.CategoryStats[0].Percentage))
	assert.True(t, decimal.RequireFromString("66.67").Equal(report.CategoryStats[1].Percentage))
	sum := report.CategoryStats[0].Percentage.Add(report.CategoryStats[1].Percentage)
	assert.True(t, sum.Sub(decimal.NewFromInt(100)).Abs().LessThanOrEqual(decimal.RequireFromString("0.01")))
}

func TestCompute_NoRevenueGivesZeroShares(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	svc, _, _ := setupService([]order.Order{})

	report, err := svc.Compute(context.Background(), analytics.PeriodDay, now)

	require.NoError(t, err)
	require.Len(t, report.TrendData, 24)
	assert.Equal(t, "00:00", report.TrendData[0].Label)
	require.Len(t, report.CategoryStats, 2)
	for _, c := range report.CategoryStats {
		assert.True(t, c.Percentage.IsZero())
	}
}

func TestCompute_KPIsUseDeliveredOrders(t *testing.T) {
	svc, _, _ := setupService(nil)

	report, err := svc.Compute(context.Background(), analytics.PeriodMonth, time.Now())

	require.NoError(t, err)
	assert.Len(t, report.TrendData, 30)
	assert.True(t, decimal.NewFromInt(1000).Equal(report.KPIs.TotalRevenue))
	assert.True(t, decimal.NewFromInt(250).Equal(report.KPIs.AverageOrderValue))
	assert.Equal(t, int64(4), report.KPIs.DeliveredOrders)
	assert.Equal(t, int64(8), report.KPIs.TotalOrders)
	assert.Equal(t, int64(3), report.KPIs.PendingOrders)
}

func TestReport_PeriodValidation(t *testing.T) {
	svc, _, _ := setupService(nil)

	_, err := svc.Report(context.Background(), Query{Period: "Decade"})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	report, err := svc.Report(context.Background(), Query{})
	require.NoError(t, err)
	assert.Equal(t, "Month", report.Period)
}

func TestCompute_RepositoryError(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	orderRepo.On("FindAll", mock.Anything, mock.Anything).
		Return(nil, shared.NewPersistenceError("list orders", errors.New("timeout")))
	svc := NewService(orderRepo, new(MockCategoryRepository), new(MockProductCounter), nil, zap.NewNop())

	_, err := svc.Compute(context.Background(), analytics.PeriodDay, time.Now())
	assert.ErrorIs(t, err, shared.ErrPersistence)
}

func TestDashboard(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	products := new(MockProductCounter)
	recent := orderAt(time.Now(), line(diversID, 1, 100))

	orderRepo.On("CountByStatus", mock.Anything).Return(map[order.OrderStatus]int64{
		order.StatusPending: 2, order.StatusShipped: 1,
	}, nil)
	orderRepo.On("ListCustomers", mock.Anything, "").Return([]order.CustomerSummary{{Email: "a@x.io"}, {Email: "b@x.io"}}, nil)
	orderRepo.On("FindAll", mock.Anything, order.ListFilter{Limit: 5}).Return([]order.Order{recent}, nil)
	products.On("Count", mock.Anything).Return(int64(12), nil)

	svc := NewService(orderRepo, new(MockCategoryRepository), products, time.UTC, zap.NewNop())
	d, err := svc.Dashboard(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(3), d.TotalOrders)
	assert.Equal(t, int64(0), d.OrdersByStatus["Delivered"])
	assert.Equal(t, int64(12), d.ProductCount)
	assert.Equal(t, int64(2), d.CustomerCount)
	require.Len(t, d.RecentOrders, 1)
	assert.Equal(t, recent.ID, d.RecentOrders[0].ID)
}
