package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"
	orderapp "github.com/horologe/storefront/internal/application/order"
	"github.com/horologe/storefront/internal/domain/analytics"
	"github.com/horologe/storefront/internal/domain/catalog"
	"github.com/horologe/storefront/internal/domain/order"
	"github.com/horologe/storefront/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// ProductCounter counts catalog products for the dashboard
type ProductCounter interface {
	Count(ctx context.Context) (int64, error)
}

// Service computes revenue reports over stored orders
type Service struct {
	orders     order.Repository
	categories catalog.CategoryRepository
	products   ProductCounter
	location   *time.Location
	now        func() time.Time
	logger     *zap.Logger
}

// NewService creates a new analytics Service. Buckets are cut in loc.
func NewService(
	orders order.Repository,
	categories catalog.CategoryRepository,
	products ProductCounter,
	loc *time.Location,
	logger *zap.Logger,
) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		orders:     orders,
		categories: categories,
		products:   products,
		location:   loc,
		now:        time.Now,
		logger:     logger,
	}
}

// Report computes the report for a period token relative to the current time
func (s *Service) Report(ctx context.Context, q Query) (*Report, error) {
	token := q.Period
	if token == "" {
		token = string(analytics.PeriodMonth)
	}
	period, err := analytics.ParsePeriod(token)
	if err != nil {
		return nil, err
	}
	return s.Compute(ctx, period, s.now())
}

// Compute builds the trend, category shares and KPIs for period as seen at now
func (s *Service) Compute(ctx context.Context, period analytics.Period, now time.Time) (*Report, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "analytics", "compute",
		telemetry.WithAttribute(telemetry.SpanAttrPeriod, string(period)))
	defer span.End()

	now = now.In(s.location)
	from, to := period.Range(now)

	orders, err := s.orders.FindAll(ctx, order.ListFilter{
		ExcludeCancelled: true,
		CreatedFrom:      &from,
		CreatedTo:        &to,
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	cats, err := s.categories.FindAll(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	kpis, err := s.kpis(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	facts := toFacts(orders)
	trend := analytics.BuildTrend(period.Buckets(now), facts)
	shares := analytics.BuildCategoryShares(toCategoryRefs(cats), facts)

	report := &Report{
		Period:        string(period),
		TrendData:     make([]TrendPoint, len(trend)),
		CategoryStats: make([]CategoryStat, len(shares)),
		KPIs:          *kpis,
	}
	for i, p := range trend {
		report.TrendData[i] = TrendPoint{Label: p.Label, Value: p.Value}
	}
	for i, c := range shares {
		report.CategoryStats[i] = CategoryStat{
			CategoryID: c.CategoryID,
			Name:       c.Name,
			Revenue:    c.Revenue,
			Percentage: c.Percentage,
		}
	}
	return report, nil
}

// kpis reads the all-time figures. Revenue covers delivered orders only.
func (s *Service) kpis(ctx context.Context) (*KPIs, error) {
	delivered, err := s.orders.Summarize(ctx, order.StatusDelivered)
	if err != nil {
		return nil, err
	}
	counts, err := s.orders.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, n := range counts {
		total += n
	}
	return &KPIs{
		TotalRevenue:      delivered.Revenue,
		AverageOrderValue: analytics.AverageOrderValue(delivered.Revenue, delivered.Count),
		DeliveredOrders:   delivered.Count,
		TotalOrders:       total,
		PendingOrders:     counts[order.StatusPending],
	}, nil
}

// Dashboard summarises order counts, catalog size, customers and the five
// most recent orders
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "analytics", "dashboard")
	defer span.End()

	counts, err := s.orders.CountByStatus(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	products, err := s.products.Count(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	customers, err := s.orders.ListCustomers(ctx, "")
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	recent, err := s.orders.FindAll(ctx, order.ListFilter{Limit: 5})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	d := &Dashboard{
		OrdersByStatus: make(map[string]int64, len(order.AllStatuses())),
		ProductCount:   products,
		CustomerCount:  int64(len(customers)),
		RecentOrders:   orderapp.ToOrderResponses(recent),
	}
	for _, status := range order.AllStatuses() {
		d.OrdersByStatus[status.String()] = counts[status]
		d.TotalOrders += counts[status]
	}
	return d, nil
}

func toFacts(orders []order.Order) []analytics.OrderFact {
	facts := make([]analytics.OrderFact, len(orders))
	for i, o := range orders {
		lines := make([]analytics.LineFact, 0, len(o.Items))
		for _, item := range o.Items {
			line := analytics.LineFact{Revenue: item.Subtotal()}
			if item.Product != nil {
				line.CategoryID = categoryKey(item.Product.CategoryID)
			}
			lines = append(lines, line)
		}
		facts[i] = analytics.OrderFact{
			CreatedAt: o.CreatedAt,
			Total:     o.Total,
			Cancelled: o.IsCancelled(),
			Lines:     lines,
		}
	}
	return facts
}

func toCategoryRefs(cats []catalog.Category) []analytics.CategoryRef {
	refs := make([]analytics.CategoryRef, len(cats))
	for i, c := range cats {
		refs[i] = analytics.CategoryRef{ID: categoryKey(c.ID), Name: c.Name}
	}
	return refs
}

// categoryKey renders a category id the way order facts carry it
func categoryKey(id uuid.UUID) string {
	if id == uuid.Nil {
		return ""
	}
	return id.String()
}
