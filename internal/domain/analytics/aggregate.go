package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// OrderFact is the slice of an order the aggregations read
type OrderFact struct {
	CreatedAt time.Time
	Total     decimal.Decimal
	Cancelled bool
	Lines     []LineFact
}

// LineFact is one order line attributed to a category. CategoryID is empty
// when the referenced product no longer exists.
type LineFact struct {
	CategoryID string
	Revenue    decimal.Decimal // price × quantity
}

// CategoryRef names a category for the share report
type CategoryRef struct {
	ID   string
	Name string
}

// TrendPoint is the revenue of one bucket
type TrendPoint struct {
	Label string
	Value decimal.Decimal
}

// CategoryShare is a category's revenue and percentage of the cross-category total
type CategoryShare struct {
	CategoryID string
	Name       string
	Revenue    decimal.Decimal
	Percentage decimal.Decimal // 0..100, two decimals
}

// KPIs are the headline figures. Revenue figures cover delivered orders only.
type KPIs struct {
	TotalRevenue      decimal.Decimal
	AverageOrderValue decimal.Decimal
	DeliveredOrders   int64
	TotalOrders       int64
	PendingOrders     int64
}

// BuildTrend sums non-cancelled order totals into the given buckets.
// The result always has len(buckets) points.
func BuildTrend(buckets []Bucket, orders []OrderFact) []TrendPoint {
	points := make([]TrendPoint, len(buckets))
	for i, b := range buckets {
		points[i] = TrendPoint{Label: b.Label, Value: decimal.Zero}
	}
	if len(buckets) == 0 {
		return points
	}

	loc := buckets[0].Start.Location()
	for _, o := range orders {
		if o.Cancelled {
			continue
		}
		idx := bucketIndex(buckets, o.CreatedAt.In(loc))
		if idx < 0 {
			continue
		}
		points[idx].Value = points[idx].Value.Add(o.Total)
	}
	return points
}

// bucketIndex finds the bucket containing t by binary search on Start
func bucketIndex(buckets []Bucket, t time.Time) int {
	i := sort.Search(len(buckets), func(i int) bool {
		return buckets[i].End.After(t)
	})
	if i < len(buckets) && buckets[i].Contains(t) {
		return i
	}
	return -1
}

// BuildCategoryShares attributes line revenue of non-cancelled orders to
// categories. Every category in cats appears in the result, in the given
// order. Percentages are all zero when there is no revenue.
func BuildCategoryShares(cats []CategoryRef, orders []OrderFact) []CategoryShare {
	revenue := make(map[string]decimal.Decimal, len(cats))
	for _, c := range cats {
		revenue[c.ID] = decimal.Zero
	}

	total := decimal.Zero
	for _, o := range orders {
		if o.Cancelled {
			continue
		}
		for _, l := range o.Lines {
			current, known := revenue[l.CategoryID]
			if !known {
				continue
			}
			revenue[l.CategoryID] = current.Add(l.Revenue)
			total = total.Add(l.Revenue)
		}
	}

	hundred := decimal.NewFromInt(100)
	shares := make([]CategoryShare, len(cats))
	for i, c := range cats {
		r := revenue[c.ID]
		pct := decimal.Zero
		if total.IsPositive() {
			pct = r.Div(total).Mul(hundred).Round(2)
		}
		shares[i] = CategoryShare{CategoryID: c.ID, Name: c.Name, Revenue: r, Percentage: pct}
	}
	return shares
}

// AverageOrderValue divides revenue by count, zero when count is zero
func AverageOrderValue(revenue decimal.Decimal, count int64) decimal.Decimal {
	if count <= 0 {
		return decimal.Zero
	}
	return revenue.Div(decimal.NewFromInt(count)).Round(2)
}
