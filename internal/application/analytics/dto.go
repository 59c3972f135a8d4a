package analytics

import (
	"github.com/horologe/storefront/internal/application/order"
	"github.com/shopspring/decimal"
)

// Query selects the reporting period
type Query struct {
	Period string `form:"period" binding:"omitempty,analytics_period"`
}

// TrendPoint is one bucket of the revenue trend
type TrendPoint struct {
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
}

// CategoryStat is a category's share of period revenue
type CategoryStat struct {
	CategoryID string          `json:"categoryId"`
	Name       string          `json:"name"`
	Revenue    decimal.Decimal `json:"revenue"`
	Percentage decimal.Decimal `json:"percentage"`
}

// KPIs are the headline figures
type KPIs struct {
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
	DeliveredOrders   int64           `json:"deliveredOrders"`
	TotalOrders       int64           `json:"totalOrders"`
	PendingOrders     int64           `json:"pendingOrders"`
}

// Report is the analytics response
type Report struct {
	Period        string         `json:"period"`
	TrendData     []TrendPoint   `json:"trendData"`
	CategoryStats []CategoryStat `json:"categoryStats"`
	KPIs          KPIs           `json:"kpis"`
}

// Dashboard is the back-office landing summary
type Dashboard struct {
	OrdersByStatus map[string]int64      `json:"ordersByStatus"`
	TotalOrders    int64                 `json:"totalOrders"`
	ProductCount   int64                 `json:"productCount"`
	CustomerCount  int64                 `json:"customerCount"`
	RecentOrders   []order.OrderResponse `json:"recentOrders"`
}
