package model

import "github.com/shopspring/decimal"

type SalesAnalytics struct {
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	TotalItemsSold int             `json:"total_items_sold"`
	TotalOrders    int             `json:"total_orders"`
	TopProducts    []ProductSales  `json:"top_products"`
	DailyTrend     []RevenuePoint  `json:"daily_trend"`
	MonthlyTrend   []RevenuePoint  `json:"monthly_trend"`
}

type ProductSales struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Total     decimal.Decimal `json:"total"`
}

// RevenuePoint is revenue for one period: "2006-01-02" for days, "2006-01" for months.
type RevenuePoint struct {
	Period string          `json:"period"`
	Total  decimal.Decimal `json:"total"`
}
