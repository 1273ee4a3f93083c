package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/fekuna/omnipos-retail-service/internal/model"
	"github.com/shopspring/decimal"
)

const (
	DefaultTopN = 5

	dayLayout   = "2006-01-02"
	monthLayout = "2006-01"
)

type productTally struct {
	sales    model.ProductSales
	lastSeen time.Time
}

// Aggregate folds sales into revenue totals, the topN best sellers by quantity and
// daily and monthly revenue trends. Periods are UTC calendar days and months.
// It returns nil when sales is empty.
func Aggregate(sales []model.Sale, topN int) *model.SalesAnalytics {
	if len(sales) == 0 {
		return nil
	}
	if topN <= 0 {
		topN = DefaultTopN
	}

	out := &model.SalesAnalytics{
		TotalRevenue: decimal.Zero,
		TotalOrders:  len(sales),
	}
	products := map[string]*productTally{}
	daily := map[string]decimal.Decimal{}
	monthly := map[string]decimal.Decimal{}

	for _, s := range sales {
		out.TotalRevenue = out.TotalRevenue.Add(s.TotalAmount)

		at := s.CreatedAt.UTC()
		day, month := at.Format(dayLayout), at.Format(monthLayout)
		daily[day] = daily[day].Add(s.TotalAmount)
		monthly[month] = monthly[month].Add(s.TotalAmount)

		for _, it := range s.Items {
			out.TotalItemsSold += it.Quantity

			t, ok := products[it.ProductID]
			if !ok {
				t = &productTally{sales: model.ProductSales{ProductID: it.ProductID, Total: decimal.Zero}}
				products[it.ProductID] = t
			}
			t.sales.Quantity += it.Quantity
			t.sales.Total = t.sales.Total.Add(it.Subtotal)
			// products can be renamed; report the name from the most recent sale
			if !ok || !at.Before(t.lastSeen) {
				t.sales.Name = it.ProductName
				t.lastSeen = at
			}
		}
	}

	out.TopProducts = topProducts(products, topN)
	out.DailyTrend = trend(daily)
	out.MonthlyTrend = trend(monthly)
	return out
}

func topProducts(products map[string]*productTally, n int) []model.ProductSales {
	ranked := make([]model.ProductSales, 0, len(products))
	for _, t := range products {
		ranked = append(ranked, t.sales)
	}
	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Quantity != b.Quantity {
			return a.Quantity > b.Quantity
		}
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c < 0
		}
		return a.ProductID < b.ProductID
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// trend orders periods ascending; both layouts sort lexically.
func trend(totals map[string]decimal.Decimal) []model.RevenuePoint {
	points := make([]model.RevenuePoint, 0, len(totals))
	for period, total := range totals {
		points = append(points, model.RevenuePoint{Period: period, Total: total})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Period < points[j].Period })
	return points
}
