package metrics

import (
	"time"

	"ecomcli/pkg/contracts/domain"
)

// monthKey truncates a timestamp to its calendar month.
func monthKey(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthlyTrends groups records by calendar month of purchase. Revenue is
// recognized (delivered-only) while order and item counts cover every
// status, so a month of heavy cancellations still shows its activity.
// Months with no records between the earliest and latest purchase are
// emitted with zero values; the series is chronological and each month
// carries its month-over-month revenue growth.
func (e *Engine) MonthlyTrends(records []domain.SalesRecord) []MonthlyTrend {
	if len(records) == 0 {
		return []MonthlyTrend{}
	}

	type bucket struct {
		revenue float64
		orders  map[string]bool
		items   int
	}
	buckets := make(map[time.Time]*bucket)
	var first, last time.Time

	for _, r := range records {
		month := monthKey(r.PurchasedAt)
		if first.IsZero() || month.Before(first) {
			first = month
		}
		if month.After(last) {
			last = month
		}
		b := buckets[month]
		if b == nil {
			b = &bucket{orders: make(map[string]bool)}
			buckets[month] = b
		}
		if r.Status == domain.StatusDelivered {
			b.revenue += r.Revenue()
		}
		b.orders[r.OrderID] = true
		b.items++
	}

	var trends []MonthlyTrend
	prevRevenue := 0.0
	for month := first; !month.After(last); month = month.AddDate(0, 1, 0) {
		trend := MonthlyTrend{Month: month.Format("2006-01")}
		if b := buckets[month]; b != nil {
			trend.Revenue = b.revenue
			trend.OrderCount = len(b.orders)
			trend.ItemCount = b.items
		}
		if len(trends) > 0 {
			trend.MoMGrowth = growthRate(trend.Revenue, prevRevenue)
		}
		prevRevenue = trend.Revenue
		trends = append(trends, trend)
	}
	return trends
}
