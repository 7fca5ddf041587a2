package metrics

import (
	"sort"

	"ecomcli/pkg/contracts/domain"
)

// Revenue computes recognized-revenue metrics for one period. An empty
// delivered set is an expected edge case: every figure is 0 and ZeroOrders
// is set instead of failing.
func (e *Engine) Revenue(records []domain.SalesRecord) RevenueMetrics {
	recognized := delivered(records)

	orderTotals := make(map[string]float64, len(recognized))
	customers := make(map[string]bool, len(recognized))
	total := 0.0
	for _, r := range recognized {
		revenue := r.Revenue()
		total += revenue
		orderTotals[r.OrderID] += revenue
		if r.CustomerID != "" {
			customers[r.CustomerID] = true
		}
	}

	m := RevenueMetrics{
		TotalRevenue:  total,
		OrderCount:    len(orderTotals),
		CustomerCount: len(customers),
		ItemCount:     len(recognized),
	}
	if m.OrderCount == 0 {
		m.ZeroOrders = true
		return m
	}

	m.AvgOrderValue = safeDiv(total, m.OrderCount)
	m.MedianOrderValue = medianOrderValue(orderTotals)
	m.RevenuePerCustomer = safeDiv(total, m.CustomerCount)
	m.AvgItemsPerOrder = safeDiv(float64(m.ItemCount), m.OrderCount)
	return m
}

// medianOrderValue returns the median of the per-order revenue totals.
func medianOrderValue(orderTotals map[string]float64) float64 {
	values := make([]float64, 0, len(orderTotals))
	for _, v := range orderTotals {
		values = append(values, v)
	}
	sort.Float64s(values)
	n := len(values)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return values[n/2]
	}
	return (values[n/2-1] + values[n/2]) / 2
}

// Growth compares two periods' revenue metrics. Any comparison figure of 0
// yields an undefined rate, never an infinite one.
func (e *Engine) Growth(current, comparison []domain.SalesRecord) GrowthMetrics {
	cur := e.Revenue(current)
	prev := e.Revenue(comparison)

	return GrowthMetrics{
		Revenue:            growthRate(cur.TotalRevenue, prev.TotalRevenue),
		Orders:             growthRate(float64(cur.OrderCount), float64(prev.OrderCount)),
		AvgOrderValue:      growthRate(cur.AvgOrderValue, prev.AvgOrderValue),
		RevenuePerCustomer: growthRate(cur.RevenuePerCustomer, prev.RevenuePerCustomer),
		RevenueChange:      cur.TotalRevenue - prev.TotalRevenue,
		OrderChange:        cur.OrderCount - prev.OrderCount,
	}
}
