package metrics

import (
	"sort"

	"ecomcli/pkg/contracts/domain"
)

// Categories breaks the period down by product category. Records without a
// category survive under the Unclassified bucket; no row is ever dropped.
// Results are ordered by descending revenue, ties by name.
func (e *Engine) Categories(records []domain.SalesRecord) []CategoryMetrics {
	type bucket struct {
		revenue         float64
		orders          map[string]bool
		deliveredOrders map[string]bool
		items           int
		scoreSum        int
		scored          int
	}
	buckets := make(map[string]*bucket)
	totalRevenue := 0.0

	for _, r := range records {
		name := CategoryUnclassified
		if r.Category != nil {
			name = *r.Category
		}
		b := buckets[name]
		if b == nil {
			b = &bucket{orders: make(map[string]bool), deliveredOrders: make(map[string]bool)}
			buckets[name] = b
		}
		b.orders[r.OrderID] = true
		b.items++
		if r.Status == domain.StatusDelivered {
			b.revenue += r.Revenue()
			b.deliveredOrders[r.OrderID] = true
			totalRevenue += r.Revenue()
		}
		if r.ReviewScore != nil {
			b.scoreSum += *r.ReviewScore
			b.scored++
		}
	}

	groups := make([]CategoryMetrics, 0, len(buckets))
	for name, b := range buckets {
		group := CategoryMetrics{
			Category:       name,
			Revenue:        b.revenue,
			OrderCount:     len(b.orders),
			ItemCount:      b.items,
			AvgOrderValue:  safeDiv(b.revenue, len(b.deliveredOrders)),
			AvgReviewScore: ratio(float64(b.scoreSum), b.scored),
		}
		if totalRevenue > 0 {
			group.RevenueShare = b.revenue / totalRevenue
		}
		groups = append(groups, group)
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Revenue != groups[j].Revenue {
			return groups[i].Revenue > groups[j].Revenue
		}
		return groups[i].Category < groups[j].Category
	})
	return groups
}

// Geography breaks the period down by customer state, Unknown for records
// without one. MarketShare is the state's fraction of total recognized
// revenue. Results are ordered by descending revenue, ties by state.
func (e *Engine) Geography(records []domain.SalesRecord) []StateMetrics {
	type bucket struct {
		revenue   float64
		orders    map[string]bool
		customers map[string]bool
	}
	buckets := make(map[string]*bucket)
	totalRevenue := 0.0

	for _, r := range records {
		name := StateUnknown
		if r.CustomerState != nil {
			name = *r.CustomerState
		}
		b := buckets[name]
		if b == nil {
			b = &bucket{orders: make(map[string]bool), customers: make(map[string]bool)}
			buckets[name] = b
		}
		b.orders[r.OrderID] = true
		if r.CustomerID != "" {
			b.customers[r.CustomerID] = true
		}
		if r.Status == domain.StatusDelivered {
			b.revenue += r.Revenue()
			totalRevenue += r.Revenue()
		}
	}

	groups := make([]StateMetrics, 0, len(buckets))
	for name, b := range buckets {
		group := StateMetrics{
			State:         name,
			Revenue:       b.revenue,
			OrderCount:    len(b.orders),
			CustomerCount: len(b.customers),
		}
		if totalRevenue > 0 {
			group.MarketShare = b.revenue / totalRevenue
		}
		groups = append(groups, group)
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Revenue != groups[j].Revenue {
			return groups[i].Revenue > groups[j].Revenue
		}
		return groups[i].State < groups[j].State
	})
	return groups
}
