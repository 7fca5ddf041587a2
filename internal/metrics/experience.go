package metrics

import (
	"ecomcli/pkg/contracts/domain"
)

// fastDeliveryDays is the threshold for the fast-delivery rate.
const fastDeliveryDays = 3.0

// Experience computes review and delivery-speed metrics. Review figures run
// over scored item rows; delivery figures run over distinct orders carrying
// both purchase and delivery timestamps. Rows lacking a field are excluded
// from that figure's denominator, not treated as zero.
func (e *Engine) Experience(records []domain.SalesRecord) ExperienceMetrics {
	scoreSum := 0
	scored := 0
	satisfied := 0
	for _, r := range records {
		if r.ReviewScore == nil {
			continue
		}
		scored++
		scoreSum += *r.ReviewScore
		if *r.ReviewScore >= 4 {
			satisfied++
		}
	}

	// Delivery speed is an order-level property; dedupe item rows first.
	seen := make(map[string]bool, len(records))
	daysSum := 0.0
	deliveredOrders := 0
	fast := 0
	dist := map[string]int{}
	for _, r := range records {
		if seen[r.OrderID] {
			continue
		}
		seen[r.OrderID] = true
		days, ok := r.DeliveryDays()
		if !ok {
			continue
		}
		deliveredOrders++
		daysSum += days
		switch {
		case days <= fastDeliveryDays:
			fast++
			dist[SpeedFast]++
		case days <= 7:
			dist[SpeedNormal]++
		default:
			dist[SpeedSlow]++
		}
	}

	return ExperienceMetrics{
		AvgReviewScore:    ratio(float64(scoreSum), scored),
		SatisfactionRate:  ratio(float64(satisfied), scored),
		AvgDeliveryDays:   ratio(daysSum, deliveredOrders),
		FastDeliveryRate:  ratio(float64(fast), deliveredOrders),
		DeliverySpeedDist: dist,
	}
}

// Operations computes fulfillment rates over distinct orders. Unrecognized
// statuses land in the "other" bucket rather than failing the call.
func (e *Engine) Operations(records []domain.SalesRecord) OperationalMetrics {
	statusByOrder := make(map[string]domain.OrderStatus, len(records))
	for _, r := range records {
		statusByOrder[r.OrderID] = r.Status
	}

	counts := make(map[domain.OrderStatus]int)
	for _, status := range statusByOrder {
		counts[status]++
	}

	total := len(statusByOrder)
	m := OperationalMetrics{
		TotalOrders:  total,
		StatusCounts: counts,
	}
	if total == 0 {
		m.ZeroOrders = true
		return m
	}

	m.DeliveryRate = safeDiv(float64(counts[domain.StatusDelivered]), total)
	m.FulfillmentRate = safeDiv(float64(counts[domain.StatusShipped]+counts[domain.StatusDelivered]), total)
	m.CancellationRate = safeDiv(float64(counts[domain.StatusCanceled]), total)
	m.ReturnRate = safeDiv(float64(counts[domain.StatusReturned]), total)
	return m
}
