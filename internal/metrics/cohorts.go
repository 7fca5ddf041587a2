package metrics

import (
	"sort"
	"time"

	"ecomcli/pkg/contracts/domain"
)

// monthsBetween returns the calendar-month offset from a to b.
func monthsBetween(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}

// Cohorts groups customers by their first-purchase month and reports what
// share of each cohort purchased again at each month offset. Activity of
// any order status counts; rows without a customer id cannot be attributed
// to a cohort and are excluded. Each row's series runs from offset 0 to the
// cohort's last observed offset, gap offsets at 0. Rows are in
// chronological cohort order.
func (e *Engine) Cohorts(records []domain.SalesRecord) []CohortRow {
	firstMonth := make(map[string]time.Time)
	for _, r := range records {
		if r.CustomerID == "" {
			continue
		}
		month := monthKey(r.PurchasedAt)
		if seen, ok := firstMonth[r.CustomerID]; !ok || month.Before(seen) {
			firstMonth[r.CustomerID] = month
		}
	}
	if len(firstMonth) == 0 {
		return []CohortRow{}
	}

	type cell struct {
		cohort time.Time
		offset int
	}
	active := make(map[cell]map[string]bool)
	sizes := make(map[time.Time]map[string]bool)
	lastOffset := make(map[time.Time]int)

	for _, r := range records {
		if r.CustomerID == "" {
			continue
		}
		cohort := firstMonth[r.CustomerID]
		offset := monthsBetween(cohort, monthKey(r.PurchasedAt))

		if sizes[cohort] == nil {
			sizes[cohort] = make(map[string]bool)
		}
		sizes[cohort][r.CustomerID] = true

		c := cell{cohort, offset}
		if active[c] == nil {
			active[c] = make(map[string]bool)
		}
		active[c][r.CustomerID] = true
		if offset > lastOffset[cohort] {
			lastOffset[cohort] = offset
		}
	}

	months := make([]time.Time, 0, len(sizes))
	for month := range sizes {
		months = append(months, month)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	rows := make([]CohortRow, 0, len(months))
	for _, month := range months {
		size := len(sizes[month])
		retention := make([]float64, lastOffset[month]+1)
		for offset := range retention {
			retention[offset] = safeDiv(float64(len(active[cell{month, offset}])), size)
		}
		rows = append(rows, CohortRow{
			CohortMonth: month.Format("2006-01"),
			Customers:   size,
			Retention:   retention,
		})
	}
	return rows
}
