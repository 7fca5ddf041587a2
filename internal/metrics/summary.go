package metrics

import (
	"log/slog"

	"ecomcli/pkg/contracts/domain"
)

// SummaryOptions carries the bookkeeping attached to a summary result.
type SummaryOptions struct {
	Period string
	Window *domain.DateWindow
}

// Summary composes every metric group for the current period. A nil
// comparison set leaves Growth nil so callers can tell a missing
// comparison apart from zero growth. Every group function is total.
func (e *Engine) Summary(current, comparison []domain.SalesRecord, opts SummaryOptions) *Summary {
	summary := &Summary{
		Period:      opts.Period,
		Window:      opts.Window,
		RecordCount: len(current),
		Revenue:     e.Revenue(current),
		Trends:      e.MonthlyTrends(current),
		Categories:  e.Categories(current),
		Geography:   e.Geography(current),
		Experience:  e.Experience(current),
		Operations:  e.Operations(current),
	}

	if comparison != nil {
		growth := e.Growth(current, comparison)
		summary.Growth = &growth
	}

	e.logger.Debug("summary computed",
		slog.String("period", opts.Period),
		slog.Int("records", len(current)),
		slog.Int("orders", distinctOrders(current)),
		slog.Int("comparison_records", len(comparison)),
		slog.Float64("total_revenue", summary.Revenue.TotalRevenue))

	return summary
}
