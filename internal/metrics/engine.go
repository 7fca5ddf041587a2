package metrics

import (
	"log/slog"

	"ecomcli/pkg/contracts/domain"
)

// Engine computes the KPI catalog. It holds no state beyond its logger;
// every method is a pure function of its input and safe for concurrent use.
type Engine struct {
	logger *slog.Logger
}

// NewEngine creates a metrics engine.
func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{logger: logger}
}

// delivered returns the subset of records contributing to recognized
// revenue. Only completed transactions count.
func delivered(records []domain.SalesRecord) []domain.SalesRecord {
	out := make([]domain.SalesRecord, 0, len(records))
	for _, r := range records {
		if r.Status == domain.StatusDelivered {
			out = append(out, r)
		}
	}
	return out
}

// distinctOrders counts unique order ids in the set.
func distinctOrders(records []domain.SalesRecord) int {
	seen := make(map[string]bool, len(records))
	for _, r := range records {
		seen[r.OrderID] = true
	}
	return len(seen)
}

// safeDiv divides, returning 0 when the denominator is 0.
func safeDiv(numerator float64, denominator int) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / float64(denominator)
}

// ratio builds a Ratio, invalid when the denominator is 0.
func ratio(numerator float64, denominator int) Ratio {
	if denominator == 0 {
		return Ratio{}
	}
	return Ratio{Value: numerator / float64(denominator), Valid: true}
}

// growthRate computes the percentage change from comparison to current,
// undefined when the comparison value is 0.
func growthRate(current, comparison float64) GrowthRate {
	if comparison == 0 {
		return GrowthRate{}
	}
	magnitude := comparison
	if magnitude < 0 {
		magnitude = -magnitude
	}
	return GrowthRate{Pct: (current - comparison) / magnitude * 100, Valid: true}
}
