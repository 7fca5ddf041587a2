package exporter

import (
	"fmt"

	"ecomcli/internal/metrics"
)

// formatFloat formats a float64 value for CSV output with exactly 2 decimal places
func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// formatInt formats an int value for CSV output
func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}

// formatRatio renders a Ratio, "N/A" when undefined.
func formatRatio(r metrics.Ratio) string {
	if !r.Valid {
		return "N/A"
	}
	return formatFloat(r.Value)
}

// formatGrowth renders a GrowthRate as a percentage, "N/A" when undefined.
func formatGrowth(g metrics.GrowthRate) string {
	if !g.Valid {
		return "N/A"
	}
	return fmt.Sprintf("%.2f%%", g.Pct)
}
