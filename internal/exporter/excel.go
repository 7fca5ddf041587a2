package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"ecomcli/internal/metrics"
)

// ExcelWriter writes a combined summary workbook for consumption outside
// the dashboard, one sheet per metric group.
type ExcelWriter struct {
	logger *slog.Logger
}

// NewExcelWriter creates an Excel writer.
func NewExcelWriter(logger *slog.Logger) *ExcelWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExcelWriter{logger: logger}
}

// WriteSummary writes the full summary to an xlsx workbook at path.
func (w *ExcelWriter) WriteSummary(path string, summary *metrics.Summary) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := w.writeOverviewSheet(f, summary); err != nil {
		return err
	}
	if err := w.writeTrendsSheet(f, summary.Trends); err != nil {
		return err
	}
	if err := w.writeCategoriesSheet(f, summary.Categories); err != nil {
		return err
	}
	if err := w.writeGeographySheet(f, summary.Geography); err != nil {
		return err
	}

	// Replace the default sheet with the overview
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	w.logger.Info("summary workbook written",
		slog.String("path", path),
		slog.Int("records", summary.RecordCount))
	return nil
}

// setRow writes one row of values starting at column A.
func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func (w *ExcelWriter) writeOverviewSheet(f *excelize.File, summary *metrics.Summary) error {
	const sheet = "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	rows := [][]interface{}{
		{"period", summary.Period},
		{"records", summary.RecordCount},
		{"total_revenue", summary.Revenue.TotalRevenue},
		{"order_count", summary.Revenue.OrderCount},
		{"customer_count", summary.Revenue.CustomerCount},
		{"avg_order_value", summary.Revenue.AvgOrderValue},
		{"revenue_per_customer", summary.Revenue.RevenuePerCustomer},
		{"avg_review_score", formatRatio(summary.Experience.AvgReviewScore)},
		{"satisfaction_rate", formatRatio(summary.Experience.SatisfactionRate)},
		{"avg_delivery_days", formatRatio(summary.Experience.AvgDeliveryDays)},
		{"delivery_rate", summary.Operations.DeliveryRate},
		{"cancellation_rate", summary.Operations.CancellationRate},
	}
	if summary.Growth != nil {
		rows = append(rows,
			[]interface{}{"revenue_growth", formatGrowth(summary.Growth.Revenue)},
			[]interface{}{"order_growth", formatGrowth(summary.Growth.Orders)})
	}

	for i, row := range rows {
		if err := setRow(f, sheet, i+1, row); err != nil {
			return fmt.Errorf("failed to write summary row %d: %w", i+1, err)
		}
	}
	return nil
}

func (w *ExcelWriter) writeTrendsSheet(f *excelize.File, trends []metrics.MonthlyTrend) error {
	const sheet = "Trends"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	if err := setRow(f, sheet, 1, []interface{}{"month", "revenue", "order_count", "item_count", "mom_growth"}); err != nil {
		return err
	}
	for i, t := range trends {
		row := []interface{}{t.Month, t.Revenue, t.OrderCount, t.ItemCount, formatGrowth(t.MoMGrowth)}
		if err := setRow(f, sheet, i+2, row); err != nil {
			return fmt.Errorf("failed to write trend row %d: %w", i+2, err)
		}
	}
	return nil
}

func (w *ExcelWriter) writeCategoriesSheet(f *excelize.File, groups []metrics.CategoryMetrics) error {
	const sheet = "Categories"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	if err := setRow(f, sheet, 1, []interface{}{"category", "revenue", "order_count", "avg_order_value", "avg_review_score", "revenue_share"}); err != nil {
		return err
	}
	for i, g := range groups {
		row := []interface{}{g.Category, g.Revenue, g.OrderCount, g.AvgOrderValue, formatRatio(g.AvgReviewScore), g.RevenueShare}
		if err := setRow(f, sheet, i+2, row); err != nil {
			return fmt.Errorf("failed to write category row %d: %w", i+2, err)
		}
	}
	return nil
}

func (w *ExcelWriter) writeGeographySheet(f *excelize.File, groups []metrics.StateMetrics) error {
	const sheet = "Geography"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	if err := setRow(f, sheet, 1, []interface{}{"state", "revenue", "order_count", "customer_count", "market_share"}); err != nil {
		return err
	}
	for i, g := range groups {
		row := []interface{}{g.State, g.Revenue, g.OrderCount, g.CustomerCount, g.MarketShare}
		if err := setRow(f, sheet, i+2, row); err != nil {
			return fmt.Errorf("failed to write geography row %d: %w", i+2, err)
		}
	}
	return nil
}
