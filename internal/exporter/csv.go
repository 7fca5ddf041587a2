package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"ecomcli/internal/metrics"
)

// CSVWriter writes metric tables as CSV files under a reports directory.
type CSVWriter struct {
	dir    string
	logger *slog.Logger
}

// NewCSVWriter creates a CSV writer rooted at the given reports directory.
func NewCSVWriter(dir string, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{dir: dir, logger: logger}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes one table to a file below the reports directory,
// truncating any previous report.
func (w *CSVWriter) WriteCSV(filename string, options WriteOptions) error {
	fullPath := filepath.Join(w.dir, filename)

	w.logger.Info("writing CSV report",
		slog.String("path", fullPath),
		slog.Int("record_count", len(options.Records)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}
	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	return writer.Error()
}

// WriteTrends writes the monthly trend series to monthly_trends.csv.
func (w *CSVWriter) WriteTrends(trends []metrics.MonthlyTrend) error {
	records := make([][]string, 0, len(trends))
	for _, t := range trends {
		records = append(records, []string{
			t.Month,
			formatFloat(t.Revenue),
			formatInt(t.OrderCount),
			formatInt(t.ItemCount),
			formatGrowth(t.MoMGrowth),
		})
	}
	return w.WriteCSV("monthly_trends.csv", WriteOptions{
		Headers:   []string{"month", "revenue", "order_count", "item_count", "mom_growth"},
		Records:   records,
		BOMPrefix: true,
	})
}

// WriteCategories writes the category breakdown to category_metrics.csv.
func (w *CSVWriter) WriteCategories(groups []metrics.CategoryMetrics) error {
	records := make([][]string, 0, len(groups))
	for _, g := range groups {
		records = append(records, []string{
			g.Category,
			formatFloat(g.Revenue),
			formatInt(g.OrderCount),
			formatInt(g.ItemCount),
			formatFloat(g.AvgOrderValue),
			formatRatio(g.AvgReviewScore),
			formatFloat(g.RevenueShare),
		})
	}
	return w.WriteCSV("category_metrics.csv", WriteOptions{
		Headers:   []string{"category", "revenue", "order_count", "item_count", "avg_order_value", "avg_review_score", "revenue_share"},
		Records:   records,
		BOMPrefix: true,
	})
}

// WriteGeography writes the state breakdown to state_metrics.csv.
func (w *CSVWriter) WriteGeography(groups []metrics.StateMetrics) error {
	records := make([][]string, 0, len(groups))
	for _, g := range groups {
		records = append(records, []string{
			g.State,
			formatFloat(g.Revenue),
			formatInt(g.OrderCount),
			formatInt(g.CustomerCount),
			formatFloat(g.MarketShare),
		})
	}
	return w.WriteCSV("state_metrics.csv", WriteOptions{
		Headers:   []string{"state", "revenue", "order_count", "customer_count", "market_share"},
		Records:   records,
		BOMPrefix: true,
	})
}

// WriteSummary writes every tabular group of a summary as CSV reports.
func (w *CSVWriter) WriteSummary(summary *metrics.Summary) error {
	if err := w.WriteTrends(summary.Trends); err != nil {
		return err
	}
	if err := w.WriteCategories(summary.Categories); err != nil {
		return err
	}
	return w.WriteGeography(summary.Geography)
}
