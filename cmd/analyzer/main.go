package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"ecomcli/internal/config"
	"ecomcli/internal/dataset"
	"ecomcli/internal/exporter"
	"ecomcli/internal/infrastructure"
	"ecomcli/internal/metrics"
	"ecomcli/pkg/contracts/domain"
)

const dateLayout = "2006-01-02"

func main() {
	dir := flag.String("dir", "", "directory containing the five dataset CSV files (defaults to configured data dir)")
	out := flag.String("out", "", "output directory or file path (defaults to configured reports dir)")
	start := flag.String("start", "", "analysis window start, YYYY-MM-DD (inclusive)")
	end := flag.String("end", "", "analysis window end, YYYY-MM-DD (exclusive)")
	format := flag.String("format", "csv", "output format: csv | xlsx | json")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger, closer, err := infrastructure.NewLogger(cfg.Logging)
	if err != nil {
		slog.Error("failed to create logger", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if closer != nil {
		defer closer.Close()
	}
	slog.SetDefault(logger)

	if *dir == "" {
		*dir = cfg.Paths.DataDir
	}
	if *out == "" {
		*out = cfg.Paths.ReportsDir
	}

	window, err := parseWindow(*start, *end, cfg)
	if err != nil {
		logger.Error("invalid analysis window", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := run(context.Background(), logger, *dir, *out, *format, window); err != nil {
		logger.Error("analysis failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// parseWindow resolves the analysis window from flags, falling back to the
// configured default. Empty everywhere means "all data".
func parseWindow(start, end string, cfg *config.Config) (domain.DateWindow, error) {
	if start == "" && end == "" {
		return cfg.Analysis.Window()
	}
	if start == "" || end == "" {
		return domain.DateWindow{}, fmt.Errorf("-start and -end must be provided together")
	}
	startAt, err := time.Parse(dateLayout, start)
	if err != nil {
		return domain.DateWindow{}, fmt.Errorf("parse -start: %w", err)
	}
	endAt, err := time.Parse(dateLayout, end)
	if err != nil {
		return domain.DateWindow{}, fmt.Errorf("parse -end: %w", err)
	}
	window := domain.DateWindow{Start: startAt, End: endAt}
	if err := window.Validate(); err != nil {
		return domain.DateWindow{}, err
	}
	return window, nil
}

func run(ctx context.Context, logger *slog.Logger, dir, out, format string, window domain.DateWindow) error {
	loader := dataset.NewLoader(dir, logger, dataset.SlogSink{Logger: logger})

	raw, err := loader.Load(ctx)
	if err != nil {
		return err
	}
	records := loader.Merge(loader.Clean(raw))

	current := dataset.FilterByDate(records, window)
	var comparison []domain.SalesRecord
	opts := metrics.SummaryOptions{Period: "All data"}
	if !window.IsZero() {
		comparison = dataset.FilterByDate(records, window.Previous())
		opts.Period = fmt.Sprintf("%s to %s", window.Start.Format(dateLayout), window.End.Format(dateLayout))
		opts.Window = &window
	}

	engine := metrics.NewEngine(logger)
	summary := engine.Summary(current, comparison, opts)

	if err := write(logger, out, format, summary); err != nil {
		return err
	}

	for _, event := range loader.Report() {
		logger.Info("data quality total",
			slog.String("kind", event.Kind),
			slog.String("table", event.Table),
			slog.String("column", event.Column),
			slog.Int("count", event.Count))
	}

	logger.Info("analysis complete",
		slog.String("period", opts.Period),
		slog.Int("records", summary.RecordCount),
		slog.Float64("total_revenue", summary.Revenue.TotalRevenue))
	return nil
}

// write exports the summary in the selected format.
func write(logger *slog.Logger, out, format string, summary *metrics.Summary) error {
	switch format {
	case "csv":
		return exporter.NewCSVWriter(out, logger).WriteSummary(summary)
	case "xlsx":
		path := out
		if filepath.Ext(path) != ".xlsx" {
			path = filepath.Join(out, "summary.xlsx")
		}
		return exporter.NewExcelWriter(logger).WriteSummary(path, summary)
	case "json":
		path := out
		if filepath.Ext(path) != ".json" {
			path = filepath.Join(out, "summary.json")
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode summary: %w", err)
		}
		return os.WriteFile(path, data, 0644)
	default:
		return fmt.Errorf("unknown format %q (expected csv, xlsx or json)", format)
	}
}
