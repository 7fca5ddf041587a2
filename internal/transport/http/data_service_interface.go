package http

import (
	"ecomcli/internal/dataset"
	"ecomcli/pkg/contracts/domain"
)

// DataService supplies the loaded sales record set and its quality report.
// The caller loads and merges once at startup; handlers only read.
type DataService interface {
	// Records returns the full merged sales record set.
	Records() []domain.SalesRecord
	// Quality returns the loader's aggregated data-quality report.
	Quality() []dataset.QualityEvent
	// DefaultWindow returns the configured analysis window; zero means
	// "all loaded data".
	DefaultWindow() domain.DateWindow
}
