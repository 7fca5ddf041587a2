package dataset

import (
	"log/slog"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
)

// Data-quality event kinds emitted during cleaning and merging.
const (
	EventNullValue        = "null_value"
	EventInvalidTimestamp = "invalid_timestamp"
	EventInvalidNumber    = "invalid_number"
	EventInvalidScore     = "invalid_score"
	EventDuplicateKey     = "duplicate_key"
	EventRejectedRow      = "rejected_row"
	EventUnmatchedKey     = "unmatched_key"
)

// QualityEvent is a structured, non-fatal observation recorded while
// preparing the dataset. Count carries the number of affected rows.
type QualityEvent struct {
	Kind   string `json:"kind"`
	Table  string `json:"table"`
	Column string `json:"column"`
	Count  int    `json:"count"`
}

// QualitySink receives data-quality events. Implementations decide storage
// and formatting; the loader only defines the event shape.
type QualitySink interface {
	Record(event QualityEvent)
}

// NopSink discards all events.
type NopSink struct{}

// Record implements QualitySink
func (NopSink) Record(QualityEvent) {}

// SlogSink logs each event at warn level.
type SlogSink struct {
	Logger *slog.Logger
}

// Record implements QualitySink
func (s SlogSink) Record(event QualityEvent) {
	s.Logger.Warn("data quality event",
		slog.String("kind", event.Kind),
		slog.String("table", event.Table),
		slog.String("column", event.Column),
		slog.Int("count", event.Count))
}

// PrometheusSink exports data-quality counts as a prometheus counter.
type PrometheusSink struct {
	counter *prometheus.CounterVec
}

// NewPrometheusSink registers the data-quality counter on the given
// registerer and returns the sink.
func NewPrometheusSink(reg prometheus.Registerer) (*PrometheusSink, error) {
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ecomcli",
		Subsystem: "dataset",
		Name:      "quality_events_total",
		Help:      "Data-quality observations recorded while loading the dataset.",
	}, []string{"kind", "table", "column"})

	if err := reg.Register(counter); err != nil {
		return nil, err
	}
	return &PrometheusSink{counter: counter}, nil
}

// Record implements QualitySink
func (s *PrometheusSink) Record(event QualityEvent) {
	s.counter.WithLabelValues(event.Kind, event.Table, event.Column).Add(float64(event.Count))
}

// MultiSink fans events out to several sinks.
type MultiSink []QualitySink

// Record implements QualitySink
func (m MultiSink) Record(event QualityEvent) {
	for _, sink := range m {
		sink.Record(event)
	}
}

// qualityKey identifies an aggregated event counter.
type qualityKey struct {
	kind, table, column string
}

// qualityRecorder forwards events to the sink and keeps aggregated totals
// for the loader's quality report.
type qualityRecorder struct {
	sink   QualitySink
	totals map[qualityKey]int
}

func newQualityRecorder(sink QualitySink) *qualityRecorder {
	if sink == nil {
		sink = NopSink{}
	}
	return &qualityRecorder{
		sink:   sink,
		totals: make(map[qualityKey]int),
	}
}

// record registers n affected rows under (kind, table, column).
func (q *qualityRecorder) record(kind, table, column string, n int) {
	if n <= 0 {
		return
	}
	q.totals[qualityKey{kind, table, column}] += n
	q.sink.Record(QualityEvent{Kind: kind, Table: table, Column: column, Count: n})
}

// report returns aggregated totals ordered by kind, table, column.
func (q *qualityRecorder) report() []QualityEvent {
	events := make([]QualityEvent, 0, len(q.totals))
	for key, count := range q.totals {
		events = append(events, QualityEvent{
			Kind:   key.kind,
			Table:  key.table,
			Column: key.column,
			Count:  count,
		})
	}
	sort.Slice(events, func(i, j int) bool {
		if events[i].Kind != events[j].Kind {
			return events[i].Kind < events[j].Kind
		}
		if events[i].Table != events[j].Table {
			return events[i].Table < events[j].Table
		}
		return events[i].Column < events[j].Column
	})
	return events
}
