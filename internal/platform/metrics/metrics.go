package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the ingestion pipeline.
type Metrics struct {
	// Records by outcome
	RecordsProcessed prometheus.Counter
	RecordsSkipped   prometheus.Counter
	RecordsFailed    prometheus.Counter

	// Audit trail growth by change kind
	ChangeEntries *prometheus.CounterVec
}

// New creates a new Metrics instance with all ingestion metrics registered.
func New() *Metrics {
	return &Metrics{
		RecordsProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "identity_core_records_processed_total",
			Help: "Total import records processed successfully",
		}),
		RecordsSkipped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "identity_core_records_skipped_total",
			Help: "Total import records skipped because every mention was absent",
		}),
		RecordsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "identity_core_records_failed_total",
			Help: "Total import records that failed to persist",
		}),
		ChangeEntries: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "identity_core_change_entries_total",
			Help: "Total change log entries written by change kind",
		}, []string{"change_kind"}), // change_kind: "create", "update", "delete"
	}
}

// IncrementProcessed records a successfully ingested record.
func (m *Metrics) IncrementProcessed() {
	if m != nil {
		m.RecordsProcessed.Inc()
	}
}

// IncrementSkipped records a record with nothing to store.
func (m *Metrics) IncrementSkipped() {
	if m != nil {
		m.RecordsSkipped.Inc()
	}
}

// IncrementFailed records a record that could not be persisted.
func (m *Metrics) IncrementFailed() {
	if m != nil {
		m.RecordsFailed.Inc()
	}
}

// AddChangeEntries records audit entries written for one save.
func (m *Metrics) AddChangeEntries(changeKind string, n int) {
	if m != nil && n > 0 {
		m.ChangeEntries.WithLabelValues(changeKind).Add(float64(n))
	}
}
