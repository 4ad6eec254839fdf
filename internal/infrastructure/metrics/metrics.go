package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Import metrics
	ImportsTotal       prometheus.Counter
	ImportDuration     prometheus.Histogram
	InvoicesInserted   prometheus.Counter
	ImportDuplicates   prometheus.Counter
	ImportInconsistent prometheus.Counter

	// Mutation metrics
	CreditNotesCreated prometheus.Counter
	PaymentsCreated    prometheus.Counter
	MutationErrors     *prometheus.CounterVec

	// Report metrics
	ReportRequests  *prometheus.CounterVec
	ReportCacheHits prometheus.Counter

	// Database metrics
	DBErrors *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		ImportsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gofactura_imports_total",
			Help: "Total number of batch imports executed",
		}),
		ImportDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "gofactura_import_duration_seconds",
			Help:    "Duration of batch imports",
			Buckets: prometheus.DefBuckets,
		}),
		InvoicesInserted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gofactura_invoices_inserted_total",
			Help: "Total number of invoices inserted by imports",
		}),
		ImportDuplicates: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gofactura_import_duplicates_total",
			Help: "Total number of duplicate records skipped by imports",
		}),
		ImportInconsistent: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gofactura_import_inconsistent_total",
			Help: "Total number of inconsistent invoices flagged by imports",
		}),
		CreditNotesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gofactura_credit_notes_created_total",
			Help: "Total number of credit notes created",
		}),
		PaymentsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gofactura_payments_created_total",
			Help: "Total number of payments registered",
		}),
		MutationErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gofactura_mutation_errors_total",
				Help: "Total number of rejected mutations by reason",
			},
			[]string{"reason"},
		),
		ReportRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gofactura_report_requests_total",
				Help: "Total report requests by report",
			},
			[]string{"report"},
		),
		ReportCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gofactura_report_cache_hits_total",
			Help: "Total payment summary cache hits",
		}),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gofactura_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),
	}
}
