package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for ledger operations. HTTP-level
// metrics live in the router middleware; these cover the domain itself.
type Metrics struct {
	// Transaction metrics
	TransactionsCompleted *prometheus.CounterVec
	TransactionsFailed    *prometheus.CounterVec
	TransactionDuration   *prometheus.HistogramVec
	TransactionAmount     *prometheus.HistogramVec
	InsufficientFunds     prometheus.Counter

	// Account metrics
	AccountsCreated   prometheus.Counter
	AccountOperations *prometheus.CounterVec

	// Entry metrics
	EntriesAppended *prometheus.CounterVec

	// Outbox metrics
	EventsPublished prometheus.Counter
	EventsPending   prometheus.Gauge
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		TransactionsCompleted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_transactions_completed_total",
				Help: "Total number of completed transactions by type",
			},
			[]string{"type"},
		),
		TransactionsFailed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_transactions_failed_total",
				Help: "Total number of failed transactions by type",
			},
			[]string{"type"},
		),
		TransactionDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ledger_transaction_duration_seconds",
				Help:    "Duration of transaction operations by type",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"type"},
		),
		TransactionAmount: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ledger_transaction_amount",
				Help:    "Transaction amounts by type",
				Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
			},
			[]string{"type"},
		),
		InsufficientFunds: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledger_insufficient_funds_total",
			Help: "Total number of operations rejected for insufficient funds",
		}),

		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledger_accounts_created_total",
			Help: "Total number of accounts created",
		}),
		AccountOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_account_operations_total",
				Help: "Total account operations by type",
			},
			[]string{"operation"},
		),

		EntriesAppended: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_entries_appended_total",
				Help: "Total number of ledger entries appended by side",
			},
			[]string{"type"},
		),

		EventsPublished: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledger_outbox_events_published_total",
			Help: "Total number of outbox events published",
		}),
		EventsPending: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "ledger_outbox_events_pending",
			Help: "Number of outbox events awaiting publication",
		}),
	}
}
