package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TransactionsSent counts transactions sent by contract method and outcome
	TransactionsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "btx_ops_transactions_sent_total",
			Help: "Total number of transactions sent",
		},
		[]string{"method", "status"},
	)

	// GasEstimated tracks estimated gas per contract method
	GasEstimated = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "btx_ops_gas_estimated",
			Help:    "Estimated gas per call",
			Buckets: prometheus.ExponentialBuckets(21000, 2, 10),
		},
		[]string{"method"},
	)

	// AirdropBatches counts airdrop batches by outcome
	AirdropBatches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "btx_ops_airdrop_batches_total",
			Help: "Total number of airdrop batches processed",
		},
		[]string{"mode", "status"},
	)

	// AirdropRecipients counts recipients covered by confirmed batches
	AirdropRecipients = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "btx_ops_airdrop_recipients_total",
			Help: "Total number of recipients in confirmed airdrop batches",
		},
	)

	// AirdropAmount tracks the whole-token amount distributed per batch
	AirdropAmount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "btx_ops_airdrop_batch_amount",
			Help:    "Whole tokens distributed per airdrop batch",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		},
	)

	// AirdropDropped counts holders excluded from a plan by reason
	AirdropDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "btx_ops_airdrop_dropped_total",
			Help: "Total number of snapshot holders dropped while planning",
		},
		[]string{"reason"},
	)

	// ReceiptWait tracks time from submission to receipt
	ReceiptWait = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "btx_ops_receipt_wait_seconds",
			Help:    "Time spent waiting for transaction receipts",
			Buckets: []float64{1, 2, 5, 10, 30, 60, 120, 300},
		},
	)

	// ErrorsTotal counts errors by component
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "btx_ops_errors_total",
			Help: "Total number of errors",
		},
		[]string{"component", "error_type"},
	)
)
