package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ImportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "migscope_imports_total",
		Help: "Completed and failed spreadsheet imports by data kind.",
	}, []string{"kind", "status"})

	ImportRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "migscope_import_rows_total",
		Help: "Processed data rows by kind and outcome bucket.",
	}, []string{"kind", "outcome"})

	ReconciliationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "migscope_reconciliations_total",
		Help: "Completed combined-record rebuilds.",
	})

	CombinedRecords = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "migscope_combined_records",
		Help: "Combined records produced by the latest rebuild.",
	})
)
