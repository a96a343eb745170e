package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters for one converter run. The
// converter is a batch job, so metrics are exported with
// [Metrics.WriteTextfile] in the node_exporter textfile-collector
// format rather than served over HTTP.
type Metrics struct {
	registry *prometheus.Registry

	RowsRead     prometheus.Counter
	RowsExported prometheus.Counter
	RowsDropped  *prometheus.CounterVec // label: reason (parse error or rule name)
	RowsFlagged  *prometheus.CounterVec // label: rule
	RunDuration  prometheus.Gauge
}

// NewMetrics creates and registers all converter metrics on a private
// registry, keeping repeated in-process runs (and tests) independent.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		RowsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "magnaprobe_etl",
			Name:      "rows_read_total",
			Help:      "Total raw data rows read from the input file(s).",
		}),
		RowsExported: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "magnaprobe_etl",
			Name:      "rows_exported_total",
			Help:      "Total clean rows written to the output files.",
		}),
		RowsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "magnaprobe_etl",
			Name:      "rows_dropped_total",
			Help:      "Rows dropped, by parse-error reason or quality rule.",
		}, []string{"reason"}),
		RowsFlagged: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "magnaprobe_etl",
			Name:      "rows_flagged_total",
			Help:      "Rows kept but labeled, by quality rule.",
		}, []string{"rule"}),
		RunDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "magnaprobe_etl",
			Name:      "run_duration_seconds",
			Help:      "Wall-clock duration of the last conversion run.",
		}),
	}

	reg.MustRegister(
		m.RowsRead,
		m.RowsExported,
		m.RowsDropped,
		m.RowsFlagged,
		m.RunDuration,
	)
	return m
}

// WriteTextfile exports the current metric values to path in the
// Prometheus textfile-collector format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
