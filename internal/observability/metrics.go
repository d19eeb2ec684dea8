package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the analysis
// pipeline. A one-shot batch run still benefits from these: the report
// command dumps them at debug level after the run, and scheduled executions
// can push them to a gateway.
type Metrics struct {
	RowsLoaded       *prometheus.CounterVec // labels: source={hospitalization,wastewater}
	RowsMissingValue *prometheus.CounterVec // labels: source={hospitalization,wastewater}
	RowsFiltered     prometheus.Counter
	PointsJoined     prometheus.Gauge
	RunDuration      prometheus.Histogram
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RowsLoaded,
		m.RowsMissingValue,
		m.RowsFiltered,
		m.PointsJoined,
		m.RunDuration,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RowsLoaded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "covid_report",
			Name:      "rows_loaded_total",
			Help:      "Data rows read from each source CSV.",
		}, []string{"source"}),
		RowsMissingValue: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "covid_report",
			Name:      "rows_missing_value_total",
			Help:      "Rows whose numeric column was empty, per source.",
		}, []string{"source"}),
		RowsFiltered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "covid_report",
			Name:      "rows_filtered_total",
			Help:      "Hospitalization rows dropped by the rate floor.",
		}),
		PointsJoined: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "covid_report",
			Name:      "points_joined",
			Help:      "Dates present in both series after the inner join.",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "covid_report",
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete pipeline run.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
	}
}
