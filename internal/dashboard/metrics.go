package dashboard

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Chart names used as metric labels and live-update keys.
const (
	regionProportion  = "proportion"
	regionCorrelation = "correlation"
)

type metrics struct {
	registry     *prometheus.Registry
	renders      *prometheus.CounterVec
	points       prometheus.Histogram
	liveSessions prometheus.Gauge
}

func newMetrics(reg *prometheus.Registry) *metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector())
	}
	m := &metrics{
		registry: reg,
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "launchdash",
			Name:      "chart_renders_total",
			Help:      "Chart updater invocations by chart and whether a chart was produced.",
		}, []string{"chart", "result"}),
		points: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "launchdash",
			Name:      "correlation_points",
			Help:      "Number of points plotted per correlation chart.",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 1000},
		}),
		liveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "launchdash",
			Name:      "live_sessions",
			Help:      "Open WebSocket update channels.",
		}),
	}
	reg.MustRegister(m.renders, m.points, m.liveSessions)
	return m
}

// observe records one updater run. drawn is false when the updater
// produced no chart.
func (m *metrics) observe(chartName string, drawn bool) {
	result := "chart"
	if !drawn {
		result = "empty"
	}
	m.renders.WithLabelValues(chartName, result).Inc()
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
