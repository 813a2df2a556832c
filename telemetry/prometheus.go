package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jonwraymond/toolcatalog/registry"
)

type PrometheusMetrics struct {
	buildDuration *prometheus.HistogramVec
	builds        *prometheus.CounterVec
	toolsEnabled  prometheus.Gauge
	toolCalls     *prometheus.CounterVec
	callDuration  *prometheus.HistogramVec
	fetchAttempts *prometheus.CounterVec
}

func NewPrometheusMetrics(registerer prometheus.Registerer) *PrometheusMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registerer)

	return &PrometheusMetrics{
		buildDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "toolcatalog_registry_build_duration_seconds",
				Help:    "Duration of registry builds in seconds, remote fetch included",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"status"},
		),
		builds: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "toolcatalog_registry_builds_total",
				Help: "Total number of registry builds by status",
			},
			[]string{"status"},
		),
		toolsEnabled: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "toolcatalog_registry_tools",
				Help: "Number of tools in the most recent registry snapshot",
			},
		),
		toolCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "toolcatalog_tool_calls_total",
				Help: "Total number of tool invocations by outcome",
			},
			[]string{"tool", "outcome"},
		),
		callDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "toolcatalog_tool_call_duration_seconds",
				Help:    "Duration of tool invocations in seconds",
				Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"tool"},
		),
		fetchAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "toolcatalog_config_fetches_total",
				Help: "Total number of remote configuration fetches by result",
			},
			[]string{"result"},
		),
	}
}

func (p *PrometheusMetrics) ObserveBuild(status registry.Status, tools int, duration time.Duration) {
	p.buildDuration.WithLabelValues(string(status)).Observe(duration.Seconds())
	p.builds.WithLabelValues(string(status)).Inc()
	p.toolsEnabled.Set(float64(tools))
}

func (p *PrometheusMetrics) ObserveCall(toolID, outcome string, duration time.Duration) {
	p.toolCalls.WithLabelValues(toolID, outcome).Inc()
	p.callDuration.WithLabelValues(toolID).Observe(duration.Seconds())
}

func (p *PrometheusMetrics) ObserveFetch(err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	p.fetchAttempts.WithLabelValues(result).Inc()
}

var (
	_ registry.Metrics     = (*PrometheusMetrics)(nil)
	_ registry.CallMetrics = (*PrometheusMetrics)(nil)
)
