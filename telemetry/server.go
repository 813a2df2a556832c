package telemetry

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jonwraymond/toolcatalog/registry"
)

// NewRegistry returns a registry with the process and Go collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	reg.MustRegister(prometheus.NewGoCollector())
	return reg
}

// HealthReport is the /healthz body.
type HealthReport struct {
	Status  string    `json:"status"`
	Tools   int       `json:"tools"`
	BuiltAt time.Time `json:"builtAt,omitempty"`
}

// MetricsHandler serves the gatherer in the Prometheus text format.
func MetricsHandler(gatherer prometheus.Gatherer) http.Handler {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// HealthHandler reports the state of the snapshot returned by current.
// A missing or degraded snapshot answers 503.
func HealthHandler(current func() *registry.Snapshot) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		report := HealthReport{Status: "starting"}
		if snap := current(); snap != nil {
			report = HealthReport{
				Status:  string(snap.Status()),
				Tools:   snap.Len(),
				BuiltAt: snap.BuiltAt(),
			}
		}

		status := http.StatusOK
		if report.Status != string(registry.StatusOK) {
			status = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(report)
	})
}
