package telemetry

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonwraymond/toolcatalog/catalog"
	"github.com/jonwraymond/toolcatalog/registry"
	"github.com/jonwraymond/toolcatalog/toolconfig"
)

func TestNewPrometheusMetrics(t *testing.T) {
	m := NewPrometheusMetrics(prometheus.NewRegistry())
	assert.NotNil(t, m)
	assert.NotNil(t, m.buildDuration)
	assert.NotNil(t, m.builds)
	assert.NotNil(t, m.toolsEnabled)
	assert.NotNil(t, m.toolCalls)
	assert.NotNil(t, m.callDuration)
	assert.NotNil(t, m.fetchAttempts)
}

func TestNewPrometheusMetrics_UsesProvidedRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()

	m := NewPrometheusMetrics(reg)
	m.ObserveBuild(registry.StatusOK, 12, 20*time.Millisecond)
	m.ObserveBuild(registry.StatusDegraded, 0, 5*time.Millisecond)
	m.ObserveCall("hash-text", registry.CallOK, time.Millisecond)
	m.ObserveFetch(nil)

	metrics, err := reg.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(metrics))
	for _, m := range metrics {
		names = append(names, m.GetName())
	}

	assert.Contains(t, names, "toolcatalog_registry_build_duration_seconds")
	assert.Contains(t, names, "toolcatalog_registry_builds_total")
	assert.Contains(t, names, "toolcatalog_registry_tools")
	assert.Contains(t, names, "toolcatalog_tool_calls_total")
	assert.Contains(t, names, "toolcatalog_tool_call_duration_seconds")
	assert.Contains(t, names, "toolcatalog_config_fetches_total")

	assert.Equal(t, float64(1), testutil.ToFloat64(m.builds.WithLabelValues("degraded")))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.toolsEnabled))
}

func TestBuilderReportsToMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPrometheusMetrics(reg)

	fetcher := m.InstrumentFetcher(toolconfig.StaticFetcher{Rows: []toolconfig.RemoteToolConfig{
		{Path: "/tools/text/echo", Enabled: true},
	}})
	b := registry.New(registry.Options{
		Fetcher: fetcher,
		Metrics: m,
		Modules: []catalog.Module{{
			Meta: &catalog.ToolDescriptor{ID: "echo", Name: "Echo", Category: "text", Path: "/tools/text/echo"},
			Factory: func() catalog.Handler {
				return func(ctx context.Context, args map[string]any) (any, error) { return nil, nil }
			},
		}},
	})
	b.Build(context.Background())

	assert.Equal(t, float64(1), testutil.ToFloat64(m.builds.WithLabelValues("ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.toolsEnabled))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.fetchAttempts.WithLabelValues("success")))
}

func TestInstrumentFetcherCountsErrors(t *testing.T) {
	m := NewPrometheusMetrics(prometheus.NewRegistry())
	f := m.InstrumentFetcher(toolconfig.StaticFetcher{Err: errors.New("down")})

	_, err := f.Fetch(context.Background())
	require.Error(t, err)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.fetchAttempts.WithLabelValues("error")))
}

func TestMetricsHandler(t *testing.T) {
	reg := NewRegistry()
	m := NewPrometheusMetrics(reg)
	m.ObserveCall("jwt-parser", registry.CallInvalid, time.Millisecond)

	rec := httptest.NewRecorder()
	MetricsHandler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `toolcatalog_tool_calls_total{outcome="invalid",tool="jwt-parser"} 1`))
}

func TestHealthHandler(t *testing.T) {
	build := func(f toolconfig.Fetcher) *registry.Snapshot {
		return registry.New(registry.Options{Fetcher: f}).Build(context.Background())
	}

	cases := []struct {
		name   string
		snap   *registry.Snapshot
		status int
		want   string
	}{
		{"starting", nil, http.StatusServiceUnavailable, "starting"},
		{"ok", build(toolconfig.StaticFetcher{}), http.StatusOK, "ok"},
		{"degraded", build(toolconfig.StaticFetcher{Err: errors.New("down")}), http.StatusServiceUnavailable, "degraded"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := HealthHandler(func() *registry.Snapshot { return tc.snap })
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			assert.Equal(t, tc.status, rec.Code)
			var report HealthReport
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
			assert.Equal(t, tc.want, report.Status)
		})
	}
}
