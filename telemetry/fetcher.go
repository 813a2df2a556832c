package telemetry

import (
	"context"

	"github.com/jonwraymond/toolcatalog/toolconfig"
)

// InstrumentFetcher counts every fetch made through f.
func (p *PrometheusMetrics) InstrumentFetcher(f toolconfig.Fetcher) toolconfig.Fetcher {
	return toolconfig.FetcherFunc(func(ctx context.Context) ([]toolconfig.RemoteToolConfig, error) {
		rows, err := f.Fetch(ctx)
		p.ObserveFetch(err)
		return rows, err
	})
}
