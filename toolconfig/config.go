package toolconfig

import "context"

// RemoteToolConfig is one row of the remote configuration.
type RemoteToolConfig struct {
	Path    string `json:"path"`
	Enabled bool   `json:"enabled"`
	Premium bool   `json:"premium"`
}

// Fetcher retrieves the current remote configuration.
type Fetcher interface {
	Fetch(ctx context.Context) ([]RemoteToolConfig, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context) ([]RemoteToolConfig, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context) ([]RemoteToolConfig, error) {
	return f(ctx)
}

// StaticFetcher always returns the same rows (or error).
type StaticFetcher struct {
	Rows []RemoteToolConfig
	Err  error
}

// Fetch returns a copy of the configured rows.
func (s StaticFetcher) Fetch(ctx context.Context) ([]RemoteToolConfig, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]RemoteToolConfig, len(s.Rows))
	copy(out, s.Rows)
	return out, nil
}

// EnabledPaths returns the set of paths with Enabled set.
func EnabledPaths(rows []RemoteToolConfig) map[string]struct{} {
	out := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		if row.Enabled {
			out[row.Path] = struct{}{}
		}
	}
	return out
}
