package toolconfig

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
)

// ToolsPath is the configuration endpoint relative to the service base URL.
const ToolsPath = "/api/tools"

const maxResponseBytes = 8 << 20

// Config configures a Client.
type Config struct {
	// BaseURL is the service root, e.g. http://localhost:8080.
	BaseURL string
	// Credential supplies the optional bearer token.
	Credential CredentialSource
	// Timeout bounds a whole Fetch, retries included. Zero means no bound
	// beyond the caller's context.
	Timeout time.Duration
	// MaxAttempts is the number of attempts per Fetch. Values below 2
	// disable retries.
	MaxAttempts int
	// RetryDelay is the initial delay between attempts.
	RetryDelay time.Duration
	// HTTPClient overrides the underlying client (useful for tests).
	HTTPClient *http.Client
}

// Client fetches remote tool configuration over HTTP.
type Client struct {
	endpoint string
	http     *http.Client
	timeout  time.Duration
	retries  bool
	retry    retry.Retry[[]RemoteToolConfig]
}

// NewClient creates a Client for the given configuration.
func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		return nil, fmt.Errorf("%w: base URL is required", ErrInvalidConfig)
	}
	parsed, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidConfig, parsed.Scheme)
	}

	c := &Client{
		endpoint: strings.TrimRight(base, "/") + ToolsPath,
		http:     httpClientWithCredential(cfg.HTTPClient, cfg.Credential),
		timeout:  cfg.Timeout,
	}
	if cfg.MaxAttempts > 1 {
		delay := cfg.RetryDelay
		if delay <= 0 {
			delay = 100 * time.Millisecond
		}
		c.retry = retry.New[[]RemoteToolConfig](retry.Config{
			MaxAttempts:   cfg.MaxAttempts,
			InitialDelay:  delay,
			BackoffPolicy: retry.BackoffExponential,
			Multiplier:    2.0,
		})
		c.retries = true
	}
	return c, nil
}

// Endpoint returns the full URL the client fetches from.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Fetch retrieves the remote configuration.
func (c *Client) Fetch(ctx context.Context) ([]RemoteToolConfig, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	if c.retries {
		return c.retry.Do(ctx, c.fetchOnce)
	}
	return c.fetchOnce(ctx)
}

func (c *Client) fetchOnce(ctx context.Context) ([]RemoteToolConfig, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	return decodeRows(io.LimitReader(resp.Body, maxResponseBytes))
}

type rawToolConfig struct {
	Path      string `json:"path"`
	Enabled   bool   `json:"enabled"`
	Premium   *bool  `json:"premium"`
	IsPremium *bool  `json:"isPremium"`
}

func decodeRows(r io.Reader) ([]RemoteToolConfig, error) {
	var raw []rawToolConfig
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: body is not an array", ErrMalformedResponse)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after array", ErrMalformedResponse)
	}

	rows := make([]RemoteToolConfig, 0, len(raw))
	for _, item := range raw {
		if strings.TrimSpace(item.Path) == "" {
			continue
		}
		rows = append(rows, RemoteToolConfig{
			Path:    item.Path,
			Enabled: item.Enabled,
			Premium: isTrue(item.Premium) || isTrue(item.IsPremium),
		})
	}
	return rows, nil
}

func isTrue(b *bool) bool {
	return b != nil && *b
}
