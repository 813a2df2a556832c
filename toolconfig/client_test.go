package toolconfig

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestNewClient_InvalidConfig(t *testing.T) {
	for _, base := range []string{"", "   ", "ftp://example.com", "://bad"} {
		if _, err := NewClient(Config{BaseURL: base}); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("NewClient(%q) error = %v, want ErrInvalidConfig", base, err)
		}
	}
}

func TestClient_Endpoint(t *testing.T) {
	c, err := NewClient(Config{BaseURL: "http://localhost:8080/"})
	if err != nil {
		t.Fatalf("NewClient error = %v", err)
	}
	if c.Endpoint() != "http://localhost:8080/api/tools" {
		t.Errorf("Endpoint = %q", c.Endpoint())
	}
}

func TestClient_Fetch(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != ToolsPath {
			t.Errorf("path = %q, want %q", r.URL.Path, ToolsPath)
		}
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"toolId":"1","path":"/tools/a","enabled":true,"premium":true},
			{"toolId":"2","path":"/tools/b","enabled":true,"isPremium":true},
			{"toolId":"3","path":"/tools/c","enabled":false},
			{"toolId":"4","path":"","enabled":true}
		]`))
	})

	c, err := NewClient(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewClient error = %v", err)
	}

	rows, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch error = %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows (empty path skipped), got %d", len(rows))
	}
	if !rows[0].Premium || !rows[1].Premium {
		t.Error("premium and isPremium should both mark a row premium")
	}
	if rows[2].Enabled || rows[2].Premium {
		t.Errorf("row c = %+v, want disabled non-premium", rows[2])
	}

	enabled := EnabledPaths(rows)
	if _, ok := enabled["/tools/c"]; ok {
		t.Error("disabled path in enabled set")
	}
	if len(enabled) != 2 {
		t.Errorf("expected 2 enabled paths, got %d", len(enabled))
	}
}

func TestClient_SendsBearerCredential(t *testing.T) {
	var got atomic.Value
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		got.Store(r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[]`))
	})

	c, _ := NewClient(Config{BaseURL: srv.URL, Credential: StaticCredential("secret")})
	if _, err := c.Fetch(context.Background()); err != nil {
		t.Fatalf("Fetch error = %v", err)
	}
	if got.Load() != "Bearer secret" {
		t.Errorf("Authorization = %v, want Bearer secret", got.Load())
	}
}

func TestClient_AnonymousWithoutToken(t *testing.T) {
	var got atomic.Value
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		got.Store(r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[]`))
	})

	c, _ := NewClient(Config{BaseURL: srv.URL, Credential: StaticCredential("  ")})
	if _, err := c.Fetch(context.Background()); err != nil {
		t.Fatalf("Fetch error = %v", err)
	}
	if got.Load() != "" {
		t.Errorf("Authorization = %v, want empty", got.Load())
	}
}

func TestEnvCredential(t *testing.T) {
	t.Setenv("TOOLCATALOG_TEST_TOKEN", " tok ")
	if got := EnvCredential("TOOLCATALOG_TEST_TOKEN").Token(); got != "tok" {
		t.Errorf("Token() = %q, want tok", got)
	}
	if got := EnvCredential("").Token(); got != "" {
		t.Errorf("empty EnvCredential Token() = %q", got)
	}
}

func TestClient_NonSuccessStatus(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	c, _ := NewClient(Config{BaseURL: srv.URL})
	_, err := c.Fetch(context.Background())
	if !errors.Is(err, ErrUnexpectedStatus) {
		t.Fatalf("Fetch error = %v, want ErrUnexpectedStatus", err)
	}
}

func TestClient_MalformedBody(t *testing.T) {
	bodies := []string{
		`{"not":"an array"}`,
		`null`,
		`[{"path":"/a","enabled":true}] trailing-garbage`,
		`[{"path":"/a","enabled":true}][]`,
	}
	for _, body := range bodies {
		srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		})

		c, _ := NewClient(Config{BaseURL: srv.URL})
		rows, err := c.Fetch(context.Background())
		if !errors.Is(err, ErrMalformedResponse) {
			t.Errorf("body %q: Fetch = %v, %v; want ErrMalformedResponse", body, rows, err)
		}
	}
}

func TestClient_EmptyArrayIsNotMalformed(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("[]\n"))
	})

	c, _ := NewClient(Config{BaseURL: srv.URL})
	rows, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch error = %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("rows = %v, want none", rows)
	}
}

func TestClient_Timeout(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	c, _ := NewClient(Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	start := time.Now()
	if _, err := c.Fetch(context.Background()); err == nil {
		t.Fatal("expected timeout error")
	}
	if time.Since(start) > time.Second {
		t.Error("Fetch did not honor timeout")
	}
}

func TestClient_Retries(t *testing.T) {
	var calls atomic.Int32
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`[{"path":"/tools/a","enabled":true}]`))
	})

	c, _ := NewClient(Config{BaseURL: srv.URL, MaxAttempts: 3, RetryDelay: time.Millisecond})
	rows, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if calls.Load() != 3 {
		t.Errorf("expected 3 attempts, got %d", calls.Load())
	}
}

func TestClient_NoRetriesByDefault(t *testing.T) {
	var calls atomic.Int32
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	})

	c, _ := NewClient(Config{BaseURL: srv.URL})
	_, _ = c.Fetch(context.Background())
	if calls.Load() != 1 {
		t.Errorf("expected a single attempt, got %d", calls.Load())
	}
}

func TestStaticFetcher(t *testing.T) {
	rows := []RemoteToolConfig{{Path: "/a", Enabled: true}}
	f := StaticFetcher{Rows: rows}

	got, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch error = %v", err)
	}
	got[0].Path = "/mutated"
	if rows[0].Path != "/a" {
		t.Error("StaticFetcher returned shared slice")
	}

	wantErr := errors.New("down")
	if _, err := (StaticFetcher{Err: wantErr}).Fetch(context.Background()); !errors.Is(err, wantErr) {
		t.Errorf("Fetch error = %v, want %v", err, wantErr)
	}
}
