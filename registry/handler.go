package registry

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonwraymond/toolcatalog/catalog"
)

const maxRequestBytes = 1 << 20

// HandlerOptions configures the route handler.
type HandlerOptions struct {
	// PremiumAccess decides whether a request may run premium tools. When
	// nil, premium tools are refused.
	PremiumAccess func(r *http.Request) bool
	Logger        *zap.Logger
	Metrics       CallMetrics
}

// Handler returns an http.Handler serving every route of the snapshot.
// Each tool accepts POST with a JSON object body and answers with
// {"result": ...} or {"error": "..."}.
func (s *Snapshot) Handler(opts HandlerOptions) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	access := opts.PremiumAccess
	if access == nil {
		access = denyPremium
	}

	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		route, ok := s.Route(req.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, fmt.Errorf("%w: %s", ErrRouteNotFound, req.URL.Path))
			return
		}
		if req.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("%w: method %s", ErrInvalidRequest, req.Method))
			return
		}
		start := time.Now()
		observe := func(outcome string) {
			if opts.Metrics != nil {
				opts.Metrics.ObserveCall(route.ToolID, outcome, time.Since(start))
			}
		}

		if route.Premium && !access(req) {
			observe(CallForbidden)
			writeError(w, http.StatusForbidden, ErrPremiumRequired)
			return
		}

		args, err := decodeArgs(req.Body)
		if err != nil {
			observe(CallInvalid)
			writeError(w, http.StatusBadRequest, err)
			return
		}

		result, err := route.Factory()(req.Context(), args)
		if err != nil {
			status, outcome := http.StatusInternalServerError, CallError
			if errors.Is(err, catalog.ErrInvalidArgument) {
				status, outcome = http.StatusBadRequest, CallInvalid
			}
			observe(outcome)
			logger.Debug("tool call failed", zap.String("path", route.Path), zap.Error(err))
			writeError(w, status, err)
			return
		}

		observe(CallOK)
		writeJSON(w, http.StatusOK, map[string]any{"result": result})
	})
}

func decodeArgs(body io.Reader) (map[string]any, error) {
	data, err := io.ReadAll(io.LimitReader(body, maxRequestBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	args := map[string]any{}
	if len(strings.TrimSpace(string(data))) == 0 {
		return args, nil
	}
	if err := json.Unmarshal(data, &args); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if args == nil {
		args = map[string]any{}
	}
	return args, nil
}

func denyPremium(*http.Request) bool { return false }

// BearerTokenAccess returns a PremiumAccess func that admits requests whose
// bearer token equals one of tokens. Empty tokens are ignored, so with none
// configured every premium request is refused.
func BearerTokenAccess(tokens ...string) func(r *http.Request) bool {
	allowed := make([][]byte, 0, len(tokens))
	for _, t := range tokens {
		if t = strings.TrimSpace(t); t != "" {
			allowed = append(allowed, []byte(t))
		}
	}
	return func(r *http.Request) bool {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok {
			return false
		}
		got := []byte(strings.TrimSpace(token))
		for _, want := range allowed {
			if subtle.ConstantTimeCompare(got, want) == 1 {
				return true
			}
		}
		return false
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
