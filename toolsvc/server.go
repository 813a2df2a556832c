package toolsvc

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonwraymond/toolcatalog/favorites"
	"github.com/jonwraymond/toolcatalog/toolstore"
)

// UserHeader carries the caller identity for favorites routes.
const UserHeader = "X-User"

const maxBodyBytes = 1 << 20

// ErrUnauthorized is returned to callers without a valid admin token.
var ErrUnauthorized = errors.New("admin token required")

// Options configures a Server.
type Options struct {
	Tools toolstore.Store
	// Favorites enables the /api/favorites routes when set.
	Favorites favorites.Store
	// AdminToken guards mutating tool routes. When empty every admin
	// request is rejected.
	AdminToken string
	Logger     *zap.Logger
}

// Server is the tool configuration HTTP service.
type Server struct {
	tools      toolstore.Store
	favorites  favorites.Store
	adminToken string
	logger     *zap.Logger
}

// New creates a Server.
func New(opts Options) (*Server, error) {
	if opts.Tools == nil {
		return nil, errors.New("toolsvc: tool store is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		tools:      opts.Tools,
		favorites:  opts.Favorites,
		adminToken: opts.AdminToken,
		logger:     logger.Named("toolsvc"),
	}, nil
}

// Handler returns the routed and logged handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.Mount(mux)
	return s.LogRequests(mux)
}

// Mount registers the service routes on mux without request logging.
func (s *Server) Mount(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/tools", s.listTools)
	mux.Handle("POST /api/tools", s.admin(s.createTool))
	mux.Handle("POST /api/tools/{id}/toggle", s.admin(s.toggleTool))
	mux.Handle("DELETE /api/tools/{id}", s.admin(s.deleteTool))

	if s.favorites != nil {
		mux.HandleFunc("GET /api/favorites", s.listFavorites)
		mux.HandleFunc("POST /api/favorites", s.addFavorite)
		mux.HandleFunc("DELETE /api/favorites/{toolName}", s.removeFavorite)
	}
}

func (s *Server) admin(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.authorized(r) {
			w.Header().Set("WWW-Authenticate", `Bearer realm="toolsvc"`)
			writeError(w, http.StatusUnauthorized, ErrUnauthorized)
			return
		}
		next(w, r)
	})
}

func (s *Server) authorized(r *http.Request) bool {
	if s.adminToken == "" {
		return false
	}
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(strings.TrimSpace(token)), []byte(s.adminToken)) == 1
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// LogRequests wraps next with the service's request logging.
func (s *Server) LogRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// statusFor maps store errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, toolstore.ErrNotFound), errors.Is(err, favorites.ErrNotFavorite):
		return http.StatusNotFound
	case errors.Is(err, toolstore.ErrInvalidRecord),
		errors.Is(err, favorites.ErrUserRequired),
		errors.Is(err, favorites.ErrToolNameRequired):
		return http.StatusBadRequest
	case errors.Is(err, toolstore.ErrDuplicatePath), errors.Is(err, toolstore.ErrDuplicateID):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
	writeError(w, status, err)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
