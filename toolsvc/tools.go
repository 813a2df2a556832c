package toolsvc

import (
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/jonwraymond/toolcatalog/toolstore"
)

// toolResponse is a record as served to clients. isPremium mirrors
// premium for consumers that read either name.
type toolResponse struct {
	toolstore.ToolRecord
	IsPremium bool `json:"isPremium"`
}

func newToolResponse(rec toolstore.ToolRecord) toolResponse {
	return toolResponse{ToolRecord: rec, IsPremium: rec.Premium}
}

type createRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Path        string `json:"path"`
	Order       int    `json:"order"`
	Enabled     bool   `json:"enabled"`
	Premium     bool   `json:"premium"`
	IsPremium   bool   `json:"isPremium"`
}

func (s *Server) listTools(w http.ResponseWriter, r *http.Request) {
	recs, err := s.tools.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	out := make([]toolResponse, len(recs))
	for i, rec := range recs {
		out[i] = newToolResponse(rec)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createTool(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: %v", toolstore.ErrInvalidRecord, err))
		return
	}
	rec, err := s.tools.Create(r.Context(), toolstore.ToolRecord{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Path:        req.Path,
		Order:       req.Order,
		Enabled:     req.Enabled,
		Premium:     req.Premium || req.IsPremium,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.logger.Info("tool created", zap.String("id", rec.ID), zap.String("path", rec.Path))
	writeJSON(w, http.StatusCreated, newToolResponse(rec))
}

func (s *Server) toggleTool(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	enabled, err := parseBoolParam(q.Get("enabled"), true)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("enabled: %w", err))
		return
	}
	premium, err := parseBoolParam(q.Get("premium"), false)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("premium: %w", err))
		return
	}

	id := r.PathValue("id")
	rec, err := s.tools.Toggle(r.Context(), id, enabled, premium)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.logger.Info("tool toggled",
		zap.String("id", id),
		zap.Bool("enabled", rec.Enabled),
		zap.Bool("premium", rec.Premium),
	)
	writeJSON(w, http.StatusOK, newToolResponse(rec))
}

func (s *Server) deleteTool(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.tools.Delete(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}
	s.logger.Info("tool deleted", zap.String("id", id))
	w.WriteHeader(http.StatusNoContent)
}

// parseBoolParam returns nil for an absent optional value.
func parseBoolParam(raw string, required bool) (*bool, error) {
	if raw == "" {
		if required {
			return nil, fmt.Errorf("parameter is required")
		}
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid boolean %q", raw)
	}
	return &v, nil
}
