package toolsvc

import (
	"fmt"
	"net/http"

	"github.com/jonwraymond/toolcatalog/favorites"
)

type favoriteRequest struct {
	ToolName string `json:"toolName"`
}

func (s *Server) listFavorites(w http.ResponseWriter, r *http.Request) {
	names, err := s.favorites.List(r.Context(), r.Header.Get(UserHeader))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, names)
}

func (s *Server) addFavorite(w http.ResponseWriter, r *http.Request) {
	var req favoriteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: %v", favorites.ErrToolNameRequired, err))
		return
	}
	if err := s.favorites.Add(r.Context(), r.Header.Get(UserHeader), req.ToolName); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"toolName": req.ToolName})
}

func (s *Server) removeFavorite(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("toolName")
	if err := s.favorites.Remove(r.Context(), r.Header.Get(UserHeader), name); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"toolName": name})
}
