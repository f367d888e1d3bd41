// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"net/url"
)

// WrestlerHandler serves wrestler profiles.
type WrestlerHandler struct {
	deps Dependencies
}

// NewWrestlerHandler creates a new wrestler handler.
func NewWrestlerHandler(deps Dependencies) *WrestlerHandler {
	return &WrestlerHandler{deps: deps}
}

// HandleWrestler handles GET /api/v1/wrestlers/{name} requests. The name
// segment is URL-escaped.
func (h *WrestlerHandler) HandleWrestler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	parts := pathParts(r.URL.Path, "/api/v1/wrestlers/")
	if len(parts) != 1 {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	name, err := url.PathUnescape(parts[0])
	if err != nil || name == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	profile, err := h.deps.Wrestler(name)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
