// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/squaredcircle/ringledger/internal/domain/model"
)

// TitlesHandler serves title line histories.
type TitlesHandler struct {
	deps Dependencies
}

// NewTitlesHandler creates a new titles handler.
func NewTitlesHandler(deps Dependencies) *TitlesHandler {
	return &TitlesHandler{deps: deps}
}

// HandleTitleLine handles GET /api/v1/titles/{org}/{weight} requests.
func (h *TitlesHandler) HandleTitleLine(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	parts := pathParts(r.URL.Path, "/api/v1/titles/")
	if len(parts) != 2 {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	view, err := h.deps.TitleLine(model.Org(parts[0]), model.WeightClass(parts[1]))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
