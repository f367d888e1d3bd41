// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"sync/atomic"

	"github.com/squaredcircle/ringledger/pkg/logger"
)

// RebuildHandler triggers a full re-ingest and snapshot rebuild.
type RebuildHandler struct {
	rebuilder Rebuilder
	logger    logger.Logger
	running   atomic.Bool
}

// NewRebuildHandler creates a new rebuild handler.
func NewRebuildHandler(rebuilder Rebuilder, log logger.Logger) *RebuildHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &RebuildHandler{rebuilder: rebuilder, logger: log}
}

type rebuildResponse struct {
	Status string `json:"status"`
}

// HandleRebuild handles POST /api/v1/rebuild requests. Only one rebuild
// runs at a time; concurrent requests get 409.
func (h *RebuildHandler) HandleRebuild(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	if h.rebuilder == nil {
		writeError(w, http.StatusNotImplemented, "not_supported", nil)
		return
	}
	if !h.running.CompareAndSwap(false, true) {
		writeError(w, http.StatusConflict, "rebuild_running", ErrRebuildRunning)
		return
	}
	defer h.running.Store(false)

	if err := h.rebuilder.RebuildFromLogs(r.Context()); err != nil {
		h.logger.Error(r.Context(), "rebuild failed", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, rebuildResponse{Status: "rebuilt"})
}
