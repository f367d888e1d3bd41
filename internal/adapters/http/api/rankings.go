// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strconv"
)

// RankingsHandler serves the yearly tables, the GOAT lists, and the Hall
// of Fame classes.
type RankingsHandler struct {
	deps Dependencies
}

// NewRankingsHandler creates a new rankings handler.
func NewRankingsHandler(deps Dependencies) *RankingsHandler {
	return &RankingsHandler{deps: deps}
}

// HandleYears handles GET /api/v1/years requests.
func (h *RankingsHandler) HandleYears(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	years, err := h.deps.Years()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, years)
}

// HandleRankings handles GET /api/v1/rankings/{division}/{year} requests.
func (h *RankingsHandler) HandleRankings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	parts := pathParts(r.URL.Path, "/api/v1/rankings/")
	if len(parts) != 2 {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	div, ok := parseDivision(parts[0])
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown_division", ErrUnknownDivision)
		return
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	entries, err := h.deps.Rankings(div, year)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// HandleGOAT handles GET /api/v1/goat/{division} requests.
func (h *RankingsHandler) HandleGOAT(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	parts := pathParts(r.URL.Path, "/api/v1/goat/")
	if len(parts) != 1 {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	div, ok := parseDivision(parts[0])
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown_division", ErrUnknownDivision)
		return
	}
	entries, err := h.deps.GOAT(div)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// HandleHallOfFame handles GET /api/v1/hof requests.
func (h *RankingsHandler) HandleHallOfFame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	classes, err := h.deps.HallOfFame()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, classes)
}
