// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/squaredcircle/ringledger/internal/adapters/repository"
	"github.com/squaredcircle/ringledger/internal/domain/hof"
	"github.com/squaredcircle/ringledger/internal/domain/model"
	"github.com/squaredcircle/ringledger/internal/domain/rankings"
	"github.com/squaredcircle/ringledger/pkg/logger"
)

// Dependencies required by the read handlers. Using an interface bundle
// keeps the handler layer loosely coupled to the snapshot store.
type Dependencies interface {
	Years() ([]int, error)
	Rankings(div rankings.Division, year int) ([]rankings.Entry, error)
	GOAT(div rankings.Division) ([]rankings.Entry, error)
	HallOfFame() ([]hof.Class, error)
	TitleLine(org model.Org, weight model.WeightClass) (repository.TitleLineView, error)
	Wrestler(name string) (repository.WrestlerProfile, error)
	Snapshot() (*repository.Snapshot, error)
}

// Rebuilder re-ingests the logs and publishes a fresh snapshot.
type Rebuilder interface {
	RebuildFromLogs(ctx context.Context) error
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	rankingsHandler *RankingsHandler
	titlesHandler   *TitlesHandler
	wrestlerHandler *WrestlerHandler
	rebuildHandler  *RebuildHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, rebuilder Rebuilder, log logger.Logger) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(deps),
		rankingsHandler: NewRankingsHandler(deps),
		titlesHandler:   NewTitlesHandler(deps),
		wrestlerHandler: NewWrestlerHandler(deps),
		rebuildHandler:  NewRebuildHandler(rebuilder, log),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("/api/v1/years", MetricsMiddleware(s.rankingsHandler.HandleYears, "years"))
	mux.HandleFunc("/api/v1/rankings/", MetricsMiddleware(s.rankingsHandler.HandleRankings, "rankings"))
	mux.HandleFunc("/api/v1/goat/", MetricsMiddleware(s.rankingsHandler.HandleGOAT, "goat"))
	mux.HandleFunc("/api/v1/hof", MetricsMiddleware(s.rankingsHandler.HandleHallOfFame, "hof"))
	mux.HandleFunc("/api/v1/titles/", MetricsMiddleware(s.titlesHandler.HandleTitleLine, "titles"))
	mux.HandleFunc("/api/v1/wrestlers/", MetricsMiddleware(s.wrestlerHandler.HandleWrestler, "wrestlers"))
	mux.HandleFunc("/api/v1/rebuild", MetricsMiddleware(s.rebuildHandler.HandleRebuild, "rebuild"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeStoreError translates snapshot store errors onto HTTP statuses.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotReady):
		writeError(w, http.StatusServiceUnavailable, "not_ready", err)
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}

// pathParts splits the request path after prefix into its segments.
func pathParts(path, prefix string) []string {
	rest := strings.TrimPrefix(path, prefix)
	rest = strings.Trim(rest, "/")
	if rest == "" {
		return nil
	}
	return strings.Split(rest, "/")
}

func parseDivision(s string) (rankings.Division, bool) {
	for _, div := range rankings.Divisions() {
		if s == string(div) {
			return div, true
		}
	}
	return "", false
}
