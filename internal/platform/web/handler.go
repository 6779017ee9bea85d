// Package web serves the stored flappy runs as a read-only JSON API.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// Query limits for list endpoints.
const (
	defaultLimit = 10
	maxLimit     = 100
)

// ScoreSource reads stored runs. Satisfied by *storage.Store.
type ScoreSource interface {
	TopRuns(ctx context.Context, limit int) ([]storage.Run, error)
	RecentRuns(ctx context.Context, limit int) ([]storage.Run, error)
	RunByID(ctx context.Context, id int64) (storage.Run, error)
	BestScore(ctx context.Context) (int, error)
	Stats(ctx context.Context) (storage.Stats, error)
}

// Handler serves the scoreboard endpoints.
type Handler struct {
	store  ScoreSource
	logger *log.Logger
}

// NewHandler returns a handler reading from store.
func NewHandler(store ScoreSource, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{store: store, logger: logger}
}

// RegisterRoutes mounts the API on r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/stats", h.stats)
		r.Route("/scores", func(r chi.Router) {
			r.Get("/", h.topScores)
			r.Get("/recent", h.recentScores)
			r.Get("/best", h.bestScore)
			r.Get("/{id}", h.runByID)
		})
	})
}

func (h *Handler) topScores(w http.ResponseWriter, r *http.Request) {
	h.listRuns(w, r, h.store.TopRuns)
}

func (h *Handler) recentScores(w http.ResponseWriter, r *http.Request) {
	h.listRuns(w, r, h.store.RecentRuns)
}

func (h *Handler) listRuns(w http.ResponseWriter, r *http.Request, list func(context.Context, int) ([]storage.Run, error)) {
	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	runs, err := list(r.Context(), limit)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	if runs == nil {
		runs = []storage.Run{}
	}
	writeJSON(w, http.StatusOK, runs)
}

func (h *Handler) bestScore(w http.ResponseWriter, r *http.Request) {
	best, err := h.store.BestScore(r.Context())
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"best": best})
}

func (h *Handler) runByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid run id")
		return
	}

	run, err := h.store.RunByID(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.Stats(r.Context())
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("request failed", "path", r.URL.Path, "error", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

// parseLimit reads the limit query parameter. Empty means the default;
// values above maxLimit are clamped.
func parseLimit(raw string) (int, error) {
	if raw == "" {
		return defaultLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, errors.New("limit must be a positive integer")
	}
	return min(n, maxLimit), nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
