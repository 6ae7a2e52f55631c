package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/boersenspiel/leaderboard/internal/results"
	"github.com/boersenspiel/leaderboard/pkg/logger"
)

// ResultsHandler serves the historical-year views. The repository is nil
// when no database is configured; the endpoints then report unavailable.
type ResultsHandler struct {
	repo   *results.Repository
	logger *logger.Logger
}

// NewResultsHandler creates a new results handler.
func NewResultsHandler(repo *results.Repository, log *logger.Logger) *ResultsHandler {
	return &ResultsHandler{
		repo:   repo,
		logger: log,
	}
}

// GetYear returns the archived results of one season.
// GET /api/results/{year}
func (h *ResultsHandler) GetYear(w http.ResponseWriter, r *http.Request) {
	if h.repo == nil {
		respondError(w, http.StatusServiceUnavailable, "Results archive not configured")
		return
	}

	year, err := strconv.Atoi(mux.Vars(r)["year"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid year")
		return
	}

	records, err := h.repo.ByYear(r.Context(), year)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load season results")
		respondError(w, http.StatusInternalServerError, "Failed to load season results")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"year":    year,
		"results": records,
	})
}

// GetMatrix returns the owner-by-year performance matrix.
// GET /api/performance-matrix
func (h *ResultsHandler) GetMatrix(w http.ResponseWriter, r *http.Request) {
	if h.repo == nil {
		respondError(w, http.StatusServiceUnavailable, "Results archive not configured")
		return
	}

	matrix, err := h.repo.Matrix(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to load performance matrix")
		respondError(w, http.StatusInternalServerError, "Failed to load performance matrix")
		return
	}

	respondJSON(w, http.StatusOK, matrix)
}
