package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/boersenspiel/leaderboard/internal/contracts"
	"github.com/boersenspiel/leaderboard/pkg/logger"
)

// RankingSource serves the latest computed leaderboard; the pipeline
// refresher implements it.
type RankingSource interface {
	Ranking() []contracts.RankingEntry
	PlayerEntry(name string) (contracts.RankingEntry, bool)
	LastRefreshed() time.Time
}

// RankingHandler handles leaderboard API endpoints.
type RankingHandler struct {
	source RankingSource
	logger *logger.Logger
}

// NewRankingHandler creates a new ranking handler.
func NewRankingHandler(source RankingSource, log *logger.Logger) *RankingHandler {
	return &RankingHandler{
		source: source,
		logger: log,
	}
}

// rankingResponse wraps the leaderboard with its data age so consumers
// can surface staleness.
type rankingResponse struct {
	Ranking     []contracts.RankingEntry `json:"ranking"`
	RefreshedAt time.Time                `json:"refreshed_at"`
}

// GetRanking returns the ranked leaderboard.
// GET /api/ranking
func (h *RankingHandler) GetRanking(w http.ResponseWriter, r *http.Request) {
	refreshed := h.source.LastRefreshed()
	if refreshed.IsZero() {
		// Nothing has ever been loaded; this is the only state that
		// should read as "loading" to a consumer.
		respondError(w, http.StatusServiceUnavailable, "No data loaded yet")
		return
	}

	respondJSON(w, http.StatusOK, rankingResponse{
		Ranking:     h.source.Ranking(),
		RefreshedAt: refreshed,
	})
}

// GetPlayer returns one player's entry including the per-stock price
// history projection used for charting.
// GET /api/players/{name}
func (h *RankingHandler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	if h.source.LastRefreshed().IsZero() {
		respondError(w, http.StatusServiceUnavailable, "No data loaded yet")
		return
	}

	name := mux.Vars(r)["name"]
	entry, found := h.source.PlayerEntry(name)
	if !found {
		respondError(w, http.StatusNotFound, "Player not found")
		return
	}

	respondJSON(w, http.StatusOK, entry)
}
