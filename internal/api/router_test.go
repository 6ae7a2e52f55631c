package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/boersenspiel/leaderboard/internal/api/handlers"
	"github.com/boersenspiel/leaderboard/internal/contracts"
	"github.com/boersenspiel/leaderboard/internal/realtime"
	"github.com/boersenspiel/leaderboard/pkg/logger"
)

type staticSource struct {
	ranking   []contracts.RankingEntry
	refreshed time.Time
}

func (s *staticSource) Ranking() []contracts.RankingEntry { return s.ranking }

func (s *staticSource) PlayerEntry(name string) (contracts.RankingEntry, bool) {
	for _, e := range s.ranking {
		if e.Player == name {
			return e, true
		}
	}
	return contracts.RankingEntry{}, false
}

func (s *staticSource) LastRefreshed() time.Time { return s.refreshed }

func newTestRouter() http.Handler {
	log := logger.NewNop()
	source := &staticSource{
		ranking: []contracts.RankingEntry{
			{Player: "Anna", TotalPerformanceForGame: 15, Rank: 1},
		},
		refreshed: time.Now(),
	}

	return NewRouter(
		handlers.NewRankingHandler(source, log),
		handlers.NewResultsHandler(nil, log),
		realtime.NewHub(log),
		log,
	)
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %v, want ok", body["status"])
	}
}

func TestRankingRoute(t *testing.T) {
	router := newTestRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ranking", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestPlayerRouteExtractsName(t *testing.T) {
	router := newTestRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/players/Anna", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var entry struct {
		Player string `json:"player"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &entry); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if entry.Player != "Anna" {
		t.Errorf("player = %s, want Anna", entry.Player)
	}
}

func TestUnknownRoute(t *testing.T) {
	router := newTestRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
