package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/boersenspiel/leaderboard/internal/api/handlers"
	"github.com/boersenspiel/leaderboard/internal/realtime"
	"github.com/boersenspiel/leaderboard/pkg/logger"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(
	rankingHandler *handlers.RankingHandler,
	resultsHandler *handlers.ResultsHandler,
	hub *realtime.Hub,
	log *logger.Logger,
) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Leaderboard
	api.HandleFunc("/ranking", rankingHandler.GetRanking).Methods("GET")
	api.Handle("/ranking/stream", hub).Methods("GET")
	api.HandleFunc("/players/{name}", rankingHandler.GetPlayer).Methods("GET")

	// Historical-year views
	api.HandleFunc("/results/{year}", resultsHandler.GetYear).Methods("GET")
	api.HandleFunc("/performance-matrix", resultsHandler.GetMatrix).Methods("GET")

	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// healthCheckHandler returns server health status.
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "boersenspiel-leaderboard",
	})
}

// loggingMiddleware logs HTTP requests.
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics.
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
