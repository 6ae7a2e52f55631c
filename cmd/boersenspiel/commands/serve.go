package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/boersenspiel/leaderboard/internal/api"
	"github.com/boersenspiel/leaderboard/internal/api/handlers"
	"github.com/boersenspiel/leaderboard/internal/contracts"
	"github.com/boersenspiel/leaderboard/internal/external/boerse"
	"github.com/boersenspiel/leaderboard/internal/pipeline"
	"github.com/boersenspiel/leaderboard/internal/realtime"
	"github.com/boersenspiel/leaderboard/internal/results"
	"github.com/boersenspiel/leaderboard/internal/scheduler"
	"github.com/boersenspiel/leaderboard/internal/scheduler/jobs"
	"github.com/boersenspiel/leaderboard/internal/snapshot"
	"github.com/boersenspiel/leaderboard/pkg/config"
	"github.com/boersenspiel/leaderboard/pkg/httputil"
	"github.com/boersenspiel/leaderboard/pkg/logger"
	"github.com/boersenspiel/leaderboard/pkg/redis"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the leaderboard API server",
	Long: `Starts the HTTP API server and the periodic refresh jobs.

Endpoints:
  GET /health                    - Health check
  GET /api/ranking               - Ranked leaderboard
  GET /api/ranking/stream        - Websocket ranking updates
  GET /api/players/{name}        - One player incl. chart data
  GET /api/results/{year}        - Archived season results
  GET /api/performance-matrix    - Owner-by-year performance matrix`,
	RunE: runServe,
}

var servePort string

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&servePort, "port", "", "override the listen port")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if servePort != "" {
		cfg.Port = servePort
	}

	log := logger.New(cfg)

	// Snapshot store: Redis when enabled, in-memory otherwise.
	var store snapshot.Store = snapshot.NewMemoryStore()
	redisClient, err := redis.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()
	if redisClient.Enabled() {
		store = snapshot.NewRedisStore(redisClient)
		log.Info("Using Redis snapshot store")
	}

	// Upstream client and pipeline.
	httpClient := httputil.New(cfg, log).
		WithRateLimit(cfg.Boerse.RateLimitRPS, cfg.Boerse.RateLimitBurst)
	client := boerse.NewClient(cfg, httpClient, log)
	refresher := pipeline.NewRefresher(client, pipeline.New(log), store, log)

	// Websocket fan-out of fresh rankings.
	hub := realtime.NewHub(log)
	defer hub.Close()
	refresher.OnUpdate(func(entries []contracts.RankingEntry) {
		hub.Broadcast(entries)
	})

	// Optional results archive.
	var repo *results.Repository
	if cfg.Database.URL != "" {
		repo, err = results.NewRepository(cmd.Context(), cfg.Database.URL, log)
		if err != nil {
			return fmt.Errorf("connect to results archive: %w", err)
		}
		defer repo.Close()
		log.Info("Results archive enabled")
	}

	// Serve stale data immediately, refresh in the background.
	refresher.Seed(cmd.Context())
	go func() {
		if err := refresher.Refresh(context.Background()); err != nil {
			log.WithError(err).Error("Initial refresh failed")
		}
	}()

	// Periodic refresh.
	sched := scheduler.New(log)
	if err := sched.AddJob(jobs.NewFullRefreshJob(refresher, cfg.Refresh.Prices, log)); err != nil {
		return err
	}
	if err := sched.AddJob(jobs.NewRateRefreshJob(refresher, cfg.Refresh.Rates, log)); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	router := api.NewRouter(
		handlers.NewRankingHandler(refresher, log),
		handlers.NewResultsHandler(repo, log),
		hub,
		log,
	)
	server := api.New(cfg, log, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
