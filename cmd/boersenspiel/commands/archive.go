package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/boersenspiel/leaderboard/internal/external/boerse"
	"github.com/boersenspiel/leaderboard/internal/pipeline"
	"github.com/boersenspiel/leaderboard/internal/results"
	"github.com/boersenspiel/leaderboard/internal/snapshot"
	"github.com/boersenspiel/leaderboard/pkg/config"
	"github.com/boersenspiel/leaderboard/pkg/httputil"
	"github.com/boersenspiel/leaderboard/pkg/logger"
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Archive the current ranking as a season result",
	Long: `Fetches current data, computes the ranking and writes one row per
stock into the season_results table. Requires DATABASE_URL.`,
	RunE: runArchive,
}

var archiveYear int

func init() {
	rootCmd.AddCommand(archiveCmd)
	archiveCmd.Flags().IntVar(&archiveYear, "year", time.Now().Year(), "season year to archive under")
}

func runArchive(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required for archive")
	}

	log := logger.New(cfg)

	repo, err := results.NewRepository(cmd.Context(), cfg.Database.URL, log)
	if err != nil {
		return fmt.Errorf("connect to results archive: %w", err)
	}
	defer repo.Close()

	httpClient := httputil.New(cfg, log).
		WithRateLimit(cfg.Boerse.RateLimitRPS, cfg.Boerse.RateLimitBurst)
	client := boerse.NewClient(cfg, httpClient, log)
	refresher := pipeline.NewRefresher(client, pipeline.New(log), snapshot.NewMemoryStore(), log)

	if err := refresher.Refresh(cmd.Context()); err != nil {
		return fmt.Errorf("refresh: %w", err)
	}

	entries := refresher.Ranking()
	if err := repo.Archive(cmd.Context(), archiveYear, entries); err != nil {
		return err
	}

	fmt.Printf("Archived %d players for season %d\n", len(entries), archiveYear)
	return nil
}
