package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/boersenspiel/leaderboard/internal/external/boerse"
	"github.com/boersenspiel/leaderboard/internal/pipeline"
	"github.com/boersenspiel/leaderboard/internal/snapshot"
	"github.com/boersenspiel/leaderboard/pkg/config"
	"github.com/boersenspiel/leaderboard/pkg/httputil"
	"github.com/boersenspiel/leaderboard/pkg/logger"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Fetch current data and print the leaderboard",
	RunE:  runRank,
}

func init() {
	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	httpClient := httputil.New(cfg, log).
		WithRateLimit(cfg.Boerse.RateLimitRPS, cfg.Boerse.RateLimitBurst)
	client := boerse.NewClient(cfg, httpClient, log)
	refresher := pipeline.NewRefresher(client, pipeline.New(log), snapshot.NewMemoryStore(), log)

	if err := refresher.Refresh(cmd.Context()); err != nil {
		return fmt.Errorf("refresh: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tPlayer\tTicker\tDir\tCcy\tStart\tCurrent\tPerf\tTotal")
	for _, entry := range refresher.Ranking() {
		for i, stock := range entry.Stocks {
			rank, total := "", ""
			if i == 0 {
				rank = fmt.Sprintf("%d", entry.Rank)
				total = fmt.Sprintf("%.2f%%", float64(entry.TotalPerformanceForGame))
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%.2f%%\t%s\n",
				rank,
				firstOnly(entry.Player, i),
				stock.Ticker,
				stock.Direction,
				stock.Currency,
				stock.StartPrice,
				stock.CurrentPrice,
				float64(stock.PerformanceForGame),
				total,
			)
		}
	}
	return w.Flush()
}

func firstOnly(s string, i int) string {
	if i == 0 {
		return s
	}
	return ""
}
