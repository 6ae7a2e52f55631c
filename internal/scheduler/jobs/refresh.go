// Package jobs holds the scheduled refresh jobs.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/boersenspiel/leaderboard/internal/pipeline"
	"github.com/boersenspiel/leaderboard/pkg/logger"
)

// FullRefreshJob re-fetches players, prices, exchange rates and history,
// then recomputes the ranking. Default cadence: every 20 minutes.
type FullRefreshJob struct {
	refresher *pipeline.Refresher
	interval  time.Duration
	logger    *logger.Logger
}

// NewFullRefreshJob creates the full refresh job.
func NewFullRefreshJob(r *pipeline.Refresher, interval time.Duration, log *logger.Logger) *FullRefreshJob {
	return &FullRefreshJob{refresher: r, interval: interval, logger: log}
}

// Name returns the job name.
func (j *FullRefreshJob) Name() string {
	return "full_refresh"
}

// Schedule returns the cron schedule expression.
func (j *FullRefreshJob) Schedule() string {
	return fmt.Sprintf("@every %s", j.interval)
}

// Run executes one refresh cycle.
func (j *FullRefreshJob) Run(ctx context.Context) error {
	return j.refresher.Refresh(ctx)
}

// RateRefreshJob re-fetches only the spot exchange rates and recomputes
// the ranking on the existing snapshot. Default cadence: hourly.
type RateRefreshJob struct {
	refresher *pipeline.Refresher
	interval  time.Duration
	logger    *logger.Logger
}

// NewRateRefreshJob creates the rate refresh job.
func NewRateRefreshJob(r *pipeline.Refresher, interval time.Duration, log *logger.Logger) *RateRefreshJob {
	return &RateRefreshJob{refresher: r, interval: interval, logger: log}
}

// Name returns the job name.
func (j *RateRefreshJob) Name() string {
	return "rate_refresh"
}

// Schedule returns the cron schedule expression.
func (j *RateRefreshJob) Schedule() string {
	return fmt.Sprintf("@every %s", j.interval)
}

// Run refreshes the exchange rates. Before the first full refresh there
// is no snapshot to update; that is not an error worth alerting on.
func (j *RateRefreshJob) Run(ctx context.Context) error {
	err := j.refresher.RefreshRates(ctx)
	if errors.Is(err, pipeline.ErrNoData) {
		j.logger.Debug("Skipping rate refresh, no snapshot yet")
		return nil
	}
	return err
}
