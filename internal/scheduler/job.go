package scheduler

import "context"

// Job is a scheduled task.
type Job interface {
	// Name returns the job name.
	Name() string

	// Run executes the job.
	Run(ctx context.Context) error

	// Schedule returns the cron schedule expression, e.g. "@every 20m".
	Schedule() string
}
