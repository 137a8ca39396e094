package schedule

import (
	"context"
	"time"
)

// Job is a named unit of scheduled work.
type Job interface {
	// Name identifies the job in logs and lookups.
	Name() string

	// Schedule returns the cron spec (with seconds field).
	Schedule() string

	// Run executes the job once.
	Run(ctx context.Context) error
}

// JobResult records one execution.
type JobResult struct {
	JobName   string
	StartTime time.Time
	Duration  time.Duration
	Success   bool
	Error     string
}
