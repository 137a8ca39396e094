package jobs

import (
	"context"

	"github.com/wonny/kabuscan/internal/batch"
	"github.com/wonny/kabuscan/pkg/logger"
)

// ScreenJob runs the full screening pipeline on its schedule. The runner
// itself skips non-trading days, so the cron spec only has to pick the
// time of day.
type ScreenJob struct {
	runner   *batch.Runner
	schedule string
	logger   *logger.Logger
}

// NewScreenJob creates a new screening job.
func NewScreenJob(runner *batch.Runner, schedule string, log *logger.Logger) *ScreenJob {
	return &ScreenJob{
		runner:   runner,
		schedule: schedule,
		logger:   log,
	}
}

// Name returns the job name.
func (j *ScreenJob) Name() string {
	return "daily_screen"
}

// Schedule returns the cron schedule (with seconds).
func (j *ScreenJob) Schedule() string {
	return j.schedule
}

// Run executes one screening pass.
func (j *ScreenJob) Run(ctx context.Context) error {
	j.logger.Info("Starting scheduled screening run")
	return j.runner.Run(ctx, false)
}
