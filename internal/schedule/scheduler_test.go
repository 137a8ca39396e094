package schedule

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/kabuscan/pkg/logger"
)

type countingJob struct {
	name     string
	schedule string
	failures int32
	runs     int32
}

func (j *countingJob) Name() string     { return j.name }
func (j *countingJob) Schedule() string { return j.schedule }

func (j *countingJob) Run(ctx context.Context) error {
	n := atomic.AddInt32(&j.runs, 1)
	if n <= atomic.LoadInt32(&j.failures) {
		return errors.New("transient failure")
	}
	return nil
}

func TestAddJobRejectsDuplicates(t *testing.T) {
	s := New(logger.NewNop())
	job := &countingJob{name: "screen", schedule: "0 0 18 * * *"}

	require.NoError(t, s.AddJob(job))
	assert.Error(t, s.AddJob(job))
}

func TestAddJobRejectsBadSchedule(t *testing.T) {
	s := New(logger.NewNop())
	assert.Error(t, s.AddJob(&countingJob{name: "bad", schedule: "not a cron spec"}))
}

func TestRunJobUnknown(t *testing.T) {
	s := New(logger.NewNop())
	assert.Error(t, s.RunJob("missing"))
}

func TestRunJobRetriesUntilSuccess(t *testing.T) {
	s := New(logger.NewNop())
	s.retryDelay = time.Millisecond

	job := &countingJob{name: "screen", schedule: "0 0 18 * * *", failures: 2}
	require.NoError(t, s.AddJob(job))

	s.runJob(job)

	assert.Equal(t, int32(3), atomic.LoadInt32(&job.runs))
	res, ok := s.LastResult("screen")
	require.True(t, ok)
	assert.True(t, res.Success)
	assert.Empty(t, res.Error)
}

func TestRunJobRecordsFailure(t *testing.T) {
	s := New(logger.NewNop())
	s.maxRetries = 1
	s.retryDelay = time.Millisecond

	job := &countingJob{name: "screen", schedule: "0 0 18 * * *", failures: 10}
	require.NoError(t, s.AddJob(job))

	s.runJob(job)

	assert.Equal(t, int32(2), atomic.LoadInt32(&job.runs))
	res, ok := s.LastResult("screen")
	require.True(t, ok)
	assert.False(t, res.Success)
	assert.Equal(t, "transient failure", res.Error)
}
