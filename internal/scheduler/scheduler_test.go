package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pochun/chipscan/pkg/logger"
)

type stubJob struct {
	name string
}

func (j *stubJob) Name() string              { return j.name }
func (j *stubJob) Run(context.Context) error { return nil }
func (j *stubJob) Schedule() string          { return "0 30 15 * * 1-5" }

func TestAddJobRejectsDuplicates(t *testing.T) {
	s := New(logger.NewNop())

	require.NoError(t, s.AddJob(&stubJob{name: "daily_report"}))
	err := s.AddJob(&stubJob{name: "daily_report"})
	assert.ErrorContains(t, err, "already exists")
}

func TestRunJobUnknown(t *testing.T) {
	s := New(logger.NewNop())

	err := s.RunJob("missing")
	assert.ErrorContains(t, err, "not found")
}

func TestJobHistorySuccessRate(t *testing.T) {
	h := &JobHistory{}
	h.AddResult(JobResult{Success: true})
	h.AddResult(JobResult{Success: false})
	h.AddResult(JobResult{Success: true})

	assert.InDelta(t, 2.0/3.0, h.GetSuccessRate(), 1e-9)
	assert.Len(t, h.GetLatestResults(2), 2)
}
