package tasks_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/snapcal/backend/internal/service"
	"github.com/snapcal/backend/internal/tasks"
)

type stubGuestService struct {
	service.IGuestService

	calls atomic.Int64
	err   error
}

func (s *stubGuestService) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	s.calls.Add(1)
	if s.err != nil {
		return 0, s.err
	}
	return 2, nil
}

func TestRunnerRunOnce(t *testing.T) {
	stub := &stubGuestService{}
	runner := tasks.NewRunner(stub)

	runner.RunOnce(context.Background())
	assert.Equal(t, int64(1), stub.calls.Load())

	// A failing sweep is logged and swallowed, never panics.
	stub.err = errors.New("db down")
	runner.RunOnce(context.Background())
	assert.Equal(t, int64(2), stub.calls.Load())
}

func TestRunnerStartStop(t *testing.T) {
	stub := &stubGuestService{}
	runner := tasks.NewRunner(stub)

	runner.Start()

	// The initial pass runs right away, before the first tick.
	assert.Eventually(t, func() bool {
		return stub.calls.Load() >= 1
	}, time.Second, 10*time.Millisecond)

	runner.Stop()
	after := stub.calls.Load()

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, stub.calls.Load())
}
