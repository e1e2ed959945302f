package tasks

import (
	"context"
	"log"
	"time"

	"github.com/snapcal/backend/internal/service"
)

const cleanupInterval = 24 * time.Hour

// Runner periodically deactivates expired guest sessions. Failures are
// logged and retried on the next tick; the data they would have touched
// is already unreachable through the API because session validation
// checks expiry on every request.
type Runner struct {
	guests service.IGuestService
	stop   chan struct{}
	done   chan struct{}
}

// NewRunner creates a new Runner instance.
func NewRunner(guests service.IGuestService) *Runner {
	return &Runner{
		guests: guests,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Start launches the background loop. One cleanup pass runs
// immediately so restarts do not postpone overdue work a full day.
func (r *Runner) Start() {
	go func() {
		defer close(r.done)

		r.RunOnce(context.Background())

		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				r.RunOnce(context.Background())
			case <-r.stop:
				return
			}
		}
	}()
}

// Stop terminates the loop and waits for it to exit.
func (r *Runner) Stop() {
	close(r.stop)
	<-r.done
}

// RunOnce performs a single cleanup pass.
func (r *Runner) RunOnce(ctx context.Context) {
	deactivated, err := r.guests.CleanupExpiredSessions(ctx)
	if err != nil {
		log.Printf("Guest session cleanup failed: %v", err)
		return
	}
	if deactivated > 0 {
		log.Printf("Deactivated %d expired guest sessions", deactivated)
	}
}
