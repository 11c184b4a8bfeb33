package interview

import (
	"context"
	"log"
	"time"

	"github.com/careerlift/resume-coach/backend/internal/service/session"
)

// Sweeper reclaims sessions whose last activity is older than the idle
// threshold. It runs independently of request handling; clients of a
// reclaimed session simply see session-not-found on their next call.
type Sweeper struct {
	store     *session.Store
	interval  time.Duration
	threshold time.Duration
}

// NewSweeper configures the background sweep.
func NewSweeper(store *session.Store, interval, threshold time.Duration) *Sweeper {
	return &Sweeper{store: store, interval: interval, threshold: threshold}
}

// Run blocks until ctx is cancelled, sweeping on every tick.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	log.Printf("[sweeper] running every %s, idle threshold %s", s.interval, s.threshold)
	for {
		select {
		case <-ctx.Done():
			log.Printf("[sweeper] stopping: %v", ctx.Err())
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// Sweep deletes every idle session and reports how many went.
func (s *Sweeper) Sweep() int {
	ids := s.store.Expired(s.threshold)
	for _, id := range ids {
		s.store.Delete(id)
	}
	if len(ids) > 0 {
		log.Printf("[sweeper] reclaimed %d idle session(s)", len(ids))
	}
	return len(ids)
}
