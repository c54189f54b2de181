package session

import (
	"time"

	"github.com/rs/zerolog/log"
)

// Sweeper periodically removes expired sessions so abandoned login
// attempts do not accumulate. Expiry is already enforced lazily on
// every lookup; the sweep only bounds memory.
type Sweeper struct {
	repo     Repo
	interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewSweeper creates a sweeper for the given repository. If interval is
// 0 or negative, defaults to 5 minutes.
func NewSweeper(repo Repo, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Sweeper{
		repo:     repo,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background sweep loop. Call Stop to shut it down.
func (s *Sweeper) Start() {
	go s.run()
	log.Info().Dur("interval", s.interval).Msg("session sweeper started")
}

// Stop shuts down the sweep loop, blocking until any in-progress sweep
// has finished.
func (s *Sweeper) Stop() {
	close(s.stopCh)
	<-s.doneCh
	log.Info().Msg("session sweeper stopped")
}

func (s *Sweeper) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if cleaned := s.repo.SweepExpired(); cleaned > 0 {
				log.Info().Int("cleaned", cleaned).Msg("removed expired sessions")
			}
		case <-s.stopCh:
			return
		}
	}
}
