package session_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"vippsbroker/session"
)

// countingRepo records sweep invocations so the test does not depend on
// lazy eviction masking the sweep.
type countingRepo struct {
	*session.InMemoryRepo
	sweeps atomic.Int32
	swept  atomic.Int32
}

func (c *countingRepo) SweepExpired() int {
	count := c.InMemoryRepo.SweepExpired()
	c.sweeps.Add(1)
	c.swept.Add(int32(count))
	return count
}

func TestSweeperRemovesExpiredSessions(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	repo := &countingRepo{
		InMemoryRepo: session.NewInMemoryRepo(initialValidity, extendedValidity, session.WithNowTime(clock.Now)),
	}

	_, err := repo.Create("s1")
	require.NoError(t, err)
	clock.Advance(initialValidity + time.Minute)

	sweeper := session.NewSweeper(repo, 10*time.Millisecond)
	sweeper.Start()
	defer sweeper.Stop()

	require.Eventually(t, func() bool {
		return repo.sweeps.Load() > 0 && repo.swept.Load() == 1
	}, time.Second, 5*time.Millisecond)
}

func TestSweeperStopBlocksUntilDone(t *testing.T) {
	repo := session.NewInMemoryRepo(initialValidity, extendedValidity)

	sweeper := session.NewSweeper(repo, 10*time.Millisecond)
	sweeper.Start()

	done := make(chan struct{})
	go func() {
		sweeper.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return")
	}
}
