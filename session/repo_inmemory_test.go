package session_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"vippsbroker/internal/utils"
	"vippsbroker/session"
	"vippsbroker/vipps"
)

const (
	initialValidity  = 30 * time.Minute
	extendedValidity = 60 * time.Minute
)

// fakeClock is a manually advanced clock for expiry tests.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newTestRepo(t *testing.T) (*session.InMemoryRepo, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	repo := session.NewInMemoryRepo(initialValidity, extendedValidity, session.WithNowTime(clock.Now))
	return repo, clock
}

func TestCreateAndLookup(t *testing.T) {
	repo, clock := newTestRepo(t)

	id, err := repo.Create("s1")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	byState, ok := repo.GetByState("s1")
	require.True(t, ok)
	require.Equal(t, id, byState.ID)
	require.Nil(t, byState.Profile)
	require.Equal(t, clock.Now().Add(initialValidity), byState.ExpiresAt)
	require.Equal(t, clock.Now(), byState.CreatedAt)

	byID, ok := repo.GetByID(id)
	require.True(t, ok)
	require.Equal(t, "s1", byID.State)
}

func TestCreateValidation(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, err := repo.Create("")
	require.Error(t, err)

	_, err = repo.Create("s1")
	require.NoError(t, err)

	_, err = repo.Create("s1")
	require.Error(t, err, "a state token binds at most one session")
}

func TestIDsAndStatesAreUnique(t *testing.T) {
	repo, _ := newTestRepo(t)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id, err := repo.Create(fmt.Sprintf("state-%d", i))
		require.NoError(t, err)
		require.False(t, seen[id])
		seen[id] = true
	}
}

func TestUpdatePopulatesAndExtends(t *testing.T) {
	repo, clock := newTestRepo(t)

	id, err := repo.Create("s1")
	require.NoError(t, err)

	updated := repo.Update(id, session.Update{
		AccessToken: utils.Ptr("a"),
		Profile:     &vipps.Profile{Sub: "x"},
	})
	require.True(t, updated)

	sess, ok := repo.GetByID(id)
	require.True(t, ok)
	require.Equal(t, "a", sess.AccessToken)
	require.Empty(t, sess.RefreshToken, "nil fields are left untouched")
	require.Equal(t, "x", sess.Profile.Sub)
	require.Equal(t, clock.Now().Add(extendedValidity), sess.ExpiresAt)
}

func TestUpdateStrictlyExtendsExpiry(t *testing.T) {
	repo, clock := newTestRepo(t)

	id, err := repo.Create("s1")
	require.NoError(t, err)

	require.True(t, repo.Update(id, session.Update{Profile: &vipps.Profile{Sub: "x"}}))
	first, ok := repo.GetByID(id)
	require.True(t, ok)

	clock.Advance(time.Second)
	require.True(t, repo.Update(id, session.Update{Profile: &vipps.Profile{Sub: "x"}}))
	second, ok := repo.GetByID(id)
	require.True(t, ok)

	require.True(t, second.ExpiresAt.After(first.ExpiresAt))
}

func TestUpdateNonexistentCreatesNothing(t *testing.T) {
	repo, _ := newTestRepo(t)

	require.False(t, repo.Update("missing", session.Update{AccessToken: utils.Ptr("a")}))

	_, ok := repo.GetByID("missing")
	require.False(t, ok)
}

func TestExpiredLookupEvicts(t *testing.T) {
	repo, clock := newTestRepo(t)

	id, err := repo.Create("s1")
	require.NoError(t, err)

	clock.Advance(initialValidity)

	_, ok := repo.GetByState("s1")
	require.False(t, ok)

	// Eviction is permanent: winding the clock back does not revive it.
	clock.Advance(-time.Hour)
	_, ok = repo.GetByID(id)
	require.False(t, ok)
}

func TestExpiryBoundaryIsExclusive(t *testing.T) {
	repo, clock := newTestRepo(t)

	id, err := repo.Create("s1")
	require.NoError(t, err)

	clock.Advance(initialValidity - time.Nanosecond)
	_, ok := repo.GetByID(id)
	require.True(t, ok)

	clock.Advance(time.Nanosecond)
	_, ok = repo.GetByID(id)
	require.False(t, ok)
}

func TestConsumeByState(t *testing.T) {
	repo, _ := newTestRepo(t)

	id, err := repo.Create("s1")
	require.NoError(t, err)

	sess, ok := repo.ConsumeByState("s1")
	require.True(t, ok)
	require.Equal(t, id, sess.ID)

	// Consumed state no longer resolves, but the session itself lives on.
	_, ok = repo.ConsumeByState("s1")
	require.False(t, ok)
	_, ok = repo.GetByState("s1")
	require.False(t, ok)

	_, ok = repo.GetByID(id)
	require.True(t, ok)
}

func TestConsumeByStateExpired(t *testing.T) {
	repo, clock := newTestRepo(t)

	_, err := repo.Create("s1")
	require.NoError(t, err)

	clock.Advance(initialValidity + time.Minute)

	_, ok := repo.ConsumeByState("s1")
	require.False(t, ok)
}

func TestDeleteIsIdempotent(t *testing.T) {
	repo, _ := newTestRepo(t)

	id, err := repo.Create("s1")
	require.NoError(t, err)

	require.True(t, repo.Delete(id))
	require.False(t, repo.Delete(id))

	// The state binding is released as well.
	_, ok := repo.GetByState("s1")
	require.False(t, ok)
}

func TestSweepExpired(t *testing.T) {
	repo, clock := newTestRepo(t)

	expired1, err := repo.Create("s1")
	require.NoError(t, err)
	expired2, err := repo.Create("s2")
	require.NoError(t, err)

	clock.Advance(initialValidity - time.Minute)
	fresh, err := repo.Create("s3")
	require.NoError(t, err)

	clock.Advance(time.Minute)
	require.Equal(t, 2, repo.SweepExpired())

	_, ok := repo.GetByID(expired1)
	require.False(t, ok)
	_, ok = repo.GetByID(expired2)
	require.False(t, ok)
	_, ok = repo.GetByID(fresh)
	require.True(t, ok)

	require.Equal(t, 0, repo.SweepExpired())
}
