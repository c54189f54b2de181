package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// InMemoryRepo is an in-memory implementation of Repo. Sessions do not
// survive a process restart; a restart simply forces clients back
// through start-login.
type InMemoryRepo struct {
	mu       sync.Mutex
	sessions map[string]*Session // id -> session
	byState  map[string]string   // state -> id

	initialValidity  time.Duration
	extendedValidity time.Duration
	nowTime          func() time.Time
}

// InMemoryRepoOption modifies an InMemoryRepo instance.
type InMemoryRepoOption func(*InMemoryRepo)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) InMemoryRepoOption {
	return func(r *InMemoryRepo) {
		r.nowTime = nowFunc
	}
}

// NewInMemoryRepo creates a new in-memory session repository.
// initialValidity is the window granted at creation, covering the time
// a user spends in the consent UI; extendedValidity replaces it on
// every successful update.
func NewInMemoryRepo(initialValidity, extendedValidity time.Duration, options ...InMemoryRepoOption) *InMemoryRepo {
	r := &InMemoryRepo{
		sessions:         make(map[string]*Session),
		byState:          make(map[string]string),
		initialValidity:  initialValidity,
		extendedValidity: extendedValidity,
		nowTime:          time.Now,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// Create allocates a new session bound to the given state token.
func (r *InMemoryRepo) Create(state string) (string, error) {
	if state == "" {
		return "", errors.New("state is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byState[state]; exists {
		return "", errors.New("state already in use")
	}

	id := uuid.NewString()
	for {
		if _, exists := r.sessions[id]; !exists {
			break
		}
		id = uuid.NewString()
	}

	now := r.nowTime()
	r.sessions[id] = &Session{
		ID:        id,
		State:     state,
		CreatedAt: now,
		ExpiresAt: now.Add(r.initialValidity),
	}
	r.byState[state] = id

	return id, nil
}

// GetByState resolves a session by its state token, evicting it first
// if it has expired.
func (r *InMemoryRepo) GetByState(state string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byState[state]
	if !ok {
		return nil, false
	}
	return r.liveSessionLocked(id)
}

// ConsumeByState resolves a session by its state token and removes the
// state binding in the same critical section.
func (r *InMemoryRepo) ConsumeByState(state string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byState[state]
	if !ok {
		return nil, false
	}

	session, ok := r.liveSessionLocked(id)
	if !ok {
		return nil, false
	}

	delete(r.byState, state)
	r.sessions[id].State = ""
	session.State = ""

	return session, true
}

// GetByID resolves a session by its id, evicting it first if it has
// expired.
func (r *InMemoryRepo) GetByID(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return nil, false
	}
	return r.liveSessionLocked(id)
}

// Update merges the non-nil fields of update into the session and
// resets its expiry to now + extendedValidity. It reports false if the
// session does not exist; it never creates one. The merge is idempotent:
// repeating it with the same values only refreshes the expiry.
func (r *InMemoryRepo) Update(id string, update Update) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	if !ok {
		return false
	}

	if update.AccessToken != nil {
		session.AccessToken = *update.AccessToken
	}
	if update.RefreshToken != nil {
		session.RefreshToken = *update.RefreshToken
	}
	if update.Profile != nil {
		session.Profile = update.Profile
	}
	session.ExpiresAt = r.nowTime().Add(r.extendedValidity)

	return true
}

// Delete removes the session, reporting whether it existed.
func (r *InMemoryRepo) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	if !ok {
		return false
	}
	r.evictLocked(session)
	return true
}

// SweepExpired removes every entry whose expiry has passed.
func (r *InMemoryRepo) SweepExpired() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.nowTime()
	count := 0
	for _, session := range r.sessions {
		if !now.Before(session.ExpiresAt) {
			r.evictLocked(session)
			count++
		}
	}
	return count
}

// liveSessionLocked returns a copy of the session with the given id, or
// evicts it and reports absent if its expiry has passed. Callers must
// hold the lock.
func (r *InMemoryRepo) liveSessionLocked(id string) (*Session, bool) {
	session, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	if !r.nowTime().Before(session.ExpiresAt) {
		r.evictLocked(session)
		return nil, false
	}

	// Copy so callers cannot mutate stored state outside the lock.
	copied := *session
	return &copied, true
}

func (r *InMemoryRepo) evictLocked(session *Session) {
	delete(r.sessions, session.ID)
	if session.State != "" {
		delete(r.byState, session.State)
	}
}
