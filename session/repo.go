package session

// Repo stores in-flight and completed login sessions. Implementations
// must be safe for concurrent use, and lookups must treat an entry whose
// expiry has passed as absent, evicting it on detection.
type Repo interface {
	// Create allocates a new session bound to the given state token and
	// returns its id.
	Create(state string) (string, error)

	// GetByState resolves a session by its state token.
	GetByState(state string) (*Session, bool)

	// ConsumeByState resolves a session by its state token and atomically
	// removes the state binding, so a replayed callback with the same
	// state is indistinguishable from an expired one.
	ConsumeByState(state string) (*Session, bool)

	// GetByID resolves a session by its id.
	GetByID(id string) (*Session, bool)

	// Update merges the non-nil fields into the session and extends its
	// expiry. It reports false if the session does not exist and never
	// creates one.
	Update(id string, update Update) bool

	// Delete removes the session, reporting whether it existed.
	Delete(id string) bool

	// SweepExpired removes every expired entry and returns the count.
	// Correctness never depends on it running; it only bounds memory.
	SweepExpired() int
}
