package session

import (
	"time"

	"vippsbroker/vipps"
)

// Session tracks one login attempt from start-login until the client
// redeems or abandons it. ID is the opaque handle given to the mobile
// app; State binds the attempt to the eventual Vipps callback.
type Session struct {
	ID           string
	State        string
	AccessToken  string
	RefreshToken string
	Profile      *vipps.Profile
	CreatedAt    time.Time
	ExpiresAt    time.Time
}

// Completed reports whether the callback has populated the session.
func (s *Session) Completed() bool {
	return s.Profile != nil
}

// Update carries the fields merged into a session after a successful
// code exchange. Nil fields are left untouched.
type Update struct {
	AccessToken  *string
	RefreshToken *string
	Profile      *vipps.Profile
}
