package config

import "time"

type SessionConfig interface {
	GetInitialSessionValidity() time.Duration
	GetExtendedSessionValidity() time.Duration
	GetSweepInterval() time.Duration
}

// Sessions tunes the login session lifecycle. The initial window covers
// the time a user spends in the Vipps consent UI; the extended window
// applies once the flow has completed.
type Sessions struct {
	InitialValidity  time.Duration `env:"SESSION_INITIAL_VALIDITY" envDefault:"30m"`
	ExtendedValidity time.Duration `env:"SESSION_EXTENDED_VALIDITY" envDefault:"60m"`
	SweepInterval    time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"5m"`
}

var _ SessionConfig = Sessions{}

func (s Sessions) GetInitialSessionValidity() time.Duration {
	return s.InitialValidity
}

func (s Sessions) GetExtendedSessionValidity() time.Duration {
	return s.ExtendedValidity
}

func (s Sessions) GetSweepInterval() time.Duration {
	return s.SweepInterval
}
