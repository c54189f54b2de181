package config

import (
	"time"

	"github.com/pkg/errors"
)

type CredentialConfig interface {
	GetSigningSecret() []byte
	GetCredentialValidity() time.Duration
}

type Credentials struct {
	SigningSecret      string        `env:"JWT_SECRET"`
	CredentialValidity time.Duration `env:"CREDENTIAL_VALIDITY" envDefault:"168h"`
}

var _ CredentialConfig = Credentials{}

func (c Credentials) validate() error {
	if c.SigningSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	return nil
}

func (c Credentials) GetSigningSecret() []byte {
	return []byte(c.SigningSecret)
}

func (c Credentials) GetCredentialValidity() time.Duration {
	return c.CredentialValidity
}
