package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config interface {
	EnvConfig
	CorsConfig
	VippsConfig
	SessionConfig
	CredentialConfig
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type mainConfig struct {
	EnvVars
	Cors
	Vipps
	Sessions
	Credentials
}

// New reads the process configuration from the environment once.
// Missing required values are reported up front rather than at first use.
func New() (Config, error) {
	var c mainConfig
	if err := env.Parse(&c); err != nil {
		return nil, fmt.Errorf("config.New: %w", err)
	}
	if err := c.Vipps.validate(); err != nil {
		return nil, err
	}
	if err := c.Credentials.validate(); err != nil {
		return nil, err
	}
	return c, nil
}
