package config

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetAppRedirectScheme() string
}

type EnvVars struct {
	Port              string `env:"PORT" envDefault:"8080"`
	AppName           string `env:"APP_NAME" envDefault:"Vipps Broker"`
	Env               string `env:"ENV" envDefault:"DEV"`
	AppRedirectScheme string `env:"APP_REDIRECT_SCHEME" envDefault:"vippsapp"`
}

var _ EnvConfig = EnvVars{}

func (e EnvVars) GetPort() string {
	port := e.Port
	if port != "" && port[0] != ':' {
		port = ":" + port
	}
	return port
}

func (e EnvVars) GetAppName() string {
	return e.AppName
}

func (e EnvVars) GetEnv() string {
	return e.Env
}

// GetAppRedirectScheme returns the custom URL scheme the mobile app
// registers for deep links (e.g. "vippsapp" -> vippsapp://auth/callback).
func (e EnvVars) GetAppRedirectScheme() string {
	return e.AppRedirectScheme
}
