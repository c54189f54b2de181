package config

import "github.com/pkg/errors"

type VippsConfig interface {
	GetVippsAPIURL() string
	GetVippsClientID() string
	GetVippsClientSecret() string
	GetVippsRedirectURI() string
	GetVippsSubscriptionKey() string
}

// Vipps holds the credentials for the Vipps Login API. The subscription
// key is the Ocp-Apim-Subscription-Key issued with the merchant account.
type Vipps struct {
	APIURL          string `env:"VIPPS_API_URL" envDefault:"https://apitest.vipps.no"`
	ClientID        string `env:"VIPPS_CLIENT_ID"`
	ClientSecret    string `env:"VIPPS_CLIENT_SECRET"`
	RedirectURI     string `env:"VIPPS_REDIRECT_URI"`
	SubscriptionKey string `env:"VIPPS_OCP_APIM_SUBSCRIPTION_KEY"`
}

var _ VippsConfig = Vipps{}

func (v Vipps) validate() error {
	if v.ClientID == "" {
		return errors.New("VIPPS_CLIENT_ID is required")
	}
	if v.ClientSecret == "" {
		return errors.New("VIPPS_CLIENT_SECRET is required")
	}
	if v.RedirectURI == "" {
		return errors.New("VIPPS_REDIRECT_URI is required")
	}
	if v.SubscriptionKey == "" {
		return errors.New("VIPPS_OCP_APIM_SUBSCRIPTION_KEY is required")
	}
	return nil
}

func (v Vipps) GetVippsAPIURL() string {
	return v.APIURL
}

func (v Vipps) GetVippsClientID() string {
	return v.ClientID
}

func (v Vipps) GetVippsClientSecret() string {
	return v.ClientSecret
}

func (v Vipps) GetVippsRedirectURI() string {
	return v.RedirectURI
}

func (v Vipps) GetVippsSubscriptionKey() string {
	return v.SubscriptionKey
}
