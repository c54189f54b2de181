package vipps

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"

	"vippsbroker/internal/config"
)

const (
	authPath     = "/access-management-1.0/access/oauth2/auth"
	tokenPath    = "/access-management-1.0/access/oauth2/token"
	userInfoPath = "/vipps-userinfo-api/userinfo"

	systemName          = "vipps-login-broker"
	systemVersion       = "1.0.0"
	systemPluginName    = "go-backend"
	systemPluginVersion = "1.0.0"

	// Bounds a single provider call so a stuck exchange cannot hold a
	// login flow open indefinitely.
	requestTimeout = 15 * time.Second

	maxResponseBytes = 1 << 20
)

// Scopes requested for Vipps Login. The profile fields the broker keeps
// map one-to-one onto these.
var loginScopes = []string{"openid", "name", "phoneNumber", "email", "address", "birthDate"}

// Client talks to the Vipps Login API. Calls are never retried: a
// provider-side failure is surfaced once and the client restarts the
// flow from login.
type Client struct {
	oauth       *oauth2.Config
	httpClient  *http.Client
	userInfoURL string
}

func NewClient(cfg config.VippsConfig) *Client {
	base := strings.TrimRight(cfg.GetVippsAPIURL(), "/")

	return &Client{
		oauth: &oauth2.Config{
			ClientID:     cfg.GetVippsClientID(),
			ClientSecret: cfg.GetVippsClientSecret(),
			RedirectURL:  cfg.GetVippsRedirectURI(),
			Scopes:       loginScopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  base + authPath,
				TokenURL: base + tokenPath,
				// Vipps requires client credentials as a Basic auth header.
				AuthStyle: oauth2.AuthStyleInHeader,
			},
		},
		httpClient: &http.Client{
			Timeout: requestTimeout,
			Transport: &headerTransport{
				base:            http.DefaultTransport,
				subscriptionKey: cfg.GetVippsSubscriptionKey(),
			},
		},
		userInfoURL: base + userInfoPath,
	}
}

// AuthorizationURL builds the consent-page redirect for the given state.
// No network call is made; all parameters are URL-encoded.
func (c *Client) AuthorizationURL(state string) string {
	return c.oauth.AuthCodeURL(state)
}

// ExchangeCode swaps an authorization code for Vipps tokens.
func (c *Client) ExchangeCode(ctx context.Context, code string) (Tokens, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)

	tok, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return Tokens{}, &ExchangeError{
				ErrorCode:        retrieveErr.ErrorCode,
				ErrorDescription: retrieveErr.ErrorDescription,
				Err:              err,
			}
		}
		return Tokens{}, &ExchangeError{Err: err}
	}

	tokens := Tokens{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
	}
	if idToken, ok := tok.Extra("id_token").(string); ok {
		tokens.IDToken = idToken
	}
	return tokens, nil
}

// FetchProfile retrieves the authenticated user's profile from the
// userinfo endpoint using the access token from ExchangeCode.
func (c *Client) FetchProfile(ctx context.Context, accessToken string) (*Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.userInfoURL, nil)
	if err != nil {
		return nil, &ProfileError{Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ProfileError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &ProfileError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			ErrorCode        string `json:"error"`
			ErrorDescription string `json:"error_description"`
		}
		_ = json.Unmarshal(body, &apiErr)
		return nil, &ProfileError{
			ErrorCode:        apiErr.ErrorCode,
			ErrorDescription: apiErr.ErrorDescription,
			Err:              fmt.Errorf("userinfo returned status %d", resp.StatusCode),
		}
	}

	var profile Profile
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, &ProfileError{Err: errors.Wrap(err, "decoding userinfo response")}
	}
	if profile.Sub == "" {
		return nil, &ProfileError{Err: errors.New("userinfo response missing sub")}
	}
	return &profile, nil
}

// headerTransport adds the subscription key and Vipps system headers
// required on every Vipps API request.
type headerTransport struct {
	base            http.RoundTripper
	subscriptionKey string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Ocp-Apim-Subscription-Key", t.subscriptionKey)
	req.Header.Set("Vipps-System-Name", systemName)
	req.Header.Set("Vipps-System-Version", systemVersion)
	req.Header.Set("Vipps-System-Plugin-Name", systemPluginName)
	req.Header.Set("Vipps-System-Plugin-Version", systemPluginVersion)
	return t.base.RoundTrip(req)
}
