package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"vippsbroker/session"
	"vippsbroker/token"
	"vippsbroker/vipps"
)

// Gateway is the Vipps Login API surface the flow depends on.
type Gateway interface {
	AuthorizationURL(state string) string
	ExchangeCode(ctx context.Context, code string) (vipps.Tokens, error)
	FetchProfile(ctx context.Context, accessToken string) (*vipps.Profile, error)
}

// Service sequences the broker side of the login flow:
// start-login -> await-callback -> exchange-code -> fetch-profile ->
// populate-session -> issue-credential -> sign-out.
// Provider calls always run outside any store critical section.
type Service struct {
	sessions session.Repo
	gateway  Gateway
	creator  *token.Creator
	newState func() string // state generator (injectable for testing)
}

// ServiceOption defines a function type to modify the Service instance.
type ServiceOption func(*Service)

// WithStateGenerator sets the state token generator (primarily for testing)
func WithStateGenerator(gen func() string) ServiceOption {
	return func(s *Service) {
		s.newState = gen
	}
}

// NewService initializes a new Service with required dependencies.
func NewService(sessions session.Repo, gateway Gateway, creator *token.Creator, options ...ServiceOption) (*Service, error) {
	if sessions == nil {
		return nil, errors.New("[NewService] session repo is required")
	}
	if gateway == nil {
		return nil, errors.New("[NewService] gateway is required")
	}
	if creator == nil {
		return nil, errors.New("[NewService] token creator is required")
	}

	s := &Service{
		sessions: sessions,
		gateway:  gateway,
		creator:  creator,
		newState: uuid.NewString,
	}

	for _, opt := range options {
		opt(s)
	}

	return s, nil
}

// LoginStart is handed to the client to open the consent page and later
// poll for completion.
type LoginStart struct {
	AuthURL   string `json:"authUrl"`
	SessionID string `json:"sessionId"`
}

// StartLogin creates a fresh session and builds the authorization URL.
// Every call creates a new independent session; concurrent logins by
// the same caller are not deduplicated.
func (s *Service) StartLogin() (*LoginStart, error) {
	state := s.newState()

	sessionID, err := s.sessions.Create(state)
	if err != nil {
		return nil, errors.Wrap(err, "[StartLogin] creating session")
	}

	return &LoginStart{
		AuthURL:   s.gateway.AuthorizationURL(state),
		SessionID: sessionID,
	}, nil
}

// CallbackParams are the query parameters Vipps sends to the redirect URI.
type CallbackParams struct {
	Code             string
	State            string
	Error            string
	ErrorDescription string
}

// CallbackResult is the outcome handed back to the boundary layer for
// the deep-link redirect into the app. Provider tokens never leave the
// broker; a successful result carries only the session handle.
type CallbackResult struct {
	Success   bool
	SessionID string
	Error     string
}

// HandleCallback validates the provider callback, exchanges the code,
// fetches the profile, and marks the session completed. Every failure
// branch maps to a caller-visible outcome; nothing is retried. A
// failure after the exchange leaves the session without a profile, and
// the client must restart from StartLogin.
func (s *Service) HandleCallback(ctx context.Context, params CallbackParams) CallbackResult {
	if params.Error != "" {
		msg := params.ErrorDescription
		if msg == "" {
			msg = params.Error
		}
		return CallbackResult{Error: msg}
	}

	if params.Code == "" || params.State == "" {
		return CallbackResult{Error: ErrMissingParameter.Error()}
	}

	// Consuming the state here closes the replay window: a second
	// callback with the same state is indistinguishable from an
	// expired one.
	sess, ok := s.sessions.ConsumeByState(params.State)
	if !ok {
		return CallbackResult{Error: ErrInvalidState.Error()}
	}

	tokens, err := s.gateway.ExchangeCode(ctx, params.Code)
	if err != nil {
		return CallbackResult{Error: providerMessage(err)}
	}

	profile, err := s.gateway.FetchProfile(ctx, tokens.AccessToken)
	if err != nil {
		return CallbackResult{Error: providerMessage(err)}
	}

	if !s.sessions.Update(sess.ID, session.Update{
		AccessToken:  &tokens.AccessToken,
		RefreshToken: &tokens.RefreshToken,
		Profile:      profile,
	}) {
		return CallbackResult{Error: ErrInvalidState.Error()}
	}

	return CallbackResult{Success: true, SessionID: sess.ID}
}

// SessionStatus reports whether a login has completed. A session still
// mid-flow is reported exactly like an absent one, so callers cannot
// probe for in-flight attempts.
type SessionStatus struct {
	Found   bool
	Profile *vipps.Profile
}

// CheckSession resolves a session handle to its profile once the flow
// has completed.
func (s *Service) CheckSession(sessionID string) SessionStatus {
	sess, ok := s.sessions.GetByID(sessionID)
	if !ok || !sess.Completed() {
		return SessionStatus{}
	}
	return SessionStatus{Found: true, Profile: sess.Profile}
}

// RedeemSession converts a completed session into a signed bearer
// credential. The session is left in place; redeeming more than once is
// allowed.
func (s *Service) RedeemSession(sessionID string) (*token.Credential, error) {
	sess, ok := s.sessions.GetByID(sessionID)
	if !ok || !sess.Completed() {
		return nil, ErrSessionNotReady
	}

	credential, err := s.creator.Issue(sess.Profile)
	if err != nil {
		return nil, errors.Wrap(err, "[RedeemSession] issuing credential")
	}
	return credential, nil
}

// SignOut removes the session. The returned flag lets callers tell
// "removed" apart from "nothing to do"; both count as success.
func (s *Service) SignOut(sessionID string) bool {
	return s.sessions.Delete(sessionID)
}

// providerMessage extracts the provider's error description from a
// gateway failure, falling back to the transport error text.
func providerMessage(err error) string {
	var exchangeErr *vipps.ExchangeError
	if errors.As(err, &exchangeErr) {
		return exchangeErr.Message()
	}
	var profileErr *vipps.ProfileError
	if errors.As(err, &profileErr) {
		return profileErr.Message()
	}
	return err.Error()
}
