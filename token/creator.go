package token

import (
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"vippsbroker/internal/config"
	"vippsbroker/vipps"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Credential is the self-contained bearer token handed to the client
// after a completed login. There is no server-side record of it;
// validity is determined entirely by the signature and embedded expiry.
// RefreshToken is an opaque identifier the client may hold on to; the
// broker does not track or redeem it.
type Credential struct {
	Token        string         `json:"token"`
	RefreshToken string         `json:"refreshToken"`
	User         *vipps.Profile `json:"user"`
	ExpiresAt    time.Time      `json:"expiresAt"`
}

// Creator issues HMAC-signed JWT credentials from Vipps profiles.
type Creator struct {
	secret   []byte
	validity time.Duration
}

// NewCreator creates a new credential creator
func NewCreator(cfg config.CredentialConfig) *Creator {
	return &Creator{
		secret:   cfg.GetSigningSecret(),
		validity: cfg.GetCredentialValidity(),
	}
}

// Issue builds and signs a credential embedding the subject id and a
// snapshot of the profile at redemption time.
func (c *Creator) Issue(profile *vipps.Profile) (*Credential, error) {
	if profile == nil || profile.Sub == "" {
		return nil, errors.New("[Creator Issue] profile with sub is required")
	}

	now := NowTimeFunc()
	expiresAt := now.Add(c.validity)

	claims := jwtlib.MapClaims{
		"sub":  profile.Sub,
		"user": profile,
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
		"jti":  uuid.New().String(), // Unique token ID
	}

	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return nil, errors.Wrap(err, "[Creator Issue] signing credential")
	}

	return &Credential{
		Token:        signed,
		RefreshToken: uuid.NewString(),
		User:         profile,
		ExpiresAt:    expiresAt,
	}, nil
}

// Verify parses a previously issued credential, checking signature and
// expiry, and returns its claims.
func (c *Creator) Verify(tokenString string) (jwtlib.MapClaims, error) {
	parsed, err := jwtlib.Parse(tokenString,
		func(*jwtlib.Token) (any, error) { return c.secret, nil },
		jwtlib.WithValidMethods([]string{"HS256"}),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithTimeFunc(func() time.Time { return NowTimeFunc() }),
	)
	if err != nil {
		return nil, errors.Wrap(err, "[Creator Verify] parsing credential")
	}

	claims, ok := parsed.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, errors.New("[Creator Verify] unexpected claims type")
	}
	return claims, nil
}
