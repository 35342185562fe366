// Package token signs and verifies the compact session tokens used by the
// auth endpoints. Access and refresh tokens share one HS256 secret and
// differ only in TTL and a kind claim.
package token

import (
	"errors"
	"time"

	gojose "github.com/go-jose/go-jose/v4"
	gojwt "github.com/go-jose/go-jose/v4/jwt"
	"github.com/google/uuid"
)

// Kind distinguishes the two halves of a token pair.
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

var (
	// ErrInvalid covers malformed input, bad signatures, and expiry. The
	// caller must not leak which of those it was.
	ErrInvalid = errors.New("token invalid")

	// ErrNotConfigured is returned when the signing secret is absent. This
	// is a deployment fault and maps to an internal error, never to an
	// unauthorized response.
	ErrNotConfigured = errors.New("token secret not configured")
)

// Claims is the verified content of a session token.
type Claims struct {
	UserID string
	Kind   Kind
}

type customClaims struct {
	Kind Kind `json:"kind"`
}

// Pair bundles a freshly issued access and refresh token.
type Pair struct {
	AccessToken  string
	RefreshToken string
}

// Codec issues and verifies session tokens with a shared secret. The secret
// is injected rather than read from ambient process state so it can be
// rotated and faked in tests.
type Codec struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewCodec builds a codec. An empty secret is allowed here; every issue and
// verify call will then fail with ErrNotConfigured.
func NewCodec(secret string, accessTTL, refreshTTL time.Duration) *Codec {
	if accessTTL <= 0 {
		accessTTL = time.Hour
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &Codec{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// IssueAccess produces a signed access token for the user.
func (c *Codec) IssueAccess(userID string) (string, error) {
	return c.issue(userID, KindAccess, c.accessTTL)
}

// IssueRefresh produces a signed refresh token for the user.
func (c *Codec) IssueRefresh(userID string) (string, error) {
	return c.issue(userID, KindRefresh, c.refreshTTL)
}

// IssuePair issues a fresh access/refresh pair. Each token carries its own
// random nonce, so two pairs issued in the same instant never collide.
func (c *Codec) IssuePair(userID string) (Pair, error) {
	access, err := c.IssueAccess(userID)
	if err != nil {
		return Pair{}, err
	}
	refresh, err := c.IssueRefresh(userID)
	if err != nil {
		return Pair{}, err
	}
	return Pair{AccessToken: access, RefreshToken: refresh}, nil
}

func (c *Codec) issue(userID string, kind Kind, ttl time.Duration) (string, error) {
	if len(c.secret) == 0 {
		return "", ErrNotConfigured
	}

	signer, err := gojose.NewSigner(
		gojose.SigningKey{Algorithm: gojose.HS256, Key: c.secret},
		(&gojose.SignerOptions{}).WithType("JWT"),
	)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	std := gojwt.Claims{
		Subject:  userID,
		ID:       uuid.NewString(),
		IssuedAt: gojwt.NewNumericDate(now),
		Expiry:   gojwt.NewNumericDate(now.Add(ttl)),
	}

	raw, err := gojwt.Signed(signer).Claims(std).Claims(customClaims{Kind: kind}).Serialize()
	if err != nil {
		return "", err
	}
	return raw, nil
}

// Verify checks signature and expiry and returns the token's claims. All
// rejection causes collapse into ErrInvalid.
func (c *Codec) Verify(raw string) (Claims, error) {
	if len(c.secret) == 0 {
		return Claims{}, ErrNotConfigured
	}

	parsed, err := gojwt.ParseSigned(raw, []gojose.SignatureAlgorithm{gojose.HS256})
	if err != nil {
		return Claims{}, ErrInvalid
	}

	var (
		std    gojwt.Claims
		custom customClaims
	)
	if err := parsed.Claims(c.secret, &std, &custom); err != nil {
		return Claims{}, ErrInvalid
	}
	if err := std.Validate(gojwt.Expected{Time: time.Now().UTC()}); err != nil {
		return Claims{}, ErrInvalid
	}
	if std.Subject == "" {
		return Claims{}, ErrInvalid
	}

	return Claims{UserID: std.Subject, Kind: custom.Kind}, nil
}
