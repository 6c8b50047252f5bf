// Package token issues and verifies the JWT access/refresh token pairs used
// for authentication. Access and refresh tokens are signed with distinct
// secrets so a leaked access token cannot be exchanged for new pairs.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	issuer   = "repfit"
	audience = "repfit-api"
)

var (
	// ErrTokenMissing is returned when no token was presented at all.
	ErrTokenMissing = errors.New("token missing")
	// ErrTokenExpired is returned for a well-formed, correctly signed token
	// whose expiry has passed. Only this error should trigger a client refresh.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid is returned for malformed tokens, bad signatures, wrong
	// signing methods, and tokens signed with the wrong secret.
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims are the JWT claims carried by both access and refresh tokens.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"user_id"`
}

// Pair is a freshly issued access/refresh token pair.
type Pair struct {
	AccessToken  string
	RefreshToken string
}

// Issuer mints signed token pairs. It holds no mutable state; issuing is a
// pure function of the user ID, the clock, and the secrets.
type Issuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewIssuer creates an Issuer. The two secrets must differ.
func NewIssuer(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *Issuer {
	return &Issuer{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// Issue creates a new access/refresh pair bound to userID.
func (i *Issuer) Issue(userID int64) (Pair, error) {
	access, err := sign(userID, i.accessSecret, i.accessTTL)
	if err != nil {
		return Pair{}, err
	}
	refresh, err := sign(userID, i.refreshSecret, i.refreshTTL)
	if err != nil {
		return Pair{}, err
	}
	return Pair{AccessToken: access, RefreshToken: refresh}, nil
}

func sign(userID int64, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Audience:  jwt.ClaimStrings{audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// Verifier validates presented tokens against a single secret. Separate
// verifiers are constructed for the access and refresh secrets.
type Verifier struct {
	secret []byte
}

// NewVerifier creates a Verifier for the given secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify parses and validates a token string and returns its claims.
// The error distinguishes the three rejection kinds: ErrTokenMissing for an
// empty string, ErrTokenExpired for a correctly signed but expired token, and
// ErrTokenInvalid for everything else.
func (v *Verifier) Verify(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrTokenMissing
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return v.secret, nil
	}, jwt.WithIssuer(issuer), jwt.WithAudience(audience))
	if err != nil {
		// An expired token only counts as expired if the signature checked
		// out; jwt.ParseWithClaims joins validation errors, so an expired
		// forgery still reports ErrTokenSignatureInvalid alongside.
		if errors.Is(err, jwt.ErrTokenExpired) && !errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	if !parsed.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
