package token

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	testAccessSecret  = "test-access-secret"
	testRefreshSecret = "test-refresh-secret"
)

func newTestIssuer() *Issuer {
	return NewIssuer(testAccessSecret, testRefreshSecret, 15*time.Minute, 7*24*time.Hour)
}

func TestIssuePair(t *testing.T) {
	pair, err := newTestIssuer().Issue(42)
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("Issue() returned empty token")
	}
	if pair.AccessToken == pair.RefreshToken {
		t.Error("access and refresh tokens should differ")
	}
}

func TestVerifyAccessToken(t *testing.T) {
	pair, err := newTestIssuer().Issue(42)
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}

	claims, err := NewVerifier(testAccessSecret).Verify(pair.AccessToken)
	if err != nil {
		t.Fatalf("Verify() unexpected error: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("Verify() UserID = %d, want 42", claims.UserID)
	}
	if claims.ID == "" {
		t.Error("Verify() claims should carry a jti")
	}
}

func TestVerifyRejectsCrossSecret(t *testing.T) {
	// An access token must never verify against the refresh secret, and
	// vice versa.
	pair, err := newTestIssuer().Issue(42)
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}

	if _, err := NewVerifier(testRefreshSecret).Verify(pair.AccessToken); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("access token against refresh secret: got %v, want ErrTokenInvalid", err)
	}
	if _, err := NewVerifier(testAccessSecret).Verify(pair.RefreshToken); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("refresh token against access secret: got %v, want ErrTokenInvalid", err)
	}
}

func TestVerifyMissing(t *testing.T) {
	_, err := NewVerifier(testAccessSecret).Verify("")
	if !errors.Is(err, ErrTokenMissing) {
		t.Errorf("Verify(\"\") = %v, want ErrTokenMissing", err)
	}
}

func TestVerifyMalformed(t *testing.T) {
	_, err := NewVerifier(testAccessSecret).Verify("not-a-jwt")
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("Verify(malformed) = %v, want ErrTokenInvalid", err)
	}
}

func TestVerifyExpired(t *testing.T) {
	issuer := NewIssuer(testAccessSecret, testRefreshSecret, -time.Minute, 7*24*time.Hour)
	pair, err := issuer.Issue(42)
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}

	_, err = NewVerifier(testAccessSecret).Verify(pair.AccessToken)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("Verify(expired) = %v, want ErrTokenExpired", err)
	}
}

func TestVerifyExpiredForgeryIsInvalid(t *testing.T) {
	// An expired token signed with the wrong secret must report invalid,
	// not expired, so it can never trigger a refresh.
	issuer := NewIssuer("attacker-secret", testRefreshSecret, -time.Minute, time.Hour)
	pair, err := issuer.Issue(42)
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}

	_, err = NewVerifier(testAccessSecret).Verify(pair.AccessToken)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("Verify(expired forgery) = %v, want ErrTokenInvalid", err)
	}
}

func TestVerifyWrongSigningMethod(t *testing.T) {
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "repfit",
			Audience:  jwt.ClaimStrings{"repfit-api"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: 42,
	})
	tokenString, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("SignedString() unexpected error: %v", err)
	}

	_, err = NewVerifier(testAccessSecret).Verify(tokenString)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("Verify(alg=none) = %v, want ErrTokenInvalid", err)
	}
}

func TestVerifyWrongIssuer(t *testing.T) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			Audience:  jwt.ClaimStrings{"repfit-api"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: 42,
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testAccessSecret))
	if err != nil {
		t.Fatalf("SignedString() unexpected error: %v", err)
	}

	_, err = NewVerifier(testAccessSecret).Verify(tokenString)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("Verify(wrong issuer) = %v, want ErrTokenInvalid", err)
	}
}

func TestIssueUniqueJTI(t *testing.T) {
	issuer := newTestIssuer()
	p1, err := issuer.Issue(42)
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}
	p2, err := issuer.Issue(42)
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}

	v := NewVerifier(testAccessSecret)
	c1, err := v.Verify(p1.AccessToken)
	if err != nil {
		t.Fatalf("Verify() unexpected error: %v", err)
	}
	c2, err := v.Verify(p2.AccessToken)
	if err != nil {
		t.Fatalf("Verify() unexpected error: %v", err)
	}
	if c1.ID == c2.ID {
		t.Error("two issued tokens share a jti")
	}
}
