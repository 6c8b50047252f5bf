package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/repfit/repfit-go/internal/token"
)

const (
	testAccessSecret  = "test-access-secret"
	testRefreshSecret = "test-refresh-secret"
)

func newAuthedHandler(t *testing.T) http.Handler {
	t.Helper()
	verifier := token.NewVerifier(testAccessSecret)
	return Auth(verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserIDFromContext(r.Context())
		if !ok {
			t.Error("user ID missing from context in authed handler")
		}
		if userID != 42 {
			t.Errorf("user ID = %d, want 42", userID)
		}
		w.WriteHeader(http.StatusOK)
	}))
}

func doRequest(t *testing.T, h http.Handler, authHeader string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code == http.StatusOK {
		return rec.Code, ""
	}
	var body struct {
		Success bool   `json:"success"`
		Code    string `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	if body.Success {
		t.Error("error body should have success=false")
	}
	return rec.Code, body.Code
}

func TestAuthValidToken(t *testing.T) {
	issuer := token.NewIssuer(testAccessSecret, testRefreshSecret, 15*time.Minute, time.Hour)
	pair, err := issuer.Issue(42)
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}

	status, _ := doRequest(t, newAuthedHandler(t), "Bearer "+pair.AccessToken)
	if status != http.StatusOK {
		t.Errorf("status = %d, want 200", status)
	}
}

func TestAuthMissingHeader(t *testing.T) {
	status, code := doRequest(t, newAuthedHandler(t), "")
	if status != http.StatusUnauthorized || code != CodeTokenMissing {
		t.Errorf("got (%d, %s), want (401, %s)", status, code, CodeTokenMissing)
	}
}

func TestAuthMalformedHeader(t *testing.T) {
	status, code := doRequest(t, newAuthedHandler(t), "Token abc")
	if status != http.StatusUnauthorized || code != CodeTokenMissing {
		t.Errorf("got (%d, %s), want (401, %s)", status, code, CodeTokenMissing)
	}
}

func TestAuthExpiredToken(t *testing.T) {
	issuer := token.NewIssuer(testAccessSecret, testRefreshSecret, -time.Minute, time.Hour)
	pair, err := issuer.Issue(42)
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}

	status, code := doRequest(t, newAuthedHandler(t), "Bearer "+pair.AccessToken)
	if status != http.StatusUnauthorized || code != CodeTokenExpired {
		t.Errorf("got (%d, %s), want (401, %s)", status, code, CodeTokenExpired)
	}
}

func TestAuthInvalidToken(t *testing.T) {
	status, code := doRequest(t, newAuthedHandler(t), "Bearer not-a-jwt")
	if status != http.StatusUnauthorized || code != CodeTokenInvalid {
		t.Errorf("got (%d, %s), want (401, %s)", status, code, CodeTokenInvalid)
	}
}

func TestAuthRefreshTokenRejected(t *testing.T) {
	// A refresh token presented as an access token is invalid, not expired;
	// it must not look refreshable.
	issuer := token.NewIssuer(testAccessSecret, testRefreshSecret, 15*time.Minute, time.Hour)
	pair, err := issuer.Issue(42)
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}

	status, code := doRequest(t, newAuthedHandler(t), "Bearer "+pair.RefreshToken)
	if status != http.StatusUnauthorized || code != CodeTokenInvalid {
		t.Errorf("got (%d, %s), want (401, %s)", status, code, CodeTokenInvalid)
	}
}
