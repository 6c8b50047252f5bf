package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/repfit/repfit-go/internal/token"
)

type contextKey string

const userIDKey contextKey = "userID"

// Error codes carried in 401 bodies. Clients branch on these, never on the
// message text; only CodeTokenExpired should trigger a refresh attempt.
const (
	CodeTokenMissing = "TOKEN_MISSING"
	CodeTokenExpired = "TOKEN_EXPIRED"
	CodeTokenInvalid = "TOKEN_INVALID"
)

// Auth returns middleware that validates the Bearer access token from the
// Authorization header. The three rejection kinds stay distinguishable in the
// response body so the client can decide between refreshing and re-login.
func Auth(verifier *token.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeAuthError(w, CodeTokenMissing, "access token required")
				return
			}

			raw, found := strings.CutPrefix(authHeader, "Bearer ")
			if !found || raw == "" {
				writeAuthError(w, CodeTokenMissing, "access token required")
				return
			}

			claims, err := verifier.Verify(raw)
			if err != nil {
				switch {
				case errors.Is(err, token.ErrTokenExpired):
					writeAuthError(w, CodeTokenExpired, "access token expired")
				case errors.Is(err, token.ErrTokenMissing):
					writeAuthError(w, CodeTokenMissing, "access token required")
				default:
					writeAuthError(w, CodeTokenInvalid, "invalid access token")
				}
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext extracts the authenticated user ID from the request context.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// errEnvelope is the rejection body shared by the auth and rate-limit
// middlewares, matching the handlers' error envelope.
type errEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

func writeEnvelope(w http.ResponseWriter, status int, body errEnvelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeAuthError(w http.ResponseWriter, code, msg string) {
	writeEnvelope(w, http.StatusUnauthorized, errEnvelope{Message: msg, Code: code})
}
