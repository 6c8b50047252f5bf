package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newLimitedHandler(rps float64, burst int) http.Handler {
	return RateLimit(rps, burst)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func hitFrom(h http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRateLimitRejectsBurstOverflow(t *testing.T) {
	h := newLimitedHandler(1, 2)

	for i := 0; i < 2; i++ {
		if rec := hitFrom(h, "192.0.2.1:1000"); rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, rec.Code)
		}
	}

	rec := hitFrom(h, "192.0.2.1:1000")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding 429 body: %v", err)
	}
	if body.Success || body.Message == "" {
		t.Errorf("429 body = %+v, want success=false with a message", body)
	}
}

func TestRateLimitIsPerIP(t *testing.T) {
	h := newLimitedHandler(1, 1)

	if rec := hitFrom(h, "192.0.2.1:1000"); rec.Code != http.StatusOK {
		t.Fatalf("first IP: status = %d, want 200", rec.Code)
	}
	if rec := hitFrom(h, "192.0.2.1:2000"); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("same IP, new port: status = %d, want 429", rec.Code)
	}
	if rec := hitFrom(h, "192.0.2.2:1000"); rec.Code != http.StatusOK {
		t.Fatalf("different IP: status = %d, want 200", rec.Code)
	}
}
