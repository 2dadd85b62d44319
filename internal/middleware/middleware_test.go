package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/vaultpass/passmate/internal/crypto"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestRateLimit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := NewRateLimiter(ctx, 1, 2).Middleware(okHandler)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", nil)
		req.RemoteAddr = "203.0.113.7:5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Errorf("first requests = %v, want 200 within burst", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("third request = %d, want %d", codes[2], http.StatusTooManyRequests)
	}

	// A different client has its own budget.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", nil)
	req.RemoteAddr = "198.51.100.1:4444"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("other client = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestTokenAuth(t *testing.T) {
	secret := "test-secret"
	valid, err := crypto.GenerateToken("ci-runner", secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}
	otherSecret, err := crypto.GenerateToken("ci-runner", "other-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	var gotSubject string
	h := TokenAuth(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSubject, _ = SubjectFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		header     string
		value      string
		wantStatus int
	}{
		{name: "missing header", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Authorization", value: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "empty bearer", header: "Authorization", value: "Bearer ", wantStatus: http.StatusUnauthorized},
		{name: "garbage token", header: "Authorization", value: "Bearer nope", wantStatus: http.StatusUnauthorized},
		{name: "wrong secret", header: "Authorization", value: "Bearer " + otherSecret, wantStatus: http.StatusUnauthorized},
		{name: "valid bearer", header: "Authorization", value: "Bearer " + valid, wantStatus: http.StatusOK},
		{name: "lowercase scheme", header: "Authorization", value: "bearer " + valid, wantStatus: http.StatusOK},
		{name: "api token header", header: APITokenHeader, value: valid, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotSubject = ""
			req := httptest.NewRequest(http.MethodGet, "/api/v1/classes", nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusUnauthorized {
				if got := rec.Header().Get("WWW-Authenticate"); got == "" {
					t.Error("expected WWW-Authenticate header on 401")
				}
				return
			}
			if gotSubject != "ci-runner" {
				t.Errorf("SubjectFromContext() = %q, want %q", gotSubject, "ci-runner")
			}
		})
	}
}

func TestSubjectFromContextWithoutAuth(t *testing.T) {
	if sub, ok := SubjectFromContext(context.Background()); ok || sub != "" {
		t.Errorf("SubjectFromContext() = %q, %v, want empty and false", sub, ok)
	}
}

func TestLoggerKeepsStatus(t *testing.T) {
	h := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusTeapot)
	}
}
