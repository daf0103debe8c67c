package middleware

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/httputil"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeVerifier accepts a single known token.
type fakeVerifier struct {
	validToken string
	claims     *models.SupabaseClaims
}

func (v *fakeVerifier) VerifyToken(tokenString string) (*models.SupabaseClaims, error) {
	if tokenString == v.validToken {
		return v.claims, nil
	}
	return nil, domain.ErrUnauthorized
}

func (v *fakeVerifier) Close() error { return nil }

func TestAuthMiddleware(t *testing.T) {
	verifier := &fakeVerifier{
		validToken: "good-token",
		claims: &models.SupabaseClaims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "user-42"},
			Role:             "authenticated",
		},
	}

	var gotUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = httputil.GetUserID(r)
		w.WriteHeader(http.StatusOK)
	})
	wrapped := AuthMiddleware(verifier)(next)

	tests := []struct {
		name       string
		path       string
		authHeader string
		wantStatus int
	}{
		{"valid token", "/api/posts", "Bearer good-token", http.StatusOK},
		{"invalid token", "/api/posts", "Bearer bad-token", http.StatusUnauthorized},
		{"missing header", "/api/posts", "", http.StatusUnauthorized},
		{"wrong scheme", "/api/posts", "Basic dXNlcjpwdw==", http.StatusUnauthorized},
		{"bare bearer", "/api/posts", "Bearer ", http.StatusUnauthorized},
		{"health exempt", "/health", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUserID = ""
			r := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.authHeader != "" {
				r.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			wrapped.ServeHTTP(rec, r)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}

	// Verified requests carry the subject as the user id
	r := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	r.Header.Set("Authorization", "Bearer good-token")
	wrapped.ServeHTTP(httptest.NewRecorder(), r)
	if gotUserID != "user-42" {
		t.Errorf("user id in context = %q, want user-42", gotUserID)
	}
}

func TestRecovery(t *testing.T) {
	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(errors.New("boom"))
	})
	wrapped := Recovery(testLogger())(panicking)

	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/posts", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}
