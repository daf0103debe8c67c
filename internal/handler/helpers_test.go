package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/httputil"
)

func TestHandleError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation", fmt.Errorf("%w: title required", domain.ErrValidation), http.StatusBadRequest},
		{"not found", fmt.Errorf("post x: %w", domain.ErrNotFound), http.StatusNotFound},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"forbidden", fmt.Errorf("post x: %w", domain.ErrForbidden), http.StatusForbidden},
		{"already published", fmt.Errorf("post x: %w", domain.ErrAlreadyPublished), http.StatusConflict},
		{"conflict", fmt.Errorf("slug x: %w", domain.ErrConflict), http.StatusConflict},
		{"generation failed", domain.ErrGenerationFailed, http.StatusBadGateway},
		{"unknown", fmt.Errorf("database exploded"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleError(rec, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
				t.Errorf("content type = %q", ct)
			}

			var problem httputil.ProblemDetail
			if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
				t.Fatalf("response is not a problem detail: %v", err)
			}
			if problem.Status != tt.wantStatus {
				t.Errorf("problem status = %d, want %d", problem.Status, tt.wantStatus)
			}
		})
	}
}

func TestHandleError_HidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	handleError(rec, fmt.Errorf("pq: connection refused on 10.0.0.5"))

	var problem httputil.ProblemDetail
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if problem.Detail != "internal server error" {
		t.Errorf("internal detail leaked: %q", problem.Detail)
	}
}

func claimsRequest(claims *models.SupabaseClaims) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/agents", nil)
	if claims == nil {
		return r
	}
	return httputil.WithUser(r, claims)
}

func TestRequireAgentsAdmin(t *testing.T) {
	adminClaims := &models.SupabaseClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "admin-1"},
		Role:             "authenticated",
		AppMetadata: map[string]interface{}{
			"permissions": []interface{}{"agents-admin"},
		},
	}
	plainClaims := &models.SupabaseClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
		Role:             "authenticated",
		AppMetadata:      map[string]interface{}{},
	}

	tests := []struct {
		name       string
		claims     *models.SupabaseClaims
		want       bool
		wantStatus int
	}{
		{"admin allowed", adminClaims, true, http.StatusOK},
		{"plain user forbidden", plainClaims, false, http.StatusForbidden},
		{"no claims unauthorized", nil, false, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			got := requireAgentsAdmin(rec, claimsRequest(tt.claims))
			if got != tt.want {
				t.Errorf("requireAgentsAdmin = %v, want %v", got, tt.want)
			}
			if !tt.want && rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
