package transport

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Ramon1710/appschmiede-v2-sub000/internal/config"
)

const authTestSecret = "editor-secret"

func authTestConfig(t *testing.T) config.AuthConfig {
	t.Helper()
	t.Setenv("APPSCHMIEDE_AUTH_SECRET", authTestSecret)
	cfg := config.Defaults().Auth
	cfg.Enabled = true
	return cfg
}

// signToken builds an HS256 token with sensible defaults, overridden by
// the given claims.
func signToken(t *testing.T, secret string, overrides jwt.MapClaims) string {
	t.Helper()
	claims := jwt.MapClaims{
		"iss": "appschmiede",
		"aud": "appschmiede-editor",
		"sub": "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	for k, v := range overrides {
		claims[k] = v
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

// authProbe wires the authenticator in front of a handler that records the
// authenticated subject.
func authProbe(t *testing.T, cfg config.AuthConfig) (http.Handler, *string) {
	t.Helper()
	var subject string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject = UserIDFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	return BearerAuthenticator(cfg)(next), &subject
}

func TestBearerAuthenticator_validToken(t *testing.T) {
	cfg := authTestConfig(t)
	h, subject := authProbe(t, cfg)

	req := httptest.NewRequest("GET", "/api/generate", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, authTestSecret, nil))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	if *subject != "user-1" {
		t.Errorf("subject = %q, want user-1", *subject)
	}
}

func TestBearerAuthenticator_missingHeader(t *testing.T) {
	cfg := authTestConfig(t)
	h, _ := authProbe(t, cfg)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/api/generate", nil))

	if w.Code != 401 {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestBearerAuthenticator_malformedHeader(t *testing.T) {
	cfg := authTestConfig(t)
	h, _ := authProbe(t, cfg)

	req := httptest.NewRequest("GET", "/api/generate", nil)
	req.Header.Set("Authorization", "Basic abc123")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != 401 {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestBearerAuthenticator_rejections(t *testing.T) {
	cfg := authTestConfig(t)
	h, _ := authProbe(t, cfg)

	tests := []struct {
		name  string
		token string
	}{
		{"wrong secret", signToken(t, "other-secret", nil)},
		{"expired", signToken(t, authTestSecret, jwt.MapClaims{"exp": time.Now().Add(-time.Hour).Unix()})},
		{"wrong issuer", signToken(t, authTestSecret, jwt.MapClaims{"iss": "somebody-else"})},
		{"wrong audience", signToken(t, authTestSecret, jwt.MapClaims{"aud": "somebody-else"})},
		{"no expiry", signToken(t, authTestSecret, jwt.MapClaims{"exp": nil})},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/generate", nil)
			req.Header.Set("Authorization", "Bearer "+tc.token)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			if w.Code != 401 {
				t.Errorf("status = %d, want 401", w.Code)
			}
		})
	}
}
