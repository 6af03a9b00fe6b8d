package google

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(strings.TrimSpace(string(p)))
	return len(p), nil
}

func testLogger(t *testing.T) *slog.Logger {
	return slog.New(slog.NewTextHandler(testWriter{t}, nil))
}

// overrideEndpoints points the package endpoints at test servers for the
// duration of one test.
func overrideEndpoints(t *testing.T, token, userinfo string) {
	t.Helper()
	origToken, origUserinfo := tokenURL, userinfoURL
	tokenURL, userinfoURL = token, userinfo
	t.Cleanup(func() {
		tokenURL, userinfoURL = origToken, origUserinfo
	})
}

func TestVerifier_VerifyCode_Success(t *testing.T) {
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatal(err)
		}
		if got := r.FormValue("grant_type"); got != "authorization_code" {
			t.Errorf("grant_type: got %q", got)
		}
		if got := r.FormValue("code"); got != "test_code" {
			t.Errorf("code: got %q", got)
		}
		if got := r.FormValue("redirect_uri"); got != "http://localhost:8080/callback" {
			t.Errorf("redirect_uri: got %q", got)
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(tokenResponse{AccessToken: "test_access_token", TokenType: "Bearer", ExpiresIn: 3600}); err != nil {
			t.Fatal(err)
		}
	}))
	defer tokenSrv.Close()

	userinfoSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test_access_token" {
			t.Errorf("Authorization: got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		resp := userinfoResponse{
			ID:            "google_user_123",
			Email:         "user@example.com",
			VerifiedEmail: true,
			Name:          "Test User",
			Picture:       "https://example.com/avatar.jpg",
		}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Fatal(err)
		}
	}))
	defer userinfoSrv.Close()

	overrideEndpoints(t, tokenSrv.URL, userinfoSrv.URL)

	verifier := NewVerifier("test_client_id", "test_client_secret", "http://localhost:8080/callback", testLogger(t))

	identity, err := verifier.VerifyCode(context.Background(), "test_code")
	if err != nil {
		t.Fatalf("VerifyCode() error = %v, want nil", err)
	}

	if identity.Email != "user@example.com" {
		t.Errorf("Email = %q", identity.Email)
	}
	if identity.ProviderID != "google_user_123" {
		t.Errorf("ProviderID = %q", identity.ProviderID)
	}
	if identity.Name == nil || *identity.Name != "Test User" {
		t.Errorf("Name = %v", identity.Name)
	}
	if identity.AvatarURL == nil || *identity.AvatarURL != "https://example.com/avatar.jpg" {
		t.Errorf("AvatarURL = %v", identity.AvatarURL)
	}
}

func TestVerifier_VerifyCode_InvalidCode(t *testing.T) {
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(errorResponse{Error: "invalid_grant", ErrorDescription: "Bad Request"})
	}))
	defer tokenSrv.Close()

	overrideEndpoints(t, tokenSrv.URL, userinfoURL)

	verifier := NewVerifier("id", "secret", "http://localhost/callback", testLogger(t))

	_, err := verifier.VerifyCode(context.Background(), "expired_code")
	if err == nil {
		t.Fatal("expected error for invalid code")
	}
	if !strings.Contains(err.Error(), "invalid or expired code") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestVerifier_VerifyCode_UnverifiedEmail(t *testing.T) {
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(tokenResponse{AccessToken: "tok"})
	}))
	defer tokenSrv.Close()

	userinfoSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(userinfoResponse{ID: "u1", Email: "u@example.com", VerifiedEmail: false})
	}))
	defer userinfoSrv.Close()

	overrideEndpoints(t, tokenSrv.URL, userinfoSrv.URL)

	verifier := NewVerifier("id", "secret", "http://localhost/callback", testLogger(t))

	_, err := verifier.VerifyCode(context.Background(), "code")
	if err == nil || !strings.Contains(err.Error(), "email not verified") {
		t.Fatalf("expected email-not-verified error, got: %v", err)
	}
}

func TestVerifier_VerifyCode_RetriesOn5xx(t *testing.T) {
	var calls int
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(tokenResponse{AccessToken: "tok"})
	}))
	defer tokenSrv.Close()

	userinfoSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(userinfoResponse{ID: "u1", Email: "u@example.com", VerifiedEmail: true})
	}))
	defer userinfoSrv.Close()

	overrideEndpoints(t, tokenSrv.URL, userinfoSrv.URL)

	verifier := NewVerifier("id", "secret", "http://localhost/callback", testLogger(t))

	identity, err := verifier.VerifyCode(context.Background(), "code")
	if err != nil {
		t.Fatalf("VerifyCode after retry: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 token calls, got %d", calls)
	}
	if identity.Email != "u@example.com" {
		t.Errorf("Email = %q", identity.Email)
	}
}

func TestVerifier_AuthURL(t *testing.T) {
	verifier := NewVerifier("client-1", "secret", "http://localhost/callback", testLogger(t))

	raw := verifier.AuthURL("csrf-state")
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse auth url: %v", err)
	}

	q := u.Query()
	if q.Get("client_id") != "client-1" {
		t.Errorf("client_id = %q", q.Get("client_id"))
	}
	if q.Get("redirect_uri") != "http://localhost/callback" {
		t.Errorf("redirect_uri = %q", q.Get("redirect_uri"))
	}
	if q.Get("response_type") != "code" {
		t.Errorf("response_type = %q", q.Get("response_type"))
	}
	if q.Get("state") != "csrf-state" {
		t.Errorf("state = %q", q.Get("state"))
	}
	if !strings.Contains(q.Get("scope"), "email") {
		t.Errorf("scope = %q", q.Get("scope"))
	}
}
