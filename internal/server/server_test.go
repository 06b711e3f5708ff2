package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/authdemo/apiserver/config"
	"github.com/authdemo/apiserver/internal/auth"
	"github.com/authdemo/apiserver/internal/logging"
	"github.com/authdemo/apiserver/internal/services"
	"github.com/authdemo/apiserver/internal/store"
)

func testConfig() config.Config {
	return config.Config{
		Env:        "test",
		ServerPort: 0,
		Auth: config.AuthConfig{
			JWTSecret:  "test-secret",
			TokenTTL:   time.Hour,
			BcryptCost: bcrypt.MinCost,
		},
		HTTP: config.HTTPConfig{
			CORSAllowedOrigins: "*",
			RequestTimeout:     5 * time.Second,
			MaxBodyBytes:       1 << 20,
		},
	}
}

func newTestServer(t *testing.T, cfg config.Config) *httptest.Server {
	t.Helper()
	svc := services.NewAuthService(
		store.NewUserRepository(),
		auth.NewPasswordHasher(cfg.Auth.BcryptCost),
		auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
	)
	ts := httptest.NewServer(NewRouter(cfg, svc, logging.Discard()))
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestServer_SignUpSignInProfile(t *testing.T) {
	ts := newTestServer(t, testConfig())

	resp := postJSON(t, ts.URL+"/api/auth/signup", `{"name":"Ann","email":"ann@x.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var signup struct {
		Success bool `json:"success"`
		Data    struct {
			User struct {
				ID int `json:"id"`
			} `json:"user"`
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&signup))
	require.True(t, signup.Success)
	require.NotEmpty(t, signup.Data.Token)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/profile", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+signup.Data.Token)
	profile, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer profile.Body.Close()
	assert.Equal(t, http.StatusOK, profile.StatusCode)
	assert.NotEmpty(t, profile.Header.Get("X-Content-Type-Options"))
}

func TestServer_SecurityHeaders(t *testing.T) {
	ts := newTestServer(t, testConfig())

	resp, err := http.Get(ts.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
}

func TestServer_CORS(t *testing.T) {
	tests := []struct {
		name       string
		origins    string
		origin     string
		method     string
		wantStatus int
		wantHeader string
	}{
		{name: "wildcard allows any origin", origins: "*", origin: "https://app.example", method: http.MethodGet, wantStatus: http.StatusOK, wantHeader: "*"},
		{name: "wildcard preflight", origins: "*", origin: "https://app.example", method: http.MethodOptions, wantStatus: http.StatusNoContent, wantHeader: "*"},
		{name: "listed origin echoed", origins: "https://app.example", origin: "https://app.example", method: http.MethodGet, wantStatus: http.StatusOK, wantHeader: "https://app.example"},
		{name: "unlisted origin preflight rejected", origins: "https://app.example", origin: "https://evil.example", method: http.MethodOptions, wantStatus: http.StatusForbidden},
		{name: "unlisted origin request passes without header", origins: "https://app.example", origin: "https://evil.example", method: http.MethodGet, wantStatus: http.StatusOK},
		{name: "no origin header", origins: "https://app.example", method: http.MethodGet, wantStatus: http.StatusOK},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.HTTP.CORSAllowedOrigins = tc.origins
			ts := newTestServer(t, cfg)

			req, err := http.NewRequest(tc.method, ts.URL+"/api/health", nil)
			require.NoError(t, err)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			if tc.method == http.MethodOptions {
				req.Header.Set("Access-Control-Request-Method", http.MethodGet)
			}
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.wantStatus, resp.StatusCode)
			assert.Equal(t, tc.wantHeader, resp.Header.Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestServer_StaticDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<form id=\"signin\"></form>"), 0o644))

	cfg := testConfig()
	cfg.StaticDir = dir
	ts := newTestServer(t, cfg)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// API routes still take precedence over the file server.
	health, err := http.Get(ts.URL + "/api/health")
	require.NoError(t, err)
	defer health.Body.Close()
	assert.Equal(t, http.StatusOK, health.StatusCode)
}

func TestServer_NoStaticDir(t *testing.T) {
	ts := newTestServer(t, testConfig())

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestNew_RequiresSecret(t *testing.T) {
	cfg := testConfig()
	cfg.Auth.JWTSecret = ""

	_, err := New(cfg, logging.Discard())
	assert.Error(t, err)
}

func TestServer_RunStopsOnContextCancel(t *testing.T) {
	cfg := testConfig()
	cfg.ServerPort = 0
	srv, err := New(cfg, logging.Discard())
	require.NoError(t, err)
	srv.httpServer.Addr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
