package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/homestead/backend/pkg/auth"
	"golang.org/x/oauth2"
)

// --- helpers ---

const testSecret = "test-session-secret-must-be-32bytes"

// sessionCookie はセッションクッキー名
const sessionCookie = "homestead_session"

func newTestAuthHandler(meta auth.MetadataStore) *AuthHandler {
	if meta == nil {
		meta = auth.NewMemoryMetadataStore()
	}
	return NewAuthHandler(auth.NewSessionIssuer(testSecret, time.Hour), auth.NewProvider(meta), AuthConfig{
		GoogleClientID:     "google-client-id",
		GoogleClientSecret: "google-secret",
		GitHubClientID:     "github-client-id",
		GitHubClientSecret: "github-secret",
		BackendURL:         "http://localhost:8080",
		FrontendURL:        "http://localhost:3000",
	})
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// fakeProvider serves an OAuth token endpoint and a userinfo endpoint.
func fakeProvider(t *testing.T, userinfo any) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("GET /userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(userinfo)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func callbackRequest(path, state string, cookies ...*http.Cookie) *http.Request {
	req := httptest.NewRequest("GET", path+"?code=abc&state="+state, nil)
	req.AddCookie(&http.Cookie{Name: oauthStateCookieName, Value: state})
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

// --- Tests ---

func TestAuthHandler_GoogleLoginURL_SetsStateCookie(t *testing.T) {
	h := newTestAuthHandler(nil)
	req := httptest.NewRequest("GET", "/api/auth/google/login", nil)
	rec := httptest.NewRecorder()

	h.GoogleLoginURL(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	stateCookie := findCookie(rec, oauthStateCookieName)
	if stateCookie == nil || stateCookie.Value == "" {
		t.Fatal("expected oauth_state cookie to be set")
	}
	u, err := url.Parse(body["url"])
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	if got := u.Query().Get("state"); got != stateCookie.Value {
		t.Errorf("expected state %q in URL, got %q", stateCookie.Value, got)
	}
	if got := u.Query().Get("redirect_uri"); got != "http://localhost:8080/api/auth/google/callback" {
		t.Errorf("unexpected redirect_uri %q", got)
	}
}

func TestAuthHandler_GitHubLoginURL_RemembersReturnPath(t *testing.T) {
	h := newTestAuthHandler(nil)
	req := httptest.NewRequest("GET", "/api/auth/github/login?redirect_url=%2Fsaved", nil)
	rec := httptest.NewRecorder()

	h.GitHubLoginURL(rec, req)

	c := findCookie(rec, oauthReturnCookieName)
	if c == nil {
		t.Fatal("expected oauth_return cookie")
	}
	if v, _ := url.QueryUnescape(c.Value); v != "/saved" {
		t.Errorf("expected /saved, got %q", v)
	}
}

func TestSafeReturnPath(t *testing.T) {
	tests := map[string]string{
		"/dashboard":          "/dashboard",
		"/properties/1?x=2":   "/properties/1?x=2",
		"https://evil.test/":  "/",
		"//evil.test/path":    "/",
		`/\evil.test`:         "/",
		"":                    "/",
	}
	for in, want := range tests {
		if got := safeReturnPath(in); got != want {
			t.Errorf("safeReturnPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestAuthHandler_GoogleCallback_RejectsStateMismatch(t *testing.T) {
	h := newTestAuthHandler(nil)
	req := httptest.NewRequest("GET", "/api/auth/google/callback?code=abc&state=other", nil)
	req.AddCookie(&http.Cookie{Name: oauthStateCookieName, Value: "expected"})
	rec := httptest.NewRecorder()

	h.GoogleCallback(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); !strings.Contains(loc, "error=invalid_state") {
		t.Errorf("expected invalid_state redirect, got %q", loc)
	}
	if findCookie(rec, sessionCookie) != nil {
		t.Error("no session cookie may be set")
	}
}

func TestAuthHandler_GoogleCallback_RejectsMissingStateCookie(t *testing.T) {
	h := newTestAuthHandler(nil)
	req := httptest.NewRequest("GET", "/api/auth/google/callback?code=abc&state=s", nil)
	rec := httptest.NewRecorder()

	h.GoogleCallback(rec, req)

	if loc := rec.Header().Get("Location"); !strings.Contains(loc, "error=invalid_state") {
		t.Errorf("expected invalid_state redirect, got %q", loc)
	}
}

func TestAuthHandler_GoogleCallback_IssuesSessionWithPlans(t *testing.T) {
	meta := auth.NewMemoryMetadataStore()
	if err := meta.Set(context.Background(), "google:g-123", auth.MetaPlans, "agent"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	srv := fakeProvider(t, map[string]string{"id": "g-123", "email": "ana@example.com", "name": "Ana"})
	h := newTestAuthHandler(meta)
	h.googleConfig.Endpoint = oauth2.Endpoint{AuthURL: srv.URL + "/auth", TokenURL: srv.URL + "/token"}
	h.googleUserInfoURL = srv.URL + "/userinfo"

	req := callbackRequest("/api/auth/google/callback", "st",
		&http.Cookie{Name: oauthReturnCookieName, Value: url.QueryEscape("/properties/p1")})
	rec := httptest.NewRecorder()
	h.GoogleCallback(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "http://localhost:3000/properties/p1" {
		t.Errorf("expected return to the original page, got %q", loc)
	}
	c := findCookie(rec, sessionCookie)
	if c == nil {
		t.Fatal("expected session cookie")
	}
	id, err := h.issuer.Parse(c.Value)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if id.ID != "google:g-123" || id.Email != "ana@example.com" || !id.HasPlan(auth.PlanAgent) {
		t.Errorf("unexpected identity %+v", id)
	}
}

func TestAuthHandler_GitHubCallback_FallsBackToEmailsAPI(t *testing.T) {
	srv := fakeProvider(t, map[string]any{"id": 42, "login": "octo"})
	h := newTestAuthHandler(nil)
	h.githubConfig.Endpoint = oauth2.Endpoint{AuthURL: srv.URL + "/auth", TokenURL: srv.URL + "/token"}
	h.githubUserURL = srv.URL + "/userinfo"

	emails := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"email":"alt@example.com","primary":false},{"email":"octo@example.com","primary":true}]`))
	}))
	defer emails.Close()
	h.githubEmailsURL = emails.URL

	rec := httptest.NewRecorder()
	h.GitHubCallback(rec, callbackRequest("/api/auth/github/callback", "st"))

	c := findCookie(rec, sessionCookie)
	if c == nil {
		t.Fatalf("expected session cookie, redirect was %q", rec.Header().Get("Location"))
	}
	id, err := h.issuer.Parse(c.Value)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if id.ID != "github:42" || id.Email != "octo@example.com" || id.Name != "octo" {
		t.Errorf("unexpected identity %+v", id)
	}
}

func TestAuthHandler_Logout_ClearsSession(t *testing.T) {
	h := newTestAuthHandler(nil)
	rec := httptest.NewRecorder()
	h.Logout(rec, httptest.NewRequest("POST", "/api/auth/logout", nil))

	c := findCookie(rec, sessionCookie)
	if c == nil || c.MaxAge >= 0 {
		t.Errorf("expected expired session cookie, got %+v", c)
	}
}

func TestProvidersHandler_ListsConfiguredProviders(t *testing.T) {
	tests := []struct {
		cfg  ProvidersConfig
		want string
	}{
		{ProvidersConfig{GoogleClientID: "g"}, "google"},
		{ProvidersConfig{GoogleClientID: "g", GitHubClientID: "gh"}, "google,github"},
		{ProvidersConfig{}, ""},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		NewProvidersHandler(tt.cfg).Providers(rec, httptest.NewRequest("GET", "/api/auth/providers", nil))
		var body providersResponse
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got := strings.Join(body.Providers, ","); got != tt.want {
			t.Errorf("providers = %q, want %q", got, tt.want)
		}
	}
}
