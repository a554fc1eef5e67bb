package handler

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/homestead/backend/pkg/auth"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	oauthStateCookieName  = "oauth_state"
	oauthReturnCookieName = "oauth_return"
)

// generateOAuthState は CSRF 対策用のランダム state 文字列を生成する
func generateOAuthState() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return base64.URLEncoding.EncodeToString(b)
}

func shortLivedCookie(name, value string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   600, // 10 minutes
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
	}
}

func clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Expires:  time.Unix(0, 0),
	})
}

// verifyOAuthState は state クッキーとクエリパラメータを照合する
func verifyOAuthState(r *http.Request) bool {
	cookie, err := r.Cookie(oauthStateCookieName)
	if err != nil || cookie.Value == "" {
		return false
	}
	return cookie.Value == r.URL.Query().Get("state")
}

// safeReturnPath accepts only same-site page paths as a post-login target.
func safeReturnPath(p string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.Contains(p, `\`) {
		return "/"
	}
	return p
}

var githubEndpoint = oauth2.Endpoint{
	AuthURL:  "https://github.com/login/oauth/authorize",
	TokenURL: "https://github.com/login/oauth/access_token",
}

// PlanLookup returns the plan entitlements recorded for an identity.
type PlanLookup interface {
	PlansFor(ctx context.Context, identityID string) ([]string, error)
}

// AuthConfig は AuthHandler の設定
type AuthConfig struct {
	GoogleClientID     string
	GoogleClientSecret string
	GitHubClientID     string
	GitHubClientSecret string
	BackendURL         string
	FrontendURL        string
	SecureCookies      bool
}

// AuthHandler は OAuth サインインとセッション発行の HTTP ハンドラ
type AuthHandler struct {
	issuer       *auth.SessionIssuer
	plans        PlanLookup
	googleConfig *oauth2.Config
	githubConfig *oauth2.Config
	frontendURL  string
	secure       bool

	googleUserInfoURL string
	githubUserURL     string
	githubEmailsURL   string
}

// NewAuthHandler は AuthHandler を生成する
func NewAuthHandler(issuer *auth.SessionIssuer, plans PlanLookup, cfg AuthConfig) *AuthHandler {
	backendURL := strings.TrimRight(cfg.BackendURL, "/")
	if backendURL == "" {
		backendURL = "http://localhost:8080"
	}
	return &AuthHandler{
		issuer: issuer,
		plans:  plans,
		googleConfig: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  backendURL + "/api/auth/google/callback",
			Scopes:       []string{"profile", "email"},
			Endpoint:     google.Endpoint,
		},
		githubConfig: &oauth2.Config{
			ClientID:     cfg.GitHubClientID,
			ClientSecret: cfg.GitHubClientSecret,
			RedirectURL:  backendURL + "/api/auth/github/callback",
			Scopes:       []string{"read:user", "user:email"},
			Endpoint:     githubEndpoint,
		},
		frontendURL:       strings.TrimRight(cfg.FrontendURL, "/"),
		secure:            cfg.SecureCookies,
		googleUserInfoURL: "https://www.googleapis.com/oauth2/v2/userinfo",
		githubUserURL:     "https://api.github.com/user",
		githubEmailsURL:   "https://api.github.com/user/emails",
	}
}

// beginLogin sets the state and return cookies and answers the provider URL.
func (h *AuthHandler) beginLogin(w http.ResponseWriter, r *http.Request, cfg *oauth2.Config) {
	state := generateOAuthState()
	http.SetCookie(w, shortLivedCookie(oauthStateCookieName, state, h.secure))
	if ret := r.URL.Query().Get("redirect_url"); ret != "" {
		http.SetCookie(w, shortLivedCookie(oauthReturnCookieName, url.QueryEscape(safeReturnPath(ret)), h.secure))
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": cfg.AuthCodeURL(state)})
}

// GoogleLoginURL は Google OAuth の認証 URL を返す（GET /api/auth/google/login）
func (h *AuthHandler) GoogleLoginURL(w http.ResponseWriter, r *http.Request) {
	h.beginLogin(w, r, h.googleConfig)
}

// GitHubLoginURL は GitHub OAuth の認証 URL を返す（GET /api/auth/github/login）
func (h *AuthHandler) GitHubLoginURL(w http.ResponseWriter, r *http.Request) {
	h.beginLogin(w, r, h.githubConfig)
}

// exchange verifies the state and trades the code for an HTTP client. On
// failure it redirects with an error code and returns nil.
func (h *AuthHandler) exchange(w http.ResponseWriter, r *http.Request, cfg *oauth2.Config) *http.Client {
	if !verifyOAuthState(r) {
		clearCookie(w, oauthStateCookieName)
		h.failLogin(w, r, "invalid_state", nil)
		return nil
	}
	clearCookie(w, oauthStateCookieName)

	code := r.URL.Query().Get("code")
	if code == "" {
		h.failLogin(w, r, "no_code", nil)
		return nil
	}
	token, err := cfg.Exchange(r.Context(), code)
	if err != nil {
		h.failLogin(w, r, "exchange_failed", err)
		return nil
	}
	return cfg.Client(r.Context(), token)
}

func (h *AuthHandler) failLogin(w http.ResponseWriter, r *http.Request, code string, err error) {
	if err != nil {
		slog.Warn("sign-in failed", "reason", code, "error", err)
	}
	http.Redirect(w, r, h.frontendURL+auth.SignInPath+"?error="+code, http.StatusFound)
}

func getJSON(ctx context.Context, client *http.Client, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

// googleUserInfo は Google userinfo API のレスポンス
type googleUserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// GoogleCallback は OAuth コールバックを処理する（GET /api/auth/google/callback）
func (h *AuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	client := h.exchange(w, r, h.googleConfig)
	if client == nil {
		return
	}
	var info googleUserInfo
	if err := getJSON(r.Context(), client, h.googleUserInfoURL, &info); err != nil {
		h.failLogin(w, r, "userinfo_failed", err)
		return
	}
	if info.ID == "" {
		h.failLogin(w, r, "userinfo_failed", errors.New("google: empty id"))
		return
	}
	h.completeLogin(w, r, auth.Identity{ID: "google:" + info.ID, Email: info.Email, Name: info.Name})
}

// githubUserInfo は GitHub API のレスポンス
type githubUserInfo struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// GitHubCallback は OAuth コールバックを処理する（GET /api/auth/github/callback）
func (h *AuthHandler) GitHubCallback(w http.ResponseWriter, r *http.Request) {
	client := h.exchange(w, r, h.githubConfig)
	if client == nil {
		return
	}
	var info githubUserInfo
	if err := getJSON(r.Context(), client, h.githubUserURL, &info); err != nil {
		h.failLogin(w, r, "userinfo_failed", err)
		return
	}

	// GitHub は email が private の場合 null になるため、別 API で取得を試みる
	if info.Email == "" {
		var emails []struct {
			Email   string `json:"email"`
			Primary bool   `json:"primary"`
		}
		if getJSON(r.Context(), client, h.githubEmailsURL, &emails) == nil {
			for _, e := range emails {
				if e.Primary {
					info.Email = e.Email
					break
				}
			}
			if info.Email == "" && len(emails) > 0 {
				info.Email = emails[0].Email
			}
		}
	}
	name := info.Name
	if name == "" {
		name = info.Login
	}
	h.completeLogin(w, r, auth.Identity{ID: "github:" + strconv.FormatInt(info.ID, 10), Email: info.Email, Name: name})
}

// completeLogin embeds the identity's plans in a session token, sets the
// session cookie and sends the caller back to the page they came from.
func (h *AuthHandler) completeLogin(w http.ResponseWriter, r *http.Request, id auth.Identity) {
	if id.Email == "" {
		h.failLogin(w, r, "email_required", nil)
		return
	}
	plans, err := h.plans.PlansFor(r.Context(), id.ID)
	if err != nil {
		h.failLogin(w, r, "plans_failed", err)
		return
	}
	id.Plans = plans

	token, err := h.issuer.Issue(id)
	if err != nil {
		h.failLogin(w, r, "session_failed", err)
		return
	}
	http.SetCookie(w, h.issuer.SessionCookie(token, h.secure))

	ret := "/"
	if c, err := r.Cookie(oauthReturnCookieName); err == nil {
		if v, err := url.QueryUnescape(c.Value); err == nil {
			ret = safeReturnPath(v)
		}
		clearCookie(w, oauthReturnCookieName)
	}
	slog.Info("signed in", "identity_id", id.ID, "plans", id.Plans)
	http.Redirect(w, r, h.frontendURL+ret, http.StatusFound)
}

// Logout はログアウトする（POST /api/auth/logout）
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, auth.ClearSessionCookie(h.secure))
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
