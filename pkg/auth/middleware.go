package auth

import (
	"net/http"
	"strings"
)

// tokenFromRequest reads the session cookie, falling back to a bearer token.
func tokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(sessionCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// Authenticate はセッションが有効なら Identity を context にセットする。
// 未ログインのリクエストはそのまま通す
func Authenticate(issuer *SessionIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			id, err := issuer.Parse(token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// DevIdentity は開発用のダミー Identity（AUTH_REQUIRED=false 時に使用）
var DevIdentity = Identity{
	ID:    "dev-user-id",
	Email: "dev@example.com",
	Name:  "Dev User",
	Plans: []string{PlanAgent},
}

// DevAuth は開発用ミドルウェア。セッションがなければダミー Identity を context にセットする
func DevAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := IdentityFromContext(r.Context()); ok {
			next.ServeHTTP(w, r)
			return
		}
		id := DevIdentity
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), &id)))
	})
}
