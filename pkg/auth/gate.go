package auth

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

// RouteClass is the access requirement of a path.
type RouteClass string

const (
	ClassPublic             RouteClass = "public"
	ClassRequiresAuth       RouteClass = "requires-auth"
	ClassRequiresOnboarding RouteClass = "requires-onboarding"
	ClassRequiresAgentPlan  RouteClass = "requires-agent-plan"
)

// Page paths the gate redirects to.
const (
	SignInPath          = "/sign-in"
	OnboardingPath      = "/onboarding"
	PricingPath         = "/pricing"
	AgentOnboardingPath = "/dashboard/onboarding"
	HomePath            = "/"
)

// APIPrefix is stripped before classifying, so /api/saved is gated like /saved.
const APIPrefix = "/api"

var (
	onboardingRoutes = []string{"/onboarding"}
	protectedRoutes  = []string{"/dashboard", "/saved", "/profile"}
	agentRoutes      = []string{"/dashboard"}
)

// matchPrefix reports whether path is route or lies below it.
func matchPrefix(path string, routes []string) bool {
	for _, r := range routes {
		if path == r || strings.HasPrefix(path, r+"/") {
			return true
		}
	}
	return false
}

// PagePath maps an API path onto the page path it serves.
func PagePath(path string) string {
	if path == APIPrefix {
		return "/"
	}
	if strings.HasPrefix(path, APIPrefix+"/") {
		return strings.TrimPrefix(path, APIPrefix)
	}
	return path
}

// Classify returns the access class of a page or API path. Paths under no
// gated prefix are public.
func Classify(path string) RouteClass {
	p := PagePath(path)
	switch {
	case matchPrefix(p, agentRoutes):
		return ClassRequiresAgentPlan
	case matchPrefix(p, protectedRoutes):
		return ClassRequiresOnboarding
	case matchPrefix(p, onboardingRoutes):
		return ClassRequiresAuth
	}
	return ClassPublic
}

// Decision is the outcome of gating one path for the current caller.
// Redirect is empty when access is allowed.
type Decision struct {
	Class    RouteClass `json:"class"`
	Reason   string     `json:"reason,omitempty"`
	Redirect string     `json:"redirect,omitempty"`
}

// Allowed reports whether the caller may proceed.
func (d Decision) Allowed() bool {
	return d.Redirect == ""
}

// Reasons reported with a redirect.
const (
	ReasonAuthRequired            = "auth_required"
	ReasonOnboardingRequired      = "onboarding_required"
	ReasonOnboardingComplete      = "onboarding_complete"
	ReasonPlanRequired            = "plan_required"
	ReasonAgentOnboardingRequired = "agent_onboarding_required"
)

// Decide applies the gating rules to path for the identity in ctx. Redirect
// targets are page paths; sign-in carries the requested page as redirect_url.
func Decide(ctx context.Context, p IdentityProvider, path string) Decision {
	page := PagePath(path)
	class := Classify(page)
	d := Decision{Class: class}
	if class == ClassPublic {
		return d
	}

	if _, ok := p.CurrentIdentity(ctx); !ok {
		d.Reason = ReasonAuthRequired
		d.Redirect = SignInPath + "?" + url.Values{"redirect_url": {page}}.Encode()
		return d
	}

	onboarded := Flag(ctx, p, MetaOnboardingComplete)
	switch class {
	case ClassRequiresAuth:
		if onboarded {
			d.Reason = ReasonOnboardingComplete
			d.Redirect = HomePath
		}
		return d
	case ClassRequiresOnboarding, ClassRequiresAgentPlan:
		if !onboarded {
			d.Reason = ReasonOnboardingRequired
			d.Redirect = OnboardingPath
			return d
		}
	}

	if class == ClassRequiresAgentPlan {
		if !p.HasPlan(ctx, PlanAgent) {
			d.Reason = ReasonPlanRequired
			d.Redirect = PricingPath
			return d
		}
		if !Flag(ctx, p, MetaAgentOnboardingComplete) && !matchPrefix(page, []string{AgentOnboardingPath}) {
			d.Reason = ReasonAgentOnboardingRequired
			d.Redirect = AgentOnboardingPath
		}
	}
	return d
}

// Gate runs Decide on every request before the handler. Denied JSON clients
// get a 401/403 body naming the redirect; other clients get a 302 to the
// frontend page.
func Gate(p IdentityProvider, frontendURL string) func(http.Handler) http.Handler {
	frontendURL = strings.TrimRight(frontendURL, "/")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}
			d := Decide(r.Context(), p, r.URL.Path)
			if d.Allowed() {
				next.ServeHTTP(w, r)
				return
			}
			target := frontendURL + d.Redirect
			slog.Debug("route gated", "path", r.URL.Path, "class", d.Class, "reason", d.Reason)
			if wantsJSON(r) {
				status := http.StatusForbidden
				if d.Reason == ReasonAuthRequired {
					status = http.StatusUnauthorized
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(status)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": d.Reason, "redirect": target})
				return
			}
			http.Redirect(w, r, target, http.StatusFound)
		})
	}
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
