package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/homestead/backend/internal/service"
	"github.com/homestead/backend/pkg/auth"
)

// maxJSONBody caps request bodies decoded by decodeJSON.
const maxJSONBody = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return false
	}
	return true
}

// outcomeResponse is the body of a gated action that did not run. Redirect
// is the page the client should send the caller to.
type outcomeResponse struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect,omitempty"`
}

// writeOutcome answers a non-OK outcome and reports whether it did. signInReturn
// is the page the caller comes back to after signing in.
func writeOutcome(w http.ResponseWriter, outcome service.Outcome, signInReturn string) bool {
	switch outcome {
	case service.OutcomeAuthRequired:
		writeJSON(w, http.StatusUnauthorized, outcomeResponse{
			Error:    string(outcome),
			Redirect: auth.SignInPath + "?" + url.Values{"redirect_url": {signInReturn}}.Encode(),
		})
	case service.OutcomeOnboardingRequired:
		writeJSON(w, http.StatusForbidden, outcomeResponse{Error: string(outcome), Redirect: auth.OnboardingPath})
	case service.OutcomeNotFound:
		writeError(w, http.StatusNotFound, "not_found")
	default:
		return false
	}
	return true
}

// writeServiceError maps service errors onto status codes; anything
// unrecognised is logged and answered with 500.
func writeServiceError(w http.ResponseWriter, op string, err error, args ...any) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_input", "field": ve.Field})
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, service.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, service.ErrAgentRequired):
		writeJSON(w, http.StatusForbidden, outcomeResponse{Error: "agent_onboarding_required", Redirect: auth.AgentOnboardingPath})
	case errors.Is(err, service.ErrPlanRequired):
		writeJSON(w, http.StatusForbidden, outcomeResponse{Error: "plan_required", Redirect: auth.PricingPath})
	default:
		slog.Error(op+" failed", append([]any{"error", err}, args...)...)
		writeError(w, http.StatusInternalServerError, "internal_error")
	}
}
