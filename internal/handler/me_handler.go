package handler

import (
	"net/http"

	"github.com/homestead/backend/pkg/auth"
)

// MeHandler は現在の Identity とオンボーディング状態を返すハンドラ
type MeHandler struct {
	identity auth.IdentityProvider
}

// NewMeHandler は MeHandler を生成する
func NewMeHandler(identity auth.IdentityProvider) *MeHandler {
	return &MeHandler{identity: identity}
}

// meResponse は GET /api/me のレスポンス
type meResponse struct {
	ID                      string   `json:"id"`
	Email                   string   `json:"email"`
	Name                    string   `json:"name"`
	Plans                   []string `json:"plans"`
	IsAgent                 bool     `json:"is_agent"`
	OnboardingComplete      bool     `json:"onboarding_complete"`
	AgentOnboardingComplete bool     `json:"agent_onboarding_complete"`
}

// Me は GET /api/me を処理する
func (h *MeHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.identity.CurrentIdentity(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	plans := id.Plans
	if plans == nil {
		plans = []string{}
	}
	writeJSON(w, http.StatusOK, meResponse{
		ID:                      id.ID,
		Email:                   id.Email,
		Name:                    id.Name,
		Plans:                   plans,
		IsAgent:                 h.identity.HasPlan(ctx, auth.PlanAgent),
		OnboardingComplete:      auth.Flag(ctx, h.identity, auth.MetaOnboardingComplete),
		AgentOnboardingComplete: auth.Flag(ctx, h.identity, auth.MetaAgentOnboardingComplete),
	})
}

// Gate は GET /api/auth/gate?path=... を処理する。フロントエンドがページ遷移前に
// 同じ判定を得るためのエンドポイント
func (h *MeHandler) Gate(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		writeError(w, http.StatusBadRequest, "path_required")
		return
	}
	writeJSON(w, http.StatusOK, auth.Decide(r.Context(), h.identity, path))
}
