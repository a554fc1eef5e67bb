package handler

import (
	"net/http"

	"github.com/homestead/backend/internal/service"
)

// ProfileHandler はオンボーディングとプロフィールの HTTP ハンドラ
type ProfileHandler struct {
	onboardingService service.OnboardingService
}

// NewProfileHandler は ProfileHandler を生成する
func NewProfileHandler(onboardingService service.OnboardingService) *ProfileHandler {
	return &ProfileHandler{onboardingService: onboardingService}
}

// CompleteUser は POST /api/onboarding を処理する
func (h *ProfileHandler) CompleteUser(w http.ResponseWriter, r *http.Request) {
	var req service.ProfileInput
	if !decodeJSON(w, r, &req) {
		return
	}
	u, err := h.onboardingService.CompleteUser(r.Context(), req)
	if err != nil {
		writeServiceError(w, "user onboarding", err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// CompleteAgent は POST /api/dashboard/onboarding を処理する
func (h *ProfileHandler) CompleteAgent(w http.ResponseWriter, r *http.Request) {
	var req service.AgentProfileInput
	if !decodeJSON(w, r, &req) {
		return
	}
	a, err := h.onboardingService.CompleteAgent(r.Context(), req)
	if err != nil {
		writeServiceError(w, "agent onboarding", err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// Get は GET /api/profile を処理する
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	u, err := h.onboardingService.Profile(r.Context())
	if err != nil {
		writeServiceError(w, "get profile", err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// Update は PUT /api/profile を処理する
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req service.ProfileInput
	if !decodeJSON(w, r, &req) {
		return
	}
	u, err := h.onboardingService.UpdateProfile(r.Context(), req)
	if err != nil {
		writeServiceError(w, "update profile", err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}
