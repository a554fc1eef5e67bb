package handler

import (
	"net/http"

	"github.com/homestead/backend/internal/model"
	"github.com/homestead/backend/internal/service"
)

// SavedHandler は保存済み物件の HTTP ハンドラ
type SavedHandler struct {
	savedService service.SavedService
}

// NewSavedHandler は SavedHandler を生成する
func NewSavedHandler(savedService service.SavedService) *SavedHandler {
	return &SavedHandler{savedService: savedService}
}

// Toggle は POST /api/properties/{id}/save を処理する。保存状態を反転する。
func (h *SavedHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	listingID := r.PathValue("id")
	if listingID == "" {
		writeError(w, http.StatusBadRequest, "id_required")
		return
	}
	res, err := h.savedService.Toggle(r.Context(), listingID)
	if err != nil {
		writeServiceError(w, "toggle saved", err, "listing_id", listingID)
		return
	}
	if writeOutcome(w, res.Outcome, "/properties/"+listingID) {
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Status は GET /api/properties/{id}/saved を処理する。未ログインでも false を返す。
func (h *SavedHandler) Status(w http.ResponseWriter, r *http.Request) {
	listingID := r.PathValue("id")
	if listingID == "" {
		writeError(w, http.StatusBadRequest, "id_required")
		return
	}
	saved, err := h.savedService.IsSaved(r.Context(), listingID)
	if err != nil {
		writeServiceError(w, "saved status", err, "listing_id", listingID)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"saved": saved})
}

// List は GET /api/saved を処理する
func (h *SavedHandler) List(w http.ResponseWriter, r *http.Request) {
	listings, outcome, err := h.savedService.List(r.Context())
	if err != nil {
		writeServiceError(w, "list saved", err)
		return
	}
	if writeOutcome(w, outcome, "/saved") {
		return
	}
	if listings == nil {
		listings = []*model.Listing{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"listings": listings})
}
