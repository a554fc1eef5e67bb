package handler

import (
	"log/slog"
	"net/http"

	"github.com/homestead/backend/internal/service"
)

// AmenityHandler はアメニティカタログの HTTP ハンドラ
type AmenityHandler struct {
	amenityService service.AmenityService
}

// NewAmenityHandler は AmenityHandler を生成する
func NewAmenityHandler(amenityService service.AmenityService) *AmenityHandler {
	return &AmenityHandler{amenityService: amenityService}
}

// List は GET /api/amenities を処理する
func (h *AmenityHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.amenityService.List(r.Context())
	if err != nil {
		slog.Error("list amenities failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"amenities": list})
}
