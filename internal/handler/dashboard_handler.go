package handler

import (
	"net/http"

	"github.com/homestead/backend/internal/model"
	"github.com/homestead/backend/internal/service"
)

const maxImageSize = 5 << 20 // 5 MB

var allowedContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// DashboardHandler はエージェントダッシュボードの HTTP ハンドラ
type DashboardHandler struct {
	dashboardService service.DashboardService
}

// NewDashboardHandler は DashboardHandler を生成する
func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Stats は GET /api/dashboard を処理する
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboardService.Stats(r.Context())
	if err != nil {
		writeServiceError(w, "dashboard stats", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Analytics は GET /api/dashboard/analytics を処理する
func (h *DashboardHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	a, err := h.dashboardService.Analytics(r.Context())
	if err != nil {
		writeServiceError(w, "dashboard analytics", err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// Listings は GET /api/dashboard/listings を処理する
func (h *DashboardHandler) Listings(w http.ResponseWriter, r *http.Request) {
	listings, err := h.dashboardService.Listings(r.Context())
	if err != nil {
		writeServiceError(w, "dashboard listings", err)
		return
	}
	if listings == nil {
		listings = []*model.Listing{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"listings": listings})
}

// Create は POST /api/dashboard/listings を処理する
func (h *DashboardHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.ListingInput
	if !decodeJSON(w, r, &req) {
		return
	}
	l, err := h.dashboardService.CreateListing(r.Context(), req)
	if err != nil {
		writeServiceError(w, "create listing", err)
		return
	}
	writeJSON(w, http.StatusCreated, l)
}

// Replace は PUT /api/dashboard/listings/{id} を処理する（ドキュメント全体の置換）
func (h *DashboardHandler) Replace(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id_required")
		return
	}
	var req service.ListingInput
	if !decodeJSON(w, r, &req) {
		return
	}
	l, err := h.dashboardService.ReplaceListing(r.Context(), id, req)
	if err != nil {
		writeServiceError(w, "replace listing", err, "listing_id", id)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

// Delete は DELETE /api/dashboard/listings/{id} を処理する
func (h *DashboardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id_required")
		return
	}
	if err := h.dashboardService.DeleteListing(r.Context(), id); err != nil {
		writeServiceError(w, "delete listing", err, "listing_id", id)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// UploadImage は POST /api/dashboard/listings/{id}/images を処理する（multipart, フィールド名 image）
func (h *DashboardHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id_required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImageSize+(512<<10))
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		writeError(w, http.StatusBadRequest, "file_too_large")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "image_required")
		return
	}
	defer file.Close()

	if header.Size > maxImageSize {
		writeError(w, http.StatusBadRequest, "file_too_large")
		return
	}
	ct := header.Header.Get("Content-Type")
	ext, ok := allowedContentTypes[ct]
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_content_type")
		return
	}

	img, err := h.dashboardService.AttachImage(r.Context(), id, service.ImageUpload{
		Data:        file,
		ContentType: ct,
		Ext:         ext,
		Alt:         r.FormValue("alt"),
	})
	if err != nil {
		writeServiceError(w, "image upload", err, "listing_id", id)
		return
	}
	writeJSON(w, http.StatusCreated, img)
}
