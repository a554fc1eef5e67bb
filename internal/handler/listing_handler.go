package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/homestead/backend/internal/model"
	"github.com/homestead/backend/internal/search"
	"github.com/homestead/backend/internal/service"
)

// ListingHandler は物件検索・詳細の HTTP ハンドラ
type ListingHandler struct {
	listingService service.ListingService
}

// NewListingHandler は ListingHandler を生成する
func NewListingHandler(listingService service.ListingService) *ListingHandler {
	return &ListingHandler{listingService: listingService}
}

// searchResponse echoes the canonical filter query so the client can keep
// its URL in sync with the criteria actually applied.
type searchResponse struct {
	*model.ListingPage
	Query         string `json:"query"`
	FiltersActive bool   `json:"filters_active"`
}

// Search は GET /api/properties を処理する。不正な数値パラメータは無視される。
func (h *ListingHandler) Search(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	c := search.Decode(params)
	page, err := h.listingService.Search(r.Context(), c, search.DecodePage(params))
	if err != nil {
		slog.Error("listing search failed", "error", err, "query", r.URL.RawQuery)
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}
	writeJSON(w, http.StatusOK, searchResponse{
		ListingPage:   page,
		Query:         search.Encode(c).Encode(),
		FiltersActive: c.IsActive(),
	})
}

// Featured は GET /api/properties/featured を処理する
func (h *ListingHandler) Featured(w http.ResponseWriter, r *http.Request) {
	listings, err := h.listingService.Featured(r.Context())
	if err != nil {
		slog.Error("featured listings failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}
	if listings == nil {
		listings = []*model.Listing{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"listings": listings})
}

// Get は GET /api/properties/{id} を処理する
func (h *ListingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id_required")
		return
	}
	detail, err := h.listingService.Get(r.Context(), id)
	if errors.Is(err, service.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		slog.Error("get listing failed", "error", err, "listing_id", id)
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}
	writeJSON(w, http.StatusOK, detail)
}
