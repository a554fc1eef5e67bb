package handler

import (
	"net/http"
	"unicode/utf8"

	"github.com/homestead/backend/internal/model"
	"github.com/homestead/backend/internal/service"
)

const maxLeadMessageLen = 2000

// LeadHandler はエージェントへの問い合わせとリード管理の HTTP ハンドラ
type LeadHandler struct {
	leadService service.LeadService
}

// NewLeadHandler は LeadHandler を生成する
func NewLeadHandler(leadService service.LeadService) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

type contactRequest struct {
	Message string `json:"message"`
}

// Contact は POST /api/properties/{id}/contact を処理する。
// 同じ物件・同じメールアドレスからの再送は既存のリードを 200 で返す。
func (h *LeadHandler) Contact(w http.ResponseWriter, r *http.Request) {
	listingID := r.PathValue("id")
	if listingID == "" {
		writeError(w, http.StatusBadRequest, "id_required")
		return
	}
	var req contactRequest
	if r.ContentLength != 0 && !decodeJSON(w, r, &req) {
		return
	}
	if utf8.RuneCountInString(req.Message) > maxLeadMessageLen {
		writeError(w, http.StatusBadRequest, "message_too_long")
		return
	}

	res, err := h.leadService.ContactAgent(r.Context(), listingID, req.Message)
	if err != nil {
		writeServiceError(w, "contact agent", err, "listing_id", listingID)
		return
	}
	if writeOutcome(w, res.Outcome, "/properties/"+listingID) {
		return
	}
	status := http.StatusCreated
	if res.Existing {
		status = http.StatusOK
	}
	writeJSON(w, status, res)
}

// List は GET /api/dashboard/leads を処理する
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	leads, err := h.leadService.ListForAgent(r.Context())
	if err != nil {
		writeServiceError(w, "list leads", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"leads": leads})
}

type leadStatusRequest struct {
	Status model.LeadStatus `json:"status"`
}

// UpdateStatus は PATCH /api/dashboard/leads/{id}/status を処理する
func (h *LeadHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	leadID := r.PathValue("id")
	if leadID == "" {
		writeError(w, http.StatusBadRequest, "id_required")
		return
	}
	var req leadStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.leadService.UpdateStatus(r.Context(), leadID, req.Status); err != nil {
		writeServiceError(w, "update lead status", err, "lead_id", leadID)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(req.Status)})
}
