package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

const healthTimeout = 2 * time.Second

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Health は GET /api/health を処理する。コンテンツストアへの疎通を確認する。
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		slog.Error("health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{
			Status:  "unhealthy",
			Message: "content store unreachable",
		})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Message: "Homestead API"})
}
