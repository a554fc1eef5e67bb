package handler

import (
	"net/http"
)

// ProvidersConfig holds the configuration that determines which sign-in
// providers are enabled.
type ProvidersConfig struct {
	GoogleClientID string
	GitHubClientID string
}

// ProvidersHandler handles GET /api/auth/providers
type ProvidersHandler struct {
	cfg ProvidersConfig
}

// NewProvidersHandler creates a ProvidersHandler with the given configuration.
func NewProvidersHandler(cfg ProvidersConfig) *ProvidersHandler {
	return &ProvidersHandler{cfg: cfg}
}

// providersResponse is the JSON response shape for GET /api/auth/providers.
type providersResponse struct {
	Providers []string `json:"providers"`
}

// Providers lists the configured providers, Google first.
func (h *ProvidersHandler) Providers(w http.ResponseWriter, r *http.Request) {
	providers := []string{}
	if h.cfg.GoogleClientID != "" {
		providers = append(providers, "google")
	}
	if h.cfg.GitHubClientID != "" {
		providers = append(providers, "github")
	}
	writeJSON(w, http.StatusOK, providersResponse{Providers: providers})
}
