package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/homestead/backend/internal/config"
	"github.com/homestead/backend/internal/handler"
	"github.com/homestead/backend/internal/logging"
	"github.com/homestead/backend/internal/service"
	"github.com/homestead/backend/internal/storage"
	"github.com/homestead/backend/pkg/auth"
)

func main() {
	cfg := config.Load()
	logging.Setup(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Service: "homestead-api"})
	if err := cfg.Validate(); err != nil {
		logging.Fatal("invalid configuration", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg)
	if err != nil {
		logging.Fatal("failed to open store", "driver", cfg.StoreDriver, "error", err)
	}
	defer st.close()

	meta, closeMeta, err := openMetadataStore(ctx, cfg)
	if err != nil {
		logging.Fatal("failed to open metadata store", "error", err)
	}
	defer closeMeta()

	identity := auth.NewProvider(meta)
	issuer := auth.NewSessionIssuer(cfg.SessionSecret, cfg.SessionTTL)
	assets := storage.NewLocalStorage(cfg.UploadDir, cfg.UploadURLPrefix)

	listingService := service.NewListingService(st.listings, st.agents, cfg.PageSize)
	leadService := service.NewLeadService(identity, st.users, st.listings, st.agents, st.leads)
	savedService := service.NewSavedService(identity, st.users, st.listings, st.saved)
	onboardingService := service.NewOnboardingService(identity, st.users, st.agents)
	dashboardService := service.NewDashboardService(identity, st.agents, st.listings, st.leads, assets)
	amenityService := service.NewAmenityService(st.amenities)

	h := handler.New(st.db, cfg.FrontendURL)
	authHandler := handler.NewAuthHandler(issuer, identity, handler.AuthConfig{
		GoogleClientID:     cfg.GoogleClientID,
		GoogleClientSecret: cfg.GoogleClientSecret,
		GitHubClientID:     cfg.GitHubClientID,
		GitHubClientSecret: cfg.GitHubClientSecret,
		BackendURL:         cfg.BackendURL,
		FrontendURL:        cfg.FrontendURL,
		SecureCookies:      cfg.Production(),
	})
	providersHandler := handler.NewProvidersHandler(handler.ProvidersConfig{
		GoogleClientID: cfg.GoogleClientID,
		GitHubClientID: cfg.GitHubClientID,
	})
	meHandler := handler.NewMeHandler(identity)
	listingHandler := handler.NewListingHandler(listingService)
	leadHandler := handler.NewLeadHandler(leadService)
	savedHandler := handler.NewSavedHandler(savedService)
	profileHandler := handler.NewProfileHandler(onboardingService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	amenityHandler := handler.NewAmenityHandler(amenityService)

	contactLimiter := handler.NewRateLimiter(ctx, cfg.ContactRateLimit)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.Health)
	mux.HandleFunc("GET /api/auth/providers", providersHandler.Providers)
	mux.HandleFunc("GET /api/auth/google/login", authHandler.GoogleLoginURL)
	mux.HandleFunc("GET /api/auth/google/callback", authHandler.GoogleCallback)
	mux.HandleFunc("GET /api/auth/github/login", authHandler.GitHubLoginURL)
	mux.HandleFunc("GET /api/auth/github/callback", authHandler.GitHubCallback)
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)
	mux.HandleFunc("GET /api/auth/gate", meHandler.Gate)
	mux.HandleFunc("GET /api/me", meHandler.Me)

	// 物件 API（閲覧は認証不要）
	mux.HandleFunc("GET /api/amenities", amenityHandler.List)
	mux.HandleFunc("GET /api/properties", listingHandler.Search)
	mux.HandleFunc("GET /api/properties/featured", listingHandler.Featured)
	mux.HandleFunc("GET /api/properties/{id}", listingHandler.Get)

	// アクセス制御はサービスの Outcome で返す
	mux.Handle("POST /api/properties/{id}/contact", contactLimiter.Middleware(http.HandlerFunc(leadHandler.Contact)))
	mux.HandleFunc("POST /api/properties/{id}/save", savedHandler.Toggle)
	mux.HandleFunc("GET /api/properties/{id}/saved", savedHandler.Status)

	// オンボーディング済みユーザー
	mux.HandleFunc("POST /api/onboarding", profileHandler.CompleteUser)
	mux.HandleFunc("GET /api/saved", savedHandler.List)
	mux.HandleFunc("GET /api/profile", profileHandler.Get)
	mux.HandleFunc("PUT /api/profile", profileHandler.Update)

	// エージェントダッシュボード（Gate がプランとエージェント登録を確認する）
	mux.HandleFunc("POST /api/dashboard/onboarding", profileHandler.CompleteAgent)
	mux.HandleFunc("GET /api/dashboard", dashboardHandler.Stats)
	mux.HandleFunc("GET /api/dashboard/analytics", dashboardHandler.Analytics)
	mux.HandleFunc("GET /api/dashboard/listings", dashboardHandler.Listings)
	mux.HandleFunc("POST /api/dashboard/listings", dashboardHandler.Create)
	mux.HandleFunc("PUT /api/dashboard/listings/{id}", dashboardHandler.Replace)
	mux.HandleFunc("DELETE /api/dashboard/listings/{id}", dashboardHandler.Delete)
	mux.HandleFunc("POST /api/dashboard/listings/{id}/images", dashboardHandler.UploadImage)
	mux.HandleFunc("GET /api/dashboard/leads", leadHandler.List)
	mux.HandleFunc("PATCH /api/dashboard/leads/{id}/status", leadHandler.UpdateStatus)

	// アップロード画像の配信
	mux.Handle("GET "+cfg.UploadURLPrefix+"/", http.StripPrefix(cfg.UploadURLPrefix, http.FileServer(http.Dir(assets.BaseDir()))))

	var app http.Handler = auth.Gate(identity, cfg.FrontendURL)(mux)
	if !cfg.AuthRequired {
		app = auth.DevAuth(app)
	}
	app = auth.Authenticate(issuer)(app)
	app = h.CORS(app)
	app = handler.SecurityHeaders(app)
	app = handler.RequestLogger(app)

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      app,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr, "store", cfg.StoreDriver, "auth_required", cfg.AuthRequired)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}
