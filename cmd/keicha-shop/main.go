package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/keicha2025/keicha-shop/internal/api/handlers"
	"github.com/keicha2025/keicha-shop/internal/api/middleware"
	"github.com/keicha2025/keicha-shop/internal/cache"
	"github.com/keicha2025/keicha-shop/internal/catalog"
	"github.com/keicha2025/keicha-shop/internal/config"
	"github.com/keicha2025/keicha-shop/internal/health"
	"github.com/keicha2025/keicha-shop/internal/metrics"
	"github.com/keicha2025/keicha-shop/internal/observability"
	repository "github.com/keicha2025/keicha-shop/internal/repositories"
	service "github.com/keicha2025/keicha-shop/internal/services"
	"github.com/keicha2025/keicha-shop/pkg/sendgrid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Tracing setup
	shutdownTracing, err := observability.InitTracing(context.Background(), cfg)
	if err != nil {
		slog.Error("❌ Error initializing tracing", "error", err.Error())
		os.Exit(1)
	}

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Error("⚠️ Error closing redis connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Redis connection closed")
		}
	}()

	jwtKey := []byte(cfg.Security.JWTKey)

	var emailService sendgrid.EmailService
	if cfg.SendGrid.APIKey != "" {
		emailService = sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	} else {
		slog.Warn("SendGrid key not configured, confirmation emails disabled")
	}

	sheetCache := cache.NewRedisCache(redisClient, &cfg.Cache)
	loader := catalog.NewLoader(cfg.Sheets)

	catalogService := service.NewCatalogService(loader, sheetCache, cfg.Sheets)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	cartService := service.NewCartService(repository.NewSnapshotRepo(redisClient), catalogService)
	cartHandler := handlers.NewCartHandler(cartService)
	memberService := service.NewMemberService(repository.NewMemberRepo(redisClient), repository.NewRateLimitRepo(redisClient, cfg), jwtKey, cfg.Security.TokenTTL)
	memberHandler := handlers.NewMemberHandler(memberService)
	checkoutService := service.NewCheckoutService(cartService, emailService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	authMiddleware := middleware.NewAuthMiddleware(jwtKey)

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("❌ Error creating health handler", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("GET /api/v1/catalog", catalogHandler.GetCatalog())
	routerMux.HandleFunc("GET /api/v1/catalog/settings", catalogHandler.GetSettings())
	routerMux.HandleFunc("POST /api/v1/catalog/refresh", authMiddleware.Authenticate(catalogHandler.RefreshCatalog()))
	routerMux.HandleFunc("POST /api/v1/carts", cartHandler.CreateCart())
	routerMux.HandleFunc("GET /api/v1/carts/{id}", cartHandler.GetCart())
	routerMux.HandleFunc("DELETE /api/v1/carts/{id}", cartHandler.ClearCart())
	routerMux.HandleFunc("POST /api/v1/carts/{id}/items", cartHandler.AddItem())
	routerMux.HandleFunc("PATCH /api/v1/carts/{id}/items/{itemID}", cartHandler.UpdateQuantity())
	routerMux.HandleFunc("DELETE /api/v1/carts/{id}/items/{itemID}", cartHandler.RemoveItem())
	routerMux.HandleFunc("GET /api/v1/carts/{id}/summary", cartHandler.Summary())
	routerMux.HandleFunc("POST /api/v1/members/login", memberHandler.Login())
	routerMux.HandleFunc("GET /api/v1/members/profile", authMiddleware.Authenticate(memberHandler.Profile()))
	routerMux.HandleFunc("PATCH /api/v1/members/profile", authMiddleware.Authenticate(memberHandler.UpdateProfile()))
	routerMux.HandleFunc("POST /api/v1/checkout", checkoutHandler.Checkout())
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /health", healthHandler.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, "keicha-shop")

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("⚠️ Trace exporter shutdown encountered an issue", slog.String("error", err.Error()))
	}
}
