package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"reviewhub/database"
	"reviewhub/internal/ai"
	"reviewhub/internal/config"
	"reviewhub/internal/http-api/cache"
	"reviewhub/internal/http-api/handler"
	"reviewhub/internal/http-api/middleware"
	"reviewhub/internal/http-api/repository"
	"reviewhub/internal/http-api/service"
	"reviewhub/internal/scheduler"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}

	logger := newLogger(cfg)

	db, err := database.Connect(cfg, logger)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	businessRepo := repository.NewBusinessRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	generationRepo := repository.NewGenerationRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	if err := subscriptionRepo.SeedDefaultPlans(); err != nil {
		log.Fatalf("could not seed subscription plans: %v", err)
	}

	// Redis cache; a failed connection degrades to DB reads
	cacheStore, err := cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.CacheTTL)
	if err != nil {
		logger.Warn("redis unavailable, running without cache", "error", err)
		cacheStore = nil
	}

	// AI providers
	providers := ai.NewRegistry()
	providers.Register(ai.NewGeminiProvider(cfg.GeminiAPIURL, cfg.GeminiAPIKey, cfg.ProviderTimeout))
	providers.Register(ai.NewClaudeProvider(cfg.ClaudeAPIURL, cfg.ClaudeAPIKey, cfg.ProviderTimeout))

	// Services
	authService := service.NewAuthService(userRepo, refreshTokenRepo, businessRepo, cfg)
	quotaService := service.NewQuotaService(subscriptionRepo, businessRepo, logger)
	reviewService := service.NewReviewService(reviewRepo, generationRepo, businessRepo, customerRepo, quotaService)
	aiService := service.NewAIService(
		reviewService, reviewRepo, generationRepo, businessRepo,
		templateRepo, settingRepo, quotaService, providers, cacheStore,
		cfg.DefaultAIModel, logger,
	)

	// Monthly usage rollup
	usageScheduler := scheduler.New(quotaService, logger)
	if err := usageScheduler.Start(); err != nil {
		log.Fatalf("could not start scheduler: %v", err)
	}
	defer usageScheduler.Stop()

	// HTTP
	if cfg.GoEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authHandler := handler.NewAuthHandler(authService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	aiHandler := handler.NewAIHandler(aiService, reviewService, quotaService)
	businessHandler := handler.NewBusinessHandler(businessRepo, templateRepo, cacheStore)
	subscriptionHandler := handler.NewSubscriptionHandler(quotaService)

	api := r.Group("/api")

	// Public routes, rate limited per client IP
	rateLimiter := middleware.NewRateLimiter(cfg.PublicRateLimit, cfg.PublicRateBurst)
	public := api.Group("")
	public.Use(rateLimiter.Middleware())
	authHandler.RegisterRoutes(public)
	reviewHandler.RegisterPublicRoutes(public)
	aiHandler.RegisterPublicRoutes(public)

	// Authenticated routes
	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(authService))
	reviewHandler.RegisterRoutes(authed)
	aiHandler.RegisterRoutes(authed)
	businessHandler.RegisterRoutes(authed)
	subscriptionHandler.RegisterRoutes(authed)

	// Admin routes
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(authService), middleware.RequireAdmin())
	aiHandler.RegisterAdminRoutes(admin)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("server starting", "addr", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
