package http

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"remedia/internal/application/quota/usecases"
	"remedia/internal/domain/trust"
	"remedia/internal/infrastructure/auth"
	"remedia/internal/infrastructure/config"
	"remedia/internal/infrastructure/ratelimit"
	"remedia/internal/infrastructure/repository"
	"remedia/internal/interfaces/http/handlers"
	"remedia/internal/interfaces/http/middleware"
	"remedia/internal/shared/logger"
	"remedia/internal/shared/utils"
)

// Router wires the request gate and the API surface it protects.
type Router struct {
	engine          *gin.Engine
	cfg             *config.Config
	authMiddleware  *middleware.AuthMiddleware
	rateLimiter     ratelimit.RateLimiter
	searchHandler   *handlers.SearchHandler
	usageHandler    *handlers.UsageHandler
	favoriteHandler *handlers.FavoriteHandler
	logger          logger.Interface
}

// NewRouter creates a new HTTP router with all dependencies.
func NewRouter(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) *Router {
	engine := gin.New()

	usageRepo := repository.NewUsageRecordRepository(db, log)
	userRepo := repository.NewUserRepository(db, log)
	subscriptionRepo := repository.NewSubscriptionRepository(db, log)
	favoriteRepo := repository.NewFavoriteRepository(db, log)

	// favoriteRepo doubles as the favorite counter for usage summaries.
	quotaTracker := usecases.NewQuotaTracker(usageRepo, subscriptionRepo, userRepo, favoriteRepo, log)
	authorizer := trust.NewOwnershipAuthorizer(log)

	jwtSvc := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)
	authMiddleware := middleware.NewAuthMiddleware(jwtSvc, log)

	var rateLimiter ratelimit.RateLimiter
	if redisClient != nil {
		rateLimiter = ratelimit.NewRedisRateLimiter(redisClient)
	}

	return &Router{
		engine:          engine,
		cfg:             cfg,
		authMiddleware:  authMiddleware,
		rateLimiter:     rateLimiter,
		searchHandler:   handlers.NewSearchHandler(quotaTracker, authorizer, log),
		usageHandler:    handlers.NewUsageHandler(quotaTracker, authorizer, log),
		favoriteHandler: handlers.NewFavoriteHandler(favoriteRepo, authorizer, log),
		logger:          log,
	}
}

// SetupRoutes configures the middleware chain and all HTTP routes.
// Gate order matters: bots are dropped before maintenance is considered,
// maintenance before CSRF, and the CSRF cookie is only issued to requests
// that survive validation.
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.BlockBots(r.cfg.Gate, r.logger))
	r.engine.Use(middleware.Maintenance(r.cfg.Gate))
	r.engine.Use(middleware.CSRF(r.cfg.Gate, r.logger))
	r.engine.Use(middleware.EnsureCSRFCookie(r.cfg.Auth.Cookie))

	r.engine.GET("/health", func(c *gin.Context) {
		utils.OKResponse(c, gin.H{"status": "ok"})
	})
	r.engine.GET("/maintenance", func(c *gin.Context) {
		c.String(200, "The service is down for maintenance. Please check back soon.")
	})

	api := r.engine.Group("/api")
	api.Use(r.authMiddleware.OptionalAuth())
	api.Use(middleware.RateLimit(r.rateLimiter, r.cfg.Gate.RateLimit, r.logger))
	{
		api.POST("/search", r.searchHandler.Search)
		api.POST("/search/ai", r.searchHandler.AISearch)
		api.POST("/export", r.searchHandler.Export)
		api.POST("/compare", r.searchHandler.Compare)

		usage := api.Group("/usage")
		{
			usage.GET("/summary", r.usageHandler.Summary)
			usage.GET("/history", r.usageHandler.History)
			usage.GET("/check", r.usageHandler.Check)
		}

		favorites := api.Group("/favorites")
		{
			favorites.GET("", r.favoriteHandler.List)
			favorites.DELETE("/:id", r.favoriteHandler.Delete)
		}
	}
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Run starts the HTTP server
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
