package v1

import (
	"net/http"

	"go-candidate-feed/config"
	"go-candidate-feed/internal/delivery/http/middleware"
	"go-candidate-feed/internal/delivery/http/response"
	"go-candidate-feed/internal/domain"
	"go-candidate-feed/internal/usecase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	FeedUC      domain.FeedUsecase
	CandidateUC domain.CandidateUsecase
	FavoriteUC  domain.FavoriteUsecase
	CategoryUC  domain.CategoryUsecase
	HealthUC    usecase.HealthUsecase
	Verifier    middleware.TokenVerifier
	Config      *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	cfg := deps.Config

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(cfg.FrontendURLs, cfg.AllowDevOrigins)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware(middleware.DefaultRateLimitConfig(cfg.RateLimitGlobalThreshold, cfg.RateLimitWindow())))

	v1 := r.Group("/v1")

	v1.GET("/health", func(c *gin.Context) {
		status := deps.HealthUC.Check(c)
		if status["status"] != "ok" {
			response.Error(c, http.StatusServiceUnavailable, "System degraded", status)
			return
		}
		response.Success(c, http.StatusOK, "System operational", status)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public routes see the caller when a token is sent, e.g. to unlock further feed pages.
	public := v1.Group("")
	public.Use(middleware.OptionalAuth(deps.Verifier))

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Verifier))

	favoriteLimit := middleware.RateLimitMiddleware(
		middleware.FavoriteRateLimitConfig(cfg.RateLimitFavoriteThreshold, cfg.RateLimitWindow()))

	NewCategoryHandler(public, deps.CategoryUC)
	NewCandidateHandler(public, protected, deps.FeedUC, deps.CandidateUC)
	NewFavoriteHandler(protected, deps.FavoriteUC, favoriteLimit)

	return r
}
