package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobforge-backend/internal/generation"
	"jobforge-backend/internal/services/health"
	"jobforge-backend/internal/shared/config"
	"jobforge-backend/internal/shared/metrics"
	"jobforge-backend/internal/shared/server/middleware"
	"jobforge-backend/internal/shared/server/respond"
)

// RouterDeps carries the wired handlers and services the router mounts.
type RouterDeps struct {
	Config     config.Config
	Generation *generation.Handler
	Health     *health.Service
	Limiter    *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, deps.Health.Status())
	})

	// The generate route is the only one that spends model tokens, so it is
	// the only one rate limited.
	generateLimit := middleware.RateLimit(deps.Limiter, middleware.RateLimitRule{
		Rate:  deps.Config.GenerateRatePerMin / 60.0,
		Burst: deps.Config.GenerateBurst,
	})
	deps.Generation.RegisterRoutes(api, generateLimit)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
