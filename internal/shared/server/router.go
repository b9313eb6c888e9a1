package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cvmaker-backend/internal/shared/config"
	"cvmaker-backend/internal/shared/metrics"
	"cvmaker-backend/internal/shared/server/middleware"
	"cvmaker-backend/internal/shared/server/respond"
)

// RouteRegistrar is implemented by every feature handler.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config, handlers ...RouteRegistrar) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.Auth(middleware.AuthOptions{
			APIKey:     cfg.APIKey,
			Header:     cfg.APIKeyHeader,
			AllowedIPs: cfg.AllowedIPs,
		}),
		middleware.RateLimit(generationRateLimits()),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())
	for _, h := range handlers {
		h.RegisterRoutes(api)
	}

	return r
}

// generationRateLimits throttles the endpoints that fan out to paid APIs.
func generationRateLimits() middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"GENERATE": {Rate: 0.2, Burst: 3},
		},
		GroupFor: func(c *gin.Context) string {
			switch c.FullPath() {
			case "/api/v1/cv/generate-data",
				"/api/v1/job/generate-document",
				"/api/v1/job/generate-document-from-description",
				"/api/v1/llm/chat":
				return "GENERATE"
			}
			return ""
		},
	}
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
