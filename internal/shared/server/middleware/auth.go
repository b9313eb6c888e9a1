package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cvmaker-backend/internal/shared/server/respond"
)

// AuthOptions configures the boundary check on incoming requests.
type AuthOptions struct {
	// APIKey is the shared secret clients must present. Empty means the
	// service refuses authenticated routes entirely.
	APIKey string
	// Header is the request header carrying the key, X-API-Key by default.
	Header string
	// AllowedIPs optionally restricts callers by client IP. Empty allows all.
	AllowedIPs []string
}

// Auth enforces the API key and optional IP allowlist. Health checks and
// CORS preflights stay public.
func Auth(opts AuthOptions) gin.HandlerFunc {
	header := strings.TrimSpace(opts.Header)
	if header == "" {
		header = "X-API-Key"
	}
	allowed := make(map[string]struct{}, len(opts.AllowedIPs))
	for _, ip := range opts.AllowedIPs {
		if trimmed := strings.TrimSpace(ip); trimmed != "" {
			allowed[trimmed] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}
		if c.Request.URL.Path == "/api/v1/health" {
			c.Next()
			return
		}

		if len(allowed) > 0 {
			if _, ok := allowed[c.ClientIP()]; !ok {
				respond.Error(c, http.StatusForbidden, "forbidden", "client address is not allowed", nil)
				return
			}
		}

		if opts.APIKey == "" {
			respond.Error(c, http.StatusServiceUnavailable, "auth_unconfigured", "API key is not configured", nil)
			return
		}

		presented := strings.TrimSpace(c.GetHeader(header))
		if presented == "" || subtle.ConstantTimeCompare([]byte(presented), []byte(opts.APIKey)) != 1 {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid API key", nil)
			return
		}

		c.Next()
	}
}
