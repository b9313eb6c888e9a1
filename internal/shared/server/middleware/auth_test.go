package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func authTestRouter(opts AuthOptions) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Auth(opts))
	r.GET("/api/v1/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/api/v1/profile", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestAuthAllowsHealthWithoutKey(t *testing.T) {
	r := authTestRouter(AuthOptions{APIKey: "secret"})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for health, got %d", resp.Code)
	}
}

func TestAuthRejectsMissingKey(t *testing.T) {
	r := authTestRouter(AuthOptions{APIKey: "secret"})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAuthRejectsWrongKey(t *testing.T) {
	r := authTestRouter(AuthOptions{APIKey: "secret"})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
	req.Header.Set("X-API-Key", "wrong")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAuthAcceptsValidKeyOnCustomHeader(t *testing.T) {
	r := authTestRouter(AuthOptions{APIKey: "secret", Header: "X-Service-Key"})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
	req.Header.Set("X-Service-Key", "secret")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestAuthUnconfiguredKeyReturns503(t *testing.T) {
	r := authTestRouter(AuthOptions{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
	req.Header.Set("X-API-Key", "anything")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
}

func TestAuthIPAllowlist(t *testing.T) {
	r := authTestRouter(AuthOptions{APIKey: "secret", AllowedIPs: []string{"10.1.2.3"}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
	req.Header.Set("X-API-Key", "secret")
	req.RemoteAddr = "192.0.2.9:12345"
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for disallowed IP, got %d", resp.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
	req2.Header.Set("X-API-Key", "secret")
	req2.RemoteAddr = "10.1.2.3:12345"
	resp2 := httptest.NewRecorder()
	r.ServeHTTP(resp2, req2)
	if resp2.Code != http.StatusOK {
		t.Fatalf("expected 200 for allowed IP, got %d", resp2.Code)
	}
}
