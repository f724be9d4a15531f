package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"doneapp/internal/adapter/database/memory"
	"doneapp/internal/core/telemetry"
	"doneapp/pkg/config"
)

func setupRateLimitedRouter(configs map[string]config.RateLimitConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)

	metrics := telemetry.NewAppMetrics(prometheus.NewRegistry())
	limiter := NewRateLimiter(memory.NewCacheRepository(), configs, zap.NewNop(), metrics)

	router := gin.New()
	router.Use(limiter.RateLimitMiddleware())

	router.POST("/signup", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	router.GET("/todos/:uuid", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	return router
}

func hitEndpoint(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	return hitEndpointFrom(router, method, path, "10.0.0.1:1234")
}

func hitEndpointFrom(router *gin.Engine, method, path, remoteAddr string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, nil)
	req.RemoteAddr = remoteAddr

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	return rr
}

func TestRateLimiter_AllowsWithinLimit(t *testing.T) {
	RegisterTestingT(t)

	router := setupRateLimitedRouter(map[string]config.RateLimitConfig{
		"/signup": {Requests: 3, Window: time.Minute},
	})

	for i := 0; i < 3; i++ {
		rr := hitEndpoint(router, "POST", "/signup")
		Expect(rr.Code).To(Equal(http.StatusOK))
	}
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	RegisterTestingT(t)

	router := setupRateLimitedRouter(map[string]config.RateLimitConfig{
		"/signup": {Requests: 2, Window: time.Minute},
	})

	hitEndpoint(router, "POST", "/signup")
	hitEndpoint(router, "POST", "/signup")

	rr := hitEndpoint(router, "POST", "/signup")

	Expect(rr.Code).To(Equal(http.StatusTooManyRequests))
	Expect(rr.Header().Get("X-RateLimit-Remaining")).To(Equal("0"))
}

func TestRateLimiter_SetsHeaders(t *testing.T) {
	RegisterTestingT(t)

	router := setupRateLimitedRouter(map[string]config.RateLimitConfig{
		"/signup": {Requests: 5, Window: time.Minute},
	})

	rr := hitEndpoint(router, "POST", "/signup")

	Expect(rr.Header().Get("X-RateLimit-Limit")).To(Equal("5"))
	Expect(rr.Header().Get("X-RateLimit-Remaining")).To(Equal("4"))
	Expect(rr.Header().Get("X-RateLimit-Reset")).To(Not(BeEmpty()))
}

func TestRateLimiter_RoutePatternFallsUnderSegmentBudget(t *testing.T) {
	RegisterTestingT(t)

	router := setupRateLimitedRouter(map[string]config.RateLimitConfig{
		"/todos": {Requests: 1, Window: time.Minute},
	})

	rr := hitEndpoint(router, "GET", "/todos/abc")
	Expect(rr.Code).To(Equal(http.StatusOK))

	rr = hitEndpoint(router, "GET", "/todos/abc")
	Expect(rr.Code).To(Equal(http.StatusTooManyRequests))
}

func TestRateLimiter_CountsPerClientIP(t *testing.T) {
	RegisterTestingT(t)

	router := setupRateLimitedRouter(map[string]config.RateLimitConfig{
		"/signup": {Requests: 1, Window: time.Minute},
	})

	rr := hitEndpointFrom(router, "POST", "/signup", "10.0.0.1:1234")
	Expect(rr.Code).To(Equal(http.StatusOK))

	rr = hitEndpointFrom(router, "POST", "/signup", "10.0.0.1:1234")
	Expect(rr.Code).To(Equal(http.StatusTooManyRequests))

	// Another client spends its own budget.
	rr = hitEndpointFrom(router, "POST", "/signup", "10.0.0.2:1234")
	Expect(rr.Code).To(Equal(http.StatusOK))
}

func TestRateLimiter_UnknownPathUsesDefault(t *testing.T) {
	RegisterTestingT(t)

	router := setupRateLimitedRouter(map[string]config.RateLimitConfig{})

	rr := hitEndpoint(router, "POST", "/signup")

	Expect(rr.Code).To(Equal(http.StatusOK))
	Expect(rr.Header().Get("X-RateLimit-Limit")).To(Equal("60"))
}
