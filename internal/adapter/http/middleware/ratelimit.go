package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"doneapp/internal/core/port"
	"doneapp/internal/core/telemetry"
	"doneapp/pkg/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimiter throttles requests per endpoint using fixed windows backed by
// the cache repository, so the counters survive in Redis when more than one
// instance serves traffic.
type RateLimiter struct {
	cache   port.CacheRepository
	configs map[string]config.RateLimitConfig
	logger  *zap.Logger
	metrics *telemetry.AppMetrics
}

var defaultRateLimit = config.RateLimitConfig{
	Requests: 60,
	Window:   time.Minute,
}

func NewRateLimiter(cache port.CacheRepository, configs map[string]config.RateLimitConfig, logger *zap.Logger, metrics *telemetry.AppMetrics) *RateLimiter {
	return &RateLimiter{
		cache:   cache,
		configs: configs,
		logger:  logger,
		metrics: metrics,
	}
}

func (rl *RateLimiter) RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		limit := rl.configFor(path)
		key := rl.generateKey(c, path)

		count, err := rl.cache.Increment(c.Request.Context(), key, limit.Window)

		if err != nil {
			// Fail open. A broken counter backend must not take the API down.
			rl.logger.Error("Rate limit check failed",
				zap.String("key", key),
				zap.String("path", path),
				zap.Error(err))
			c.Next()
			return
		}

		remaining := limit.Requests - int(count)
		if remaining < 0 {
			remaining = 0
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit.Requests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(limit.Window).Unix(), 10))

		if int(count) > limit.Requests {
			if rl.metrics != nil {
				rl.metrics.RecordRateLimitHit(c.Request.Context(), path, "ip")
			}

			rl.logger.Warn("Rate limit exceeded",
				zap.String("key", key),
				zap.String("path", path),
				zap.Int("limit", limit.Requests),
				zap.Duration("window", limit.Window))

			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded",
				"message":     fmt.Sprintf("Too many requests. Limit: %d per %v", limit.Requests, limit.Window),
				"retry_after": int(limit.Window.Seconds()),
			})
			c.Abort()
			return
		}

		if rl.metrics != nil {
			rl.metrics.RecordRateLimitAllowed(c.Request.Context(), path, "ip")
		}

		c.Next()
	}
}

// configFor matches the route pattern, then its first segment, then the
// default. "/todos/:uuid" falls under the "/todos" budget.
func (rl *RateLimiter) configFor(path string) config.RateLimitConfig {
	if limit, ok := rl.configs[path]; ok {
		return limit
	}

	segments := strings.SplitN(strings.TrimPrefix(path, "/"), "/", 2)

	if len(segments) > 0 {
		if limit, ok := rl.configs["/"+segments[0]]; ok {
			return limit
		}
	}

	return defaultRateLimit
}

// generateKey scopes the counter per client IP. The limiter runs before the
// session is resolved, so the caller's account is not known here.
func (rl *RateLimiter) generateKey(c *gin.Context, path string) string {
	return fmt.Sprintf("rate_limit:%s:%s", path, c.ClientIP())
}
