package middleware

import (
	"net/http"
	"strings"

	"doneapp/internal/core/port"
	"doneapp/internal/core/session"

	"github.com/gin-gonic/gin"
)

// SessionMiddleware resolves the bearer token into a session through the
// identity provider and attaches it to the request.
func SessionMiddleware(provider port.IdentityProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		bearer := c.GetHeader("Authorization")

		if bearer == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"errors": []string{"Unauthorized request"},
			})

			c.Abort()
			return
		}

		if !strings.HasPrefix(bearer, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{
				"errors": []string{"Invalid authorization format"},
			})

			c.Abort()
			return
		}

		sess, err := provider.Resolve(c.Request.Context(), bearer[len("Bearer "):])

		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"errors": []string{"Unauthorized request", err.Error()},
			})
			c.Abort()
			return
		}

		c.Set("session", sess)
		c.Set("x-user-id", sess.UserID)

		c.Next()
	}
}

// SessionFromContext returns the session the middleware attached, or nil on
// an unauthenticated request.
func SessionFromContext(c *gin.Context) *session.Session {
	if value, ok := c.Get("session"); ok {
		if sess, ok := value.(*session.Session); ok {
			return sess
		}
	}

	return nil
}
