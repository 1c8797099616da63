package server

import (
	"net/http"
	"strings"
	"time"

	"auction-bidder/utils"

	"github.com/gin-gonic/gin"
)

// TokenParser validates a bearer token and returns the user ID it names.
type TokenParser interface {
	ParseToken(tokenString string) (string, error)
}

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	utils.Info("HTTP Request", map[string]any{
		"method":  c.Request.Method,
		"path":    c.Request.URL.Path,
		"status":  c.Writer.Status(),
		"latency": time.Since(start).String(),
	})
}

// AuthRequiredMiddleware rejects requests without a valid bearer token and
// stores the caller's user ID in the request context.
func AuthRequiredMiddleware(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if header == "" || token == header {
			utils.JSONMessage(c, http.StatusUnauthorized, "authorization header required")
			c.Abort()
			return
		}

		userID, err := parser.ParseToken(token)
		if err != nil {
			utils.JSONMessage(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}
