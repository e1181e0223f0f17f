package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// StaticToken requires "Authorization: Bearer <token>".
func StaticToken(token string) gin.HandlerFunc {
	expected := []byte(token)

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, presented, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") ||
			subtle.ConstantTimeCompare([]byte(strings.TrimSpace(presented)), expected) != 1 {
			slog.WarnContext(c.Request.Context(), "unauthorized request",
				slog.String("event", "http.auth.fail"),
				slog.String("path", c.Request.URL.Path),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "missing or invalid bearer token",
			})
			return
		}
		c.Next()
	}
}
