package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"lostfound_backend/internal/auth"
	"lostfound_backend/internal/logger"
)

// AuthMiddleware verifies the bearer token and resolves the caller before
// any handler logic runs. The secret is injected at construction, not read
// from the environment per request.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := extractToken(c)
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing or invalid"})
			return
		}

		claims, err := auth.ParseToken(secret, tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set("userID", claims.UserID)
		ctx := logger.WithUserID(c.Request.Context(), claims.UserID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// extractToken reads "Authorization: Bearer <token>" with an x-auth-token
// fallback the SPA also sends.
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return c.GetHeader("x-auth-token")
}
