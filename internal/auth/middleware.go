package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/quickshare/api/internal/auth/authctx"
)

// ContextUser represents the authenticated principal stored in the
// request context.
type ContextUser = authctx.ContextUser

// Middleware validates bearer tokens and injects the authenticated user.
func Middleware(service *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		token := extractBearerToken(authHeader)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header"})
			return
		}

		claims, err := service.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		authctx.Set(c, ContextUser{
			ID:    claims.AccountID,
			Email: claims.Email,
			Role:  claims.Role,
		})

		c.Next()
	}
}

// CurrentUser extracts the authenticated user from the context.
func CurrentUser(c *gin.Context) (ContextUser, bool) {
	return authctx.CurrentUser(c)
}

func extractBearerToken(header string) string {
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
