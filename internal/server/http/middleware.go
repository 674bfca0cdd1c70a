package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vaultcore/api/internal/server/models"
	"github.com/vaultcore/api/internal/server/permission"
	"github.com/vaultcore/api/internal/server/services"
)

// contextUserKey is where the middleware stores the authenticated account.
const contextUserKey = "current_user"

// AuthMiddleware authenticates the request from the Authorization header and
// stores the account in the gin context. All failures respond 401 with the
// same body, so a probe cannot tell a missing token from a forged one.
func AuthMiddleware(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractTokenFromHeader(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		user, err := auth.Authorize(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		c.Set(contextUserKey, user)
		c.Next()
	}
}

// RequireAction gates a route group on the permission check for the
// authenticated account's role. Must run after AuthMiddleware.
func RequireAction(action permission.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}
		if !permission.Allowed(user.Role, action) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) *models.User {
	v, ok := c.Get(contextUserKey)
	if !ok {
		return nil
	}
	user, ok := v.(*models.User)
	if !ok {
		return nil
	}
	return user
}

func extractTokenFromHeader(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
