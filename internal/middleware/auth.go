package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"precon-tracker/internal/auth"
	"precon-tracker/internal/database"
	"precon-tracker/internal/models"
	"precon-tracker/internal/permissions"
)

// context key the authenticated user is stored under
const CurrentUserKey = "CurrentUser"

// SessionChecker is the slice of the session store the middleware
// needs. Satisfied by *session.Store; tests substitute a map-backed
// fake.
type SessionChecker interface {
	Exists(ctx context.Context, sessionID string) (bool, error)
}

// RequireAuth validates the bearer token, checks the session has not
// been revoked, loads the user row and stores it in the gin context.
func RequireAuth(tokens *auth.TokenService, sessions SessionChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		claims, err := tokens.Verify(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		active, err := sessions.Exists(c.Request.Context(), claims.SessionID)
		if err != nil {
			zap.L().Error("session check failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		if !active {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
			return
		}

		var user models.User
		if err := database.DB.First(&user, claims.UserID).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		if !user.Active {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "account disabled"})
			return
		}

		c.Set(CurrentUserKey, user)
		c.Next()
	}
}

// RequirePermission rejects callers whose role fails the permission
// matrix for the given action. Must run after RequireAuth.
func RequirePermission(action permissions.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}
		if !permissions.Has(user.Role, action) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			return
		}
		c.Next()
	}
}

// CurrentUser fetches the user RequireAuth stored on the context.
func CurrentUser(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(CurrentUserKey)
	if !ok {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}
