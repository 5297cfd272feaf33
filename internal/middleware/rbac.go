package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/placement-analytics-api/internal/models"
	appErrors "github.com/noah-isme/placement-analytics-api/pkg/errors"
	"github.com/noah-isme/placement-analytics-api/pkg/response"
)

// RequireRoles only lets callers with one of the roles through.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}
	return func(c *gin.Context) {
		claims := CurrentUser(c)
		if claims == nil {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		if _, ok := allowed[claims.Role]; !ok {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}
