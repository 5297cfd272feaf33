package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/placement-analytics-api/internal/middleware"
	"github.com/noah-isme/placement-analytics-api/internal/models"
	appErrors "github.com/noah-isme/placement-analytics-api/pkg/errors"
	"github.com/noah-isme/placement-analytics-api/pkg/response"
)

// requireClaims returns the authenticated caller or writes a 401 and returns nil.
func requireClaims(c *gin.Context) *models.JWTClaims {
	claims := middleware.CurrentUser(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return nil
	}
	return claims
}
