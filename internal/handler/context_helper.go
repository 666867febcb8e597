package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/curriculum-scheduler/internal/middleware"
	"github.com/noah-isme/curriculum-scheduler/internal/models"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, _ := value.(*models.JWTClaims)
	return claims
}

// actorID names the caller for audit columns such as export_jobs.created_by.
func actorID(c *gin.Context) (string, bool) {
	claims := claimsFromContext(c)
	if claims == nil || claims.UserID == "" {
		return "", false
	}
	return claims.UserID, true
}
