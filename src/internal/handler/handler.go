package handler

import (
	"net/http"

	"tracker-api/src/internal/middleware"
	"tracker-api/src/internal/service"
	"tracker-api/src/internal/utils"

	"github.com/gin-gonic/gin"
)

// actorFromContext assembles the acting principal from the claims the auth
// middleware stored in the request context. Returns false after writing a
// 401 when the claims are missing.
func actorFromContext(c *gin.Context) (*service.Actor, string, bool) {
	orgID, exists := middleware.GetOrganizationFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(401, "Unauthorized",
			"Organization claim not found in token"))
		return nil, "", false
	}

	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists || userID == "" {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(401, "Unauthorized",
			"Subject claim not found in token"))
		return nil, "", false
	}

	username, _ := middleware.GetUsernameFromContext(c)
	scopes, _ := middleware.GetScopesFromContext(c)

	return &service.Actor{
		UserID:   userID,
		Username: username,
		Scopes:   scopes,
	}, orgID, true
}
