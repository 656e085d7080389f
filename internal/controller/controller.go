package controller

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"todoboard/internal/apperr"
	"todoboard/pkg/logger"
)

// userKey is where the auth middleware stores the requester's id.
const userKey = "user"

// currentUser returns the authenticated user id, or responds 401 and
// returns false.
func currentUser(c *gin.Context) (string, bool) {
	v, _ := c.Get(userKey)
	uid, _ := v.(string)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return uid, true
}

// respondError maps the error taxonomy to HTTP statuses: validation
// failures carry a field→message map, ownership violations are forbidden,
// missing ids are not found, everything else is internal.
func respondError(c *gin.Context, err error) {
	if ve, ok := apperr.IsValidation(err); ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"message": "The given data was invalid.",
			"errors":  ve.Fields,
		})
		return
	}
	if apperr.IsAuthorization(err) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}
	if apperr.IsNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	logger.Error(c.Request.Context(), "Request failed", "error", err, "path", c.FullPath())
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
