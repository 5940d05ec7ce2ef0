package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"taskman/internal/apperr"
)

func getCaller(c *gin.Context) (userID int64, isAdmin bool) {
	if v, ok := c.Get("user_id"); ok {
		switch t := v.(type) {
		case int64:
			userID = t
		case int:
			userID = int64(t)
		case float64:
			userID = int64(t)
		case string:
			if n, err := strconv.ParseInt(t, 10, 64); err == nil {
				userID = n
			}
		}
	}
	if v, ok := c.Get("is_admin"); ok {
		if b, okb := v.(bool); okb {
			isAdmin = b
		}
	}
	return
}

func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// respondError maps coded application errors to HTTP statuses.
func respondError(c *gin.Context, err error) {
	var e *apperr.Error
	if errors.As(err, &e) {
		switch e.Code {
		case apperr.CodeNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": e.Message})
		case apperr.CodeIntegrity:
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": e.Message})
		case apperr.CodeInvalid:
			c.JSON(http.StatusBadRequest, gin.H{"error": e.Message})
		case apperr.CodeForbidden:
			c.JSON(http.StatusForbidden, gin.H{"error": e.Message})
		case apperr.CodeUnauthorized:
			c.JSON(http.StatusUnauthorized, gin.H{"error": e.Message})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": e.Message})
		}
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
