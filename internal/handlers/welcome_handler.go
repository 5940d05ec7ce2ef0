package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Welcome is an unauthenticated liveness page.
func Welcome(c *gin.Context) {
	c.String(http.StatusOK, "Welcome to Task Manager")
}
