package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func jsonError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

// internalError logs the real cause and returns a generic message so
// backend details never leak to the client.
func internalError(c *gin.Context, err error) {
	zap.L().Error("unexpected handler error",
		zap.String("path", c.Request.URL.Path), zap.Error(err))
	jsonError(c, http.StatusInternalServerError, "internal server error")
}

// idFromQuery parses the ?id= query parameter used by delete routes.
func idFromQuery(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Query("id"))
	if err != nil || id <= 0 {
		jsonError(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// idFromParam parses the :id path parameter on nested project routes.
func idFromParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		jsonError(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}
