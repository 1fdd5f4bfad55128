package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/SAP-F-2025/quiz-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// ParseUintIDParam reads a positive numeric path parameter. On failure it has
// already written a 404, matching how an unknown quiz is reported, and returns 0.
func ParseUintIDParam(c *gin.Context, param string) uint {
	idStr := strings.TrimSpace(c.Param(param))
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error: "Quiz not found",
		})
		return 0
	}
	return uint(id)
}

// CurrentUserID returns the authenticated caller set by the auth middleware.
func CurrentUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(utils.ContextKeyUserID)
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error: "Access token required",
		})
		return 0, false
	}
	userID, ok := value.(uint)
	if !ok || userID == 0 {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error: "Invalid token",
		})
		return 0, false
	}
	return userID, true
}
