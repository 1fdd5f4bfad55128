package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/SAP-F-2025/quiz-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// Recovery turns a panic into a 500 {error:"Server error"}. Outside production
// the panic value is returned as details.
func Recovery(logger utils.Logger, production bool) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		var err error
		switch x := recovered.(type) {
		case error:
			err = x
		case string:
			err = errors.New(x)
		default:
			err = fmt.Errorf("unknown panic: %v", x)
		}

		utils.GetLoggerFromContext(c, logger).LogError(err, "Recovered from panic")

		body := gin.H{"error": "Server error"}
		if !production {
			body["details"] = err.Error()
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, body)
	})
}
