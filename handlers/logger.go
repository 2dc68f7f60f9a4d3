package handlers

import (
	"beu/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getLogger returns the request logger set on the context, or the global
// logger tagged with the caller's user ID.
func getLogger(c *gin.Context) *zap.Logger {
	if l, exists := c.Get("logger"); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	logger := utils.GetLogger()
	if userID := c.GetString("userID"); userID != "" {
		logger = logger.With(zap.String("userID", userID))
	}
	return logger
}
