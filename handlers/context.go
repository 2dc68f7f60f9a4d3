package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// requireUserID reads the user ID set by JWTAuthMiddleware and answers 401
// when it is missing.
func requireUserID(c *gin.Context) (string, bool) {
	raw, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return "", false
	}
	userID, ok := raw.(string)
	if !ok || userID == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID in context"})
		return "", false
	}
	return userID, true
}
