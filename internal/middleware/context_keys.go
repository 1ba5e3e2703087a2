package middleware

import "github.com/gin-gonic/gin"

// userIDKey is the key used to store the acting user's ID in the Gin context.
const userIDKey = contextKey("userID")

// SetUserID stores the acting user's ID in the Gin context. The upstream
// gateway terminates authentication; this subsystem only needs an identity
// for audit fields.
func SetUserID(c *gin.Context, userID string) {
	c.Set(string(userIDKey), userID)
}

// GetUserIDFromContext retrieves the acting user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		userIDVal = c.Request.Context().Value(userIDKey)
		if userIDVal == nil {
			return "", false
		}
	}

	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}
	return userID, true
}
