package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// userIDHeader carries the acting user's identity from the upstream gateway.
const userIDHeader = "X-User-ID"

// defaultUserID is recorded in audit fields when no identity header is
// present, e.g. for scripted imports.
const defaultUserID = "system"

// Identity resolves the acting user for audit purposes. Authentication is
// terminated upstream; this subsystem trusts the forwarded header.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(userIDHeader)
		if userID == "" {
			userID = defaultUserID
		}
		SetUserID(c, userID)
		ctx := context.WithValue(c.Request.Context(), userIDKey, userID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
