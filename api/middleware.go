package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	UserHeader = "X-User-ID"
	userKey    = "userID"
)

// UserMiddleware identifies the caller. Websocket clients cannot set headers,
// so the user_id query parameter is accepted as well.
func UserMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := strings.TrimSpace(c.GetHeader(UserHeader))
		if user == "" {
			user = strings.TrimSpace(c.Query("user_id"))
		}
		if user == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing " + UserHeader + " header"})
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

func userID(c *gin.Context) string {
	return c.GetString(userKey)
}
