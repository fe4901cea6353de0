package middleware

import (
	"github.com/gin-gonic/gin"
)

// Cache-Control directives used by the API routes.
const (
	CachePrivateShort = "private, max-age=60"
	CacheNoStore      = "no-store"
)

// CacheControl sets the Cache-Control header on every response of the group.
func CacheControl(directive string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", directive)
		c.Next()
	}
}
