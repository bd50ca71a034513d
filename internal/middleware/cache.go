package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// CacheControl lets clients keep responses that can never change, such as a
// submission looked up by reference number. Responses hold personal data, so
// only private caches may store them.
func CacheControl(maxAgeSeconds int) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", fmt.Sprintf("private, max-age=%d, immutable", maxAgeSeconds))
		c.Next()
	}
}

// NoStore marks responses that must always be fetched fresh.
func NoStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}
