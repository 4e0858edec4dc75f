package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CatalogCache marks catalog GET responses as publicly cacheable. Brand
// and model lists change rarely and carry no personal data.
func CatalogCache(maxAgeSeconds int) gin.HandlerFunc {
	value := fmt.Sprintf("public, max-age=%d", maxAgeSeconds)
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet {
			c.Header("Cache-Control", value)
		} else {
			c.Header("Cache-Control", "no-store")
		}
		c.Next()
	}
}
