package router

import (
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/violet-vault/backend/internal/models"
)

// URLMiddleware sets the public base URL of the API for links in responses.
func URLMiddleware(url *url.URL) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(string(models.DBContextURL), url.String())
		c.Next()
	}
}
