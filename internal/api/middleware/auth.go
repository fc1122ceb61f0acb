package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/devHanif-git/productivityHelper/pkg/response"
)

// TokenAuth guards the API with a static bearer token. This is a
// single-owner assistant, not a multi-user system; the collaborating bot
// process holds the same token. An empty configured token disables the
// check (local development).
func TokenAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		presented, found := strings.CutPrefix(header, "Bearer ")
		if !found {
			response.Unauthorized(c, 10002, "missing bearer token")
			c.Abort()
			return
		}
		if subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
			response.Unauthorized(c, 10003, "invalid token")
			c.Abort()
			return
		}

		c.Next()
	}
}
