package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"freightops/internal/core/apperror"
)

// Auth validates the static bearer token shared with the automation
// platform. When a bcrypt hash is configured it takes precedence over the
// plaintext token; plaintext comparison is constant-time. Auth failures are
// rejected before the gateway, so they are never business-logged.
func Auth(token, tokenHash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "missing authorization header")
			return
		}

		presented, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || presented == "" {
			abortUnauthorized(c, "invalid authorization header")
			return
		}

		if tokenHash != "" {
			if bcrypt.CompareHashAndPassword([]byte(tokenHash), []byte(presented)) != nil {
				abortUnauthorized(c, "invalid token")
				return
			}
		} else if subtle.ConstantTimeCompare([]byte(token), []byte(presented)) != 1 {
			abortUnauthorized(c, "invalid token")
			return
		}

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, msg string) {
	_ = c.Error(apperror.NewUnauthorized(msg))
	c.Abort()
}
