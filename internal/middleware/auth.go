package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"adherence-srv/pkg/jwt"
	"adherence-srv/pkg/response"
)

// ServiceAuth guards the internal detector-trigger routes with a bearer
// service token.
func ServiceAuth(verifier jwt.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			response.Error(c, http.StatusUnauthorized, "missing bearer token")
			return
		}

		if err := verifier.Verify(token); err != nil {
			response.Error(c, http.StatusUnauthorized, "invalid service token")
			return
		}

		c.Next()
	}
}
