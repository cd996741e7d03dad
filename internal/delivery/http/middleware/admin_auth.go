package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"go-tutoring-backend/internal/delivery/http/response"

	"github.com/gin-gonic/gin"
)

// AdminAuthMiddleware guards the admin submission endpoints with a single
// shared bearer token from the environment. When no token is configured
// the admin surface is disabled outright.
func AdminAuthMiddleware(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			response.Error(c, http.StatusServiceUnavailable, "管理APIは現在利用できません", nil)
			c.Abort()
			return
		}

		auth := c.GetHeader("Authorization")
		presented, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
			response.Error(c, http.StatusUnauthorized, "認証に失敗しました", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
