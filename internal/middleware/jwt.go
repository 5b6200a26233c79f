package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yashp/portfolio-assistant/internal/pkg/errcode"
	"github.com/yashp/portfolio-assistant/internal/pkg/jwt"
	"github.com/yashp/portfolio-assistant/internal/pkg/response"
)

const ContextRoleKey = "role"

// AdminAuth guards the reload/stats surface with a bearer token minted
// by the admin login endpoint.
func AdminAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, errcode.ErrUnauthorized, "missing authorization")
			c.Abort()
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, errcode.ErrUnauthorized, "invalid authorization")
			c.Abort()
			return
		}
		claims, err := jwt.ParseToken(parts[1], secret)
		if err != nil || claims.Role != jwt.RoleAdmin {
			response.Error(c, errcode.ErrUnauthorized, "invalid token")
			c.Abort()
			return
		}
		c.Set(ContextRoleKey, claims.Role)
		c.Next()
	}
}
