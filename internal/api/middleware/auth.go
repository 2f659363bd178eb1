package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mlcinall/mentor-service/pkg/jwt"
	"github.com/mlcinall/mentor-service/pkg/response"
)

// Roles carried in the token's role claim.
const (
	RoleMentor  = "mentor"
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// JWTAuth verifies "Authorization: Bearer <token>" and injects user_id and role.
func JWTAuth(jwtMgr *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Unauthorized(c, 10002, "malformed authorization header")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "token invalid or expired")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)

		c.Next()
	}
}

// RoleAuth lets the request through when the caller holds one of allowedRoles.
func RoleAuth(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := c.Get("role")
		if !ok {
			response.Unauthorized(c, 10002, "unauthenticated")
			c.Abort()
			return
		}

		userRole, _ := role.(string)
		for _, r := range allowedRoles {
			if userRole == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, 10003, "access denied")
		c.Abort()
	}
}

// SelfOrAdmin restricts a route to the principal named by the :param path
// segment. Admins pass unconditionally.
func SelfOrAdmin(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") == RoleAdmin {
			c.Next()
			return
		}
		if uid := c.GetString("user_id"); uid == "" || uid != c.Param(param) {
			response.Forbidden(c, 10003, "access denied")
			c.Abort()
			return
		}
		c.Next()
	}
}
