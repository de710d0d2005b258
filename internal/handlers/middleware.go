package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dorincreciun/Server-Pizza/internal/model"
	"github.com/dorincreciun/Server-Pizza/internal/service"
)

const ctxUserID = "userID"

// RequireAuth authenticates the Bearer access token and stores the user id on
// the context.
func RequireAuth(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string
		if ah := c.GetHeader("Authorization"); strings.HasPrefix(ah, "Bearer ") {
			token = strings.TrimPrefix(ah, "Bearer ")
		}
		if token == "" {
			Error(c, service.NewUnauthorized("Login required"))
			return
		}
		uid, err := auth.ParseAccessToken(token)
		if err != nil {
			Error(c, err)
			return
		}
		c.Set(ctxUserID, uid)
		c.Next()
	}
}

// RequireRole loads the authenticated user and checks its role. Must run
// after RequireAuth.
func RequireRole(auth service.AuthService, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := auth.User(userID(c))
		if err != nil {
			Error(c, service.NewForbidden("FORBIDDEN", "Insufficient role"))
			return
		}
		if u.Role != role && u.Role != model.RoleAdmin {
			Error(c, service.NewForbidden("FORBIDDEN", "Insufficient role"))
			return
		}
		c.Next()
	}
}

func userID(c *gin.Context) uint {
	return c.GetUint(ctxUserID)
}
