package middleware

import (
	"strings"

	"betania_backend/internal/model"
	"betania_backend/internal/util"
	"betania_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const tokenCookie = "token"

// AuthMiddleware 校验 Bearer 令牌或 token cookie，并把身份写入上下文
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		}

		if tokenString == "" {
			if cookie, err := c.Cookie(tokenCookie); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, secret)
		if err != nil {
			logger.Log.Debug("JWT解析错误",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set(util.UserContextKey, claims)
		c.Next()
	}
}

// RoleMiddleware 须挂在 AuthMiddleware 之后，管理员始终放行
func RoleMiddleware(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		if user == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		allowed := user.Role == model.Admin
		for _, role := range roles {
			if user.Role == role {
				allowed = true
				break
			}
		}
		if !allowed {
			logger.Log.Debug("角色不足",
				zap.Uint("user_id", user.UserID),
				zap.String("role", string(user.Role)),
			)
			util.Forbidden(c, "Permisos insuficientes")
			c.Abort()
			return
		}
		c.Next()
	}
}
