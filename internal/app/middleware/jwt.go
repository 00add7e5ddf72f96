package middleware

import (
	"strings"

	"github.com/aid4sure/VeganEcosystem/internal/domain/services"
	"github.com/aid4sure/VeganEcosystem/internal/error/code"
	"github.com/aid4sure/VeganEcosystem/internal/error/response"

	"github.com/gin-gonic/gin"
)

// 认证信息在 gin 上下文中的键
const (
	ContextTokenKey    = "token"
	ContextUsernameKey = "username"
	ContextRoleKey     = "role"
	ContextClaimsKey   = "claims"
)

// ExtractToken 从授权头中提取token
func ExtractToken(authHeader string) string {
	// 检查并移除 "Bearer " 前缀
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return strings.TrimSpace(authHeader)
}

// AuthenticateAdmin 验证管理员令牌：签名有效、未过期且未注销
func AuthenticateAdmin(jwtService services.InterfaceJWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.FailWithMessage(c, code.ErrTokenInvalid, "authorization header is required", nil)
			return
		}

		// 提取token
		tokenString := ExtractToken(authHeader)
		if !jwtService.Verify(c.Request.Context(), tokenString) {
			response.Unauthorized(c)
			return
		}

		claims, err := jwtService.ExtractClaims(tokenString)
		if err != nil {
			response.Unauthorized(c)
			return
		}

		// 存储claims到上下文
		c.Set(ContextTokenKey, tokenString)
		c.Set(ContextUsernameKey, claims.Subject)
		c.Set(ContextRoleKey, claims.Role)
		c.Set(ContextClaimsKey, claims)
		c.Next()
	}
}
