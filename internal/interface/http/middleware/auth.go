package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/moongift/internal/infrastructure/persistence/redis"
	apperrors "github.com/xiebiao/moongift/pkg/errors"
	"github.com/xiebiao/moongift/pkg/jwt"
	"github.com/xiebiao/moongift/pkg/response"
)

// Context中的键
const (
	ctxUserID  = "user_id"
	ctxEmail   = "email"
	ctxIsStaff = "is_staff"
	ctxClaims  = "claims"
	ctxToken   = "access_token"
)

// AuthMiddleware JWT认证中间件
// 设计说明：
// 1. 从Header提取Token
// 2. 检查Token黑名单（已登出的Token）
// 3. 只接受Access Token，Refresh Token不能访问接口
// 4. 将用户信息注入Context
type AuthMiddleware struct {
	jwtManager   *jwt.Manager
	sessionStore *redis.SessionStore
}

// NewAuthMiddleware 创建认证中间件
func NewAuthMiddleware(jwtManager *jwt.Manager, sessionStore *redis.SessionStore) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
	}
}

// RequireAuth 要求登录
// 使用方式：
//
//	authorized := r.Group("/api/v1")
//	authorized.Use(authMiddleware.RequireAuth())
//	authorized.GET("/cart", cartHandler.GetCart)
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. 提取Token，格式：Authorization: Bearer <token>
		tokenString, err := bearerToken(c)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		// 2. 黑名单检查（用户已登出）
		isBlacklisted, err := m.sessionStore.IsInBlacklist(c.Request.Context(), tokenString)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		if isBlacklisted {
			response.ErrorWithCode(c, apperrors.ErrCodeTokenExpired, "Token已失效，请重新登录")
			c.Abort()
			return
		}

		// 3. 验证Token并解析Claims
		claims, err := m.jwtManager.ParseAccessToken(tokenString)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		// 4. 注入用户信息
		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxEmail, claims.Email)
		c.Set(ctxIsStaff, claims.IsStaff)
		c.Set(ctxClaims, claims)
		c.Set(ctxToken, tokenString)

		c.Next()
	}
}

// RequireStaff 要求管理员，必须放在RequireAuth之后
func (m *AuthMiddleware) RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsStaff(c) {
			response.Error(c, apperrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", apperrors.ErrUnauthorized
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", apperrors.New(apperrors.ErrCodeInvalidToken, "Token格式错误")
	}
	return parts[1], nil
}

// =========================================
// Context辅助函数（供Handler使用）
// =========================================

// GetUserID 从Context获取当前登录用户ID，未登录返回0
func GetUserID(c *gin.Context) uint {
	if userID, exists := c.Get(ctxUserID); exists {
		if uid, ok := userID.(uint); ok {
			return uid
		}
	}
	return 0
}

// GetEmail 从Context获取当前登录用户邮箱
func GetEmail(c *gin.Context) string {
	return c.GetString(ctxEmail)
}

// IsStaff 当前用户是否为管理员
func IsStaff(c *gin.Context) bool {
	return c.GetBool(ctxIsStaff)
}

// GetClaims 当前请求的Claims和原始Token（登出时使用）
func GetClaims(c *gin.Context) (*jwt.Claims, string) {
	value, exists := c.Get(ctxClaims)
	if !exists {
		return nil, ""
	}
	claims, _ := value.(*jwt.Claims)
	return claims, c.GetString(ctxToken)
}

// MustGetUserID 从Context获取用户ID（如果不存在则panic）
// 说明：用于已经通过RequireAuth中间件的Handler
func MustGetUserID(c *gin.Context) uint {
	userID := GetUserID(c)
	if userID == 0 {
		panic("user_id not found in context")
	}
	return userID
}
