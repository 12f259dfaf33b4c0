package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ==================== JWT 配置 ====================

// JWTConfig JWT 配置
type JWTConfig struct {
	SecretKey       string        // 签名密钥
	AccessTokenTTL  time.Duration // Access Token 有效期
	RefreshTokenTTL time.Duration // Refresh Token 有效期
	Issuer          string        // 签发者
}

// DefaultJWTConfig 默认配置
func DefaultJWTConfig() *JWTConfig {
	return &JWTConfig{
		SecretKey:       "retail-orders-secret-change-in-production",
		AccessTokenTTL:  2 * time.Hour,
		RefreshTokenTTL: 7 * 24 * time.Hour,
		Issuer:          "retail-orders",
	}
}

// 全局配置
var jwtConfig = DefaultJWTConfig()

// SetJWTConfig 设置 JWT 配置
func SetJWTConfig(cfg *JWTConfig) {
	jwtConfig = cfg
}

// GetJWTConfig 获取 JWT 配置
func GetJWTConfig() *JWTConfig {
	return jwtConfig
}

// ==================== Claims 定义 ====================

// UserClaims 用户声明
// UserType 即业务角色 (shop/buyer)，价格表导入按它做能力检查
type UserClaims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	UserType string `json:"user_type"`
	jwt.RegisteredClaims
}

// ==================== Token 生成 ====================

func newToken(userID int64, username, userType, subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &UserClaims{
		UserID:   userID,
		Username: username,
		UserType: userType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    jwtConfig.Issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtConfig.SecretKey))
}

// GenerateAccessToken 生成 Access Token
func GenerateAccessToken(userID int64, username, userType string) (string, error) {
	return newToken(userID, username, userType, "access", jwtConfig.AccessTokenTTL)
}

// GenerateRefreshToken 生成 Refresh Token
func GenerateRefreshToken(userID int64, username, userType string) (string, error) {
	return newToken(userID, username, userType, "refresh", jwtConfig.RefreshTokenTTL)
}

// GenerateTokenPair 生成 Token 对
func GenerateTokenPair(userID int64, username, userType string) (accessToken, refreshToken string, err error) {
	accessToken, err = GenerateAccessToken(userID, username, userType)
	if err != nil {
		return "", "", err
	}
	refreshToken, err = GenerateRefreshToken(userID, username, userType)
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

// ==================== Token 解析 ====================

// ParseToken 解析 Token
func ParseToken(tokenString string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(jwtConfig.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*UserClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// ==================== Gin 中间件 ====================

// Context Keys
const (
	ContextKeyUserID   = "user_id"
	ContextKeyUsername = "username"
	ContextKeyUserType = "user_type"
	ContextKeyClaims   = "claims"
)

// JWTAuth JWT 认证中间件
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    401,
				"message": "未提供认证信息",
			})
			c.Abort()
			return
		}

		// 解析 Bearer Token
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    401,
				"message": "认证格式错误，应为 Bearer {token}",
			})
			c.Abort()
			return
		}

		claims, err := ParseToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    401,
				"message": "Token 无效或已过期",
			})
			c.Abort()
			return
		}

		// 只接受 Access Token
		if claims.Subject != "access" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    401,
				"message": "Token 类型错误",
			})
			c.Abort()
			return
		}

		// 注入用户信息到 Context
		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyUsername, claims.Username)
		c.Set(ContextKeyUserType, claims.UserType)
		c.Set(ContextKeyClaims, claims)

		c.Next()
	}
}

// RequireUserType 业务角色校验中间件（如价格表导入仅限 shop）
func RequireUserType(types ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userType, exists := c.Get(ContextKeyUserType)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    401,
				"message": "未获取到用户角色",
			})
			c.Abort()
			return
		}

		current := userType.(string)
		for _, t := range types {
			if current == t {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{
			"code":    403,
			"message": "无权限访问",
		})
		c.Abort()
	}
}

// ==================== 辅助函数 ====================

// GetUserID 从 Context 获取用户 ID
func GetUserID(c *gin.Context) int64 {
	if v, exists := c.Get(ContextKeyUserID); exists {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}

// GetUserType 从 Context 获取业务角色
func GetUserType(c *gin.Context) string {
	if v, exists := c.Get(ContextKeyUserType); exists {
		if t, ok := v.(string); ok {
			return t
		}
	}
	return ""
}
