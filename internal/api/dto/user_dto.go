package dto

import "time"

// ==================== 请求 ====================

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=150"`
	Password  string `json:"password" binding:"required,min=6"`
	Email     string `json:"email" binding:"omitempty,email"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name"`
	UserType  string `json:"user_type" binding:"omitempty,oneof=shop buyer"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest 刷新 Token 请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ContactRequest 新增联系方式
type ContactRequest struct {
	Type  string `json:"type" binding:"required,max=50"`
	Value string `json:"value" binding:"required,max=150"`
}

// ==================== 响应 ====================

// UserInfo 用户信息
type UserInfo struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	UserType  string `json:"user_type"`
	IsStaff   bool   `json:"is_staff"`
	IsActive  bool   `json:"is_active"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         *UserInfo `json:"user"`
}

// RefreshTokenResponse 刷新 Token 响应
type RefreshTokenResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}
