package controller

import (
	"github.com/gin-gonic/gin"

	"retail_orders_v1_202608/internal/api/dto"
	"retail_orders_v1_202608/internal/middleware"
	"retail_orders_v1_202608/internal/service"
)

// ==================== AuthController 认证控制器 ====================

// AuthController 注册/登录/资料
type AuthController struct {
	userService *service.UserService
}

// NewAuthController 创建认证控制器
func NewAuthController(userService *service.UserService) *AuthController {
	return &AuthController{userService: userService}
}

// Register 用户注册
// @Summary 用户注册
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "注册信息"
// @Success 201 {object} dto.UserInfo
// @Failure 400 {object} map[string]interface{}
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	user, err := c.userService.Register(ctx.Request.Context(), &req)
	if err != nil {
		fail(ctx, err)
		return
	}

	created(ctx, "注册成功", user)
}

// Login 用户登录
// @Summary 用户登录
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "登录信息"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} map[string]interface{}
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	resp, err := c.userService.Login(ctx.Request.Context(), &req)
	if err != nil {
		fail(ctx, err)
		return
	}

	ok(ctx, "登录成功", resp)
}

// RefreshToken 刷新 Token
// @Summary 刷新 Token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh Token"
// @Success 200 {object} dto.RefreshTokenResponse
// @Router /auth/refresh [post]
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	resp, err := c.userService.RefreshToken(ctx.Request.Context(), &req)
	if err != nil {
		fail(ctx, err)
		return
	}

	ok(ctx, "刷新成功", resp)
}

// GetProfile 获取当前用户信息
// @Summary 获取当前用户信息
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserInfo
// @Router /auth/profile [get]
func (c *AuthController) GetProfile(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	user, err := c.userService.GetProfile(ctx.Request.Context(), userID)
	if err != nil {
		fail(ctx, err)
		return
	}

	ok(ctx, "", user)
}
