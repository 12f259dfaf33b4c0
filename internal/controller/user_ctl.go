package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"retail_orders_v1_202608/internal/repository"
	"retail_orders_v1_202608/internal/service"
)

// ==================== UserController 用户控制器 ====================

// UserController 用户查询（注册/登录见 AuthController）
type UserController struct {
	userService *service.UserService
}

// NewUserController 创建用户控制器
func NewUserController(userService *service.UserService) *UserController {
	return &UserController{userService: userService}
}

// ListUsers 用户列表
// @Summary 用户列表
// @Tags User
// @Produce json
// @Security BearerAuth
// @Param username query string false "用户名模糊匹配"
// @Param user_type query string false "shop / buyer"
// @Router /users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	filter := repository.UserFilter{
		Username: ctx.Query("username"),
		UserType: ctx.Query("user_type"),
	}
	filter.Page, _ = strconv.Atoi(ctx.DefaultQuery("page", "1"))
	filter.PageSize, _ = strconv.Atoi(ctx.DefaultQuery("page_size", "20"))

	users, total, err := c.userService.ListUsers(ctx.Request.Context(), filter)
	if err != nil {
		fail(ctx, err)
		return
	}

	ok(ctx, "", gin.H{"total": total, "list": users})
}

// GetUser 用户详情
// @Summary 用户详情
// @Tags User
// @Produce json
// @Security BearerAuth
// @Param id path int true "用户 ID"
// @Router /users/{id} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		badRequest(ctx, err)
		return
	}

	user, err := c.userService.GetUser(ctx.Request.Context(), id)
	if err != nil {
		fail(ctx, err)
		return
	}

	ok(ctx, "", user)
}
