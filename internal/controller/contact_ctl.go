package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"retail_orders_v1_202608/internal/api/dto"
	"retail_orders_v1_202608/internal/middleware"
	"retail_orders_v1_202608/internal/service"
)

// ==================== ContactController 联系方式控制器 ====================

// ContactController 当前用户的联系方式维护
type ContactController struct {
	userService *service.UserService
}

// NewContactController 创建联系方式控制器
func NewContactController(userService *service.UserService) *ContactController {
	return &ContactController{userService: userService}
}

// ListContacts 联系方式列表
// @Summary 当前用户联系方式列表
// @Tags Contact
// @Produce json
// @Security BearerAuth
// @Router /contacts [get]
func (c *ContactController) ListContacts(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	contacts, err := c.userService.ListContacts(ctx.Request.Context(), userID)
	if err != nil {
		fail(ctx, err)
		return
	}

	ok(ctx, "", contacts)
}

// AddContact 新增联系方式
// @Summary 新增联系方式
// @Tags Contact
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ContactRequest true "类型与值"
// @Router /contacts [post]
func (c *ContactController) AddContact(ctx *gin.Context) {
	var req dto.ContactRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	userID := middleware.GetUserID(ctx)
	contact, err := c.userService.AddContact(ctx.Request.Context(), userID, &req)
	if err != nil {
		fail(ctx, err)
		return
	}

	created(ctx, "联系方式已添加", contact)
}

// DeleteContact 删除联系方式
// @Summary 删除联系方式（仅限本人）
// @Tags Contact
// @Produce json
// @Security BearerAuth
// @Param id path int true "联系方式 ID"
// @Router /contacts/{id} [delete]
func (c *ContactController) DeleteContact(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		badRequest(ctx, err)
		return
	}

	userID := middleware.GetUserID(ctx)
	if err := c.userService.DeleteContact(ctx.Request.Context(), userID, id); err != nil {
		fail(ctx, err)
		return
	}

	ok(ctx, "联系方式已删除", nil)
}
