package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"retail_orders_v1_202608/internal/api/dto"
	"retail_orders_v1_202608/internal/middleware"
	"retail_orders_v1_202608/internal/service"
)

// ==================== ShopController 店铺控制器 ====================

// ShopController 店铺浏览与资料维护
type ShopController struct {
	shopService *service.ShopService
}

// NewShopController 创建店铺控制器
func NewShopController(shopService *service.ShopService) *ShopController {
	return &ShopController{shopService: shopService}
}

// ListShops 店铺列表
// @Summary 店铺列表
// @Tags Shop
// @Produce json
// @Param name query string false "名称模糊匹配"
// @Param status query int false "状态"
// @Router /shops [get]
func (c *ShopController) ListShops(ctx *gin.Context) {
	var query dto.ShopQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		badRequest(ctx, err)
		return
	}

	shops, total, err := c.shopService.ListShops(ctx.Request.Context(), &query)
	if err != nil {
		fail(ctx, err)
		return
	}

	ok(ctx, "", gin.H{"total": total, "list": shops})
}

// GetShop 店铺详情
// @Summary 店铺详情
// @Tags Shop
// @Produce json
// @Param id path int true "店铺 ID"
// @Router /shops/{id} [get]
func (c *ShopController) GetShop(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		badRequest(ctx, err)
		return
	}

	shop, err := c.shopService.GetShop(ctx.Request.Context(), id)
	if err != nil {
		fail(ctx, err)
		return
	}

	ok(ctx, "", shop)
}

// GetShopCategories 店铺品类
// @Summary 店铺参与的品类列表
// @Tags Shop
// @Produce json
// @Param id path int true "店铺 ID"
// @Router /shops/{id}/categories [get]
func (c *ShopController) GetShopCategories(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		badRequest(ctx, err)
		return
	}

	categories, err := c.shopService.GetShopCategories(ctx.Request.Context(), id)
	if err != nil {
		fail(ctx, err)
		return
	}

	ok(ctx, "", categories)
}

// UpdateShop 更新店铺资料
// @Summary 更新店铺资料（仅限店主）
// @Tags Shop
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "店铺 ID"
// @Param request body dto.UpdateShopRequest true "资料"
// @Router /shops/{id} [put]
func (c *ShopController) UpdateShop(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		badRequest(ctx, err)
		return
	}

	var req dto.UpdateShopRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	userID := middleware.GetUserID(ctx)
	shop, err := c.shopService.UpdateShop(ctx.Request.Context(), userID, id, &req)
	if err != nil {
		fail(ctx, err)
		return
	}

	ok(ctx, "店铺资料已更新", shop)
}

// DeleteShop 删除店铺
// @Summary 删除店铺（仅限店主）
// @Tags Shop
// @Produce json
// @Security BearerAuth
// @Param id path int true "店铺 ID"
// @Router /shops/{id} [delete]
func (c *ShopController) DeleteShop(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		badRequest(ctx, err)
		return
	}

	userID := middleware.GetUserID(ctx)
	if err := c.shopService.DeleteShop(ctx.Request.Context(), userID, id); err != nil {
		fail(ctx, err)
		return
	}

	ok(ctx, "店铺已删除", nil)
}
