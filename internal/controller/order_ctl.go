package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"retail_orders_v1_202608/internal/api/dto"
	"retail_orders_v1_202608/internal/middleware"
	"retail_orders_v1_202608/internal/service"
)

// ==================== OrderController 订单控制器 ====================

// OrderController 购物篮与订单
type OrderController struct {
	orderService *service.OrderService
}

// NewOrderController 创建订单控制器
func NewOrderController(orderService *service.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

// AddToBasket 加入购物篮
// @Summary 加入购物篮
// @Tags Order
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AddToBasketRequest true "条目与数量"
// @Success 201 {object} dto.OrderView
// @Failure 400 {object} map[string]interface{}
// @Router /basket [post]
func (c *OrderController) AddToBasket(ctx *gin.Context) {
	var req dto.AddToBasketRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	userID := middleware.GetUserID(ctx)
	order, err := c.orderService.AddToBasket(ctx.Request.Context(), userID, &req)
	if err != nil {
		fail(ctx, err)
		return
	}

	created(ctx, "已加入购物篮", order)
}

// GetBasket 查看购物篮
// @Summary 查看当前购物篮
// @Tags Order
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.OrderView
// @Router /basket [get]
func (c *OrderController) GetBasket(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	order, err := c.orderService.GetBasket(ctx.Request.Context(), userID)
	if err != nil {
		fail(ctx, err)
		return
	}

	ok(ctx, "", order)
}

// Confirm 确认订单
// @Summary 确认购物篮订单 (basket → accepted)
// @Tags Order
// @Produce json
// @Security BearerAuth
// @Success 201 {object} dto.OrderView
// @Failure 404 {object} map[string]interface{}
// @Router /orders/confirm [post]
func (c *OrderController) Confirm(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	order, err := c.orderService.Confirm(ctx.Request.Context(), userID)
	if err != nil {
		fail(ctx, err)
		return
	}

	created(ctx, "订单已确认", order)
}

// ListOrders 订单列表
// @Summary 当前用户订单列表
// @Tags Order
// @Produce json
// @Security BearerAuth
// @Param status query string false "状态筛选"
// @Router /orders [get]
func (c *OrderController) ListOrders(ctx *gin.Context) {
	var req dto.ListOrdersRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	userID := middleware.GetUserID(ctx)
	resp, err := c.orderService.ListOrders(ctx.Request.Context(), userID, &req)
	if err != nil {
		fail(ctx, err)
		return
	}

	ok(ctx, "", resp)
}

// GetOrderDetail 订单详情
// @Summary 订单详情
// @Tags Order
// @Produce json
// @Security BearerAuth
// @Param id path int true "订单 ID"
// @Router /orders/{id} [get]
func (c *OrderController) GetOrderDetail(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		badRequest(ctx, err)
		return
	}

	userID := middleware.GetUserID(ctx)
	order, err := c.orderService.GetOrderDetail(ctx.Request.Context(), userID, id)
	if err != nil {
		fail(ctx, err)
		return
	}

	ok(ctx, "", order)
}
