package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"retail_orders_v1_202608/internal/api/dto"
	"retail_orders_v1_202608/internal/middleware"
	"retail_orders_v1_202608/internal/service"
)

// ==================== PartnerController 供货商控制器 ====================

// PartnerController 价格表导入入口
type PartnerController struct {
	importService *service.ImportService
}

// NewPartnerController 创建供货商控制器
func NewPartnerController(importService *service.ImportService) *PartnerController {
	return &PartnerController{importService: importService}
}

// UpdatePriceList 导入价格表
// @Summary 从 URL 导入价格表，整体刷新本店目录
// @Tags Partner
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ImportRequest true "价格表地址"
// @Success 201 {object} dto.ImportResult
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 502 {object} map[string]interface{}
// @Router /partner/update [post]
func (c *PartnerController) UpdatePriceList(ctx *gin.Context) {
	var req dto.ImportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	userID := middleware.GetUserID(ctx)
	result, err := c.importService.ImportFromURL(ctx.Request.Context(), userID, req.URL)
	if err != nil {
		fail(ctx, err)
		return
	}

	created(ctx, "价格表已导入", result)
}

// State 导入入口探活（原接口对 GET 返回 200）
// @Summary 导入入口探活
// @Tags Partner
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /partner/update [get]
func (c *PartnerController) State(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "ok",
		"data":    gin.H{"method": "get"},
	})
}
