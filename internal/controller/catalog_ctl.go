package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"retail_orders_v1_202608/internal/api/dto"
	"retail_orders_v1_202608/internal/service"
)

// ==================== CatalogController 目录控制器 ====================

// CatalogController 商品目录浏览
type CatalogController struct {
	catalogService *service.CatalogService
}

// NewCatalogController 创建目录控制器
func NewCatalogController(catalogService *service.CatalogService) *CatalogController {
	return &CatalogController{catalogService: catalogService}
}

// ListCatalog 在售条目列表
// @Summary 商品目录（按店铺/品类/关键词过滤）
// @Tags Catalog
// @Produce json
// @Param shop_id query int false "店铺 ID"
// @Param category_id query int false "品类 ID"
// @Param keyword query string false "名称关键词"
// @Router /catalog [get]
func (c *CatalogController) ListCatalog(ctx *gin.Context) {
	var query dto.CatalogQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		badRequest(ctx, err)
		return
	}

	infos, total, err := c.catalogService.ListCatalog(ctx.Request.Context(), &query)
	if err != nil {
		fail(ctx, err)
		return
	}

	ok(ctx, "", gin.H{"total": total, "list": infos})
}

// GetCatalogItem 在售条目详情
// @Summary 在售条目详情
// @Tags Catalog
// @Produce json
// @Param id path int true "条目 ID"
// @Router /catalog/{id} [get]
func (c *CatalogController) GetCatalogItem(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		badRequest(ctx, err)
		return
	}

	info, err := c.catalogService.GetCatalogItem(ctx.Request.Context(), id)
	if err != nil {
		fail(ctx, err)
		return
	}

	ok(ctx, "", info)
}

// ListCategories 品类字典
// @Summary 品类列表
// @Tags Catalog
// @Produce json
// @Router /categories [get]
func (c *CatalogController) ListCategories(ctx *gin.Context) {
	categories, err := c.catalogService.ListCategories(ctx.Request.Context())
	if err != nil {
		fail(ctx, err)
		return
	}

	ok(ctx, "", categories)
}

// ListProducts 商品字典
// @Summary 商品列表
// @Tags Catalog
// @Produce json
// @Param category_id query int false "品类 ID"
// @Param name query string false "名称关键词"
// @Router /products [get]
func (c *CatalogController) ListProducts(ctx *gin.Context) {
	var query dto.ProductQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		badRequest(ctx, err)
		return
	}

	products, total, err := c.catalogService.ListProducts(ctx.Request.Context(), &query)
	if err != nil {
		fail(ctx, err)
		return
	}

	ok(ctx, "", gin.H{"total": total, "list": products})
}
