package service

import (
	"context"

	"retail_orders_v1_202608/internal/api/dto"
	"retail_orders_v1_202608/internal/model"
	"retail_orders_v1_202608/internal/repository"
)

// ==================== CatalogService 目录浏览服务 ====================

// CatalogService 商品目录只读浏览
type CatalogService struct {
	infoRepo     repository.ProductInfoRepository
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
}

// NewCatalogService 创建目录服务
func NewCatalogService(
	infoRepo repository.ProductInfoRepository,
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
) *CatalogService {
	return &CatalogService{
		infoRepo:     infoRepo,
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

// ListCatalog 在售条目列表（按店铺/品类/关键词过滤）
func (s *CatalogService) ListCatalog(ctx context.Context, query *dto.CatalogQuery) ([]model.ProductInfo, int64, error) {
	return s.infoRepo.List(ctx, repository.ProductInfoFilter{
		ShopID:     query.ShopID,
		CategoryID: query.CategoryID,
		Keyword:    query.Keyword,
		Page:       query.Page,
		PageSize:   query.PageSize,
	})
}

// GetCatalogItem 在售条目详情
func (s *CatalogService) GetCatalogItem(ctx context.Context, id int64) (*model.ProductInfo, error) {
	info, err := s.infoRepo.GetByIDWithRelations(ctx, id)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return nil, notFoundErr("在售条目不存在")
	}
	return info, nil
}

// ListCategories 品类字典
func (s *CatalogService) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.categoryRepo.List(ctx)
}

// ListProducts 商品字典
func (s *CatalogService) ListProducts(ctx context.Context, query *dto.ProductQuery) ([]model.Product, int64, error) {
	return s.productRepo.List(ctx, repository.ProductFilter{
		CategoryID: query.CategoryID,
		Name:       query.Name,
		Page:       query.Page,
		PageSize:   query.PageSize,
	})
}
