package service

import (
	"context"

	"retail_orders_v1_202608/internal/api/dto"
	"retail_orders_v1_202608/internal/model"
	"retail_orders_v1_202608/internal/repository"
)

// ==================== ShopService 店铺服务 ====================

// ShopService 店铺资料维护
// 店铺本体在价格表导入时 get-or-create，这里只负责浏览与资料修改
type ShopService struct {
	shopRepo     repository.ShopRepository
	categoryRepo repository.CategoryRepository
}

// NewShopService 创建店铺服务
func NewShopService(shopRepo repository.ShopRepository, categoryRepo repository.CategoryRepository) *ShopService {
	return &ShopService{shopRepo: shopRepo, categoryRepo: categoryRepo}
}

// ListShops 店铺列表
func (s *ShopService) ListShops(ctx context.Context, query *dto.ShopQuery) ([]model.Shop, int64, error) {
	return s.shopRepo.List(ctx, repository.ShopFilter{
		Name:     query.Name,
		Status:   query.Status,
		Page:     query.Page,
		PageSize: query.PageSize,
	})
}

// GetShop 店铺详情
func (s *ShopService) GetShop(ctx context.Context, id int64) (*model.Shop, error) {
	shop, err := s.shopRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, notFoundErr("店铺不存在")
	}
	return shop, nil
}

// GetShopCategories 店铺参与的品类
func (s *ShopService) GetShopCategories(ctx context.Context, shopID int64) ([]model.Category, error) {
	if _, err := s.GetShop(ctx, shopID); err != nil {
		return nil, err
	}
	return s.categoryRepo.ListByShopID(ctx, shopID)
}

// UpdateShop 更新店铺资料（仅限店主）
func (s *ShopService) UpdateShop(ctx context.Context, actorID, shopID int64, req *dto.UpdateShopRequest) (*model.Shop, error) {
	shop, err := s.GetShop(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if shop.UserID != actorID {
		return nil, ErrPermissionDenied
	}

	if req.Name != "" {
		shop.Name = req.Name
	}
	if req.URL != "" {
		shop.URL = req.URL
	}
	if err := s.shopRepo.Update(ctx, shop); err != nil {
		return nil, err
	}
	return shop, nil
}

// DeleteShop 删除店铺（仅限店主）
func (s *ShopService) DeleteShop(ctx context.Context, actorID, shopID int64) error {
	shop, err := s.GetShop(ctx, shopID)
	if err != nil {
		return err
	}
	if shop.UserID != actorID {
		return ErrPermissionDenied
	}
	return s.shopRepo.Delete(ctx, shopID)
}
