package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"retail_orders_v1_202608/internal/api/dto"
	"retail_orders_v1_202608/internal/model"
	"retail_orders_v1_202608/internal/repository"
	"retail_orders_v1_202608/pkg/pricelist"
)

// ==================== ImportService 价格表导入服务 ====================

// ImportService 价格表导入
// 流程：拉取 → 解析 → 单事务内刷新目录（品类 get-or-create、
// 在售条目删除重建、参数挂接）。任何一步失败整体回滚，
// 读者永远不会看到半空的店铺目录
type ImportService struct {
	userRepo repository.UserRepository
	shopRepo repository.ShopRepository
	uow      *repository.CatalogUnitOfWork
	fetcher  pricelist.Fetcher
	logger   *zap.Logger
}

// NewImportService 创建导入服务
func NewImportService(
	userRepo repository.UserRepository,
	shopRepo repository.ShopRepository,
	uow *repository.CatalogUnitOfWork,
	fetcher pricelist.Fetcher,
	logger *zap.Logger,
) *ImportService {
	return &ImportService{
		userRepo: userRepo,
		shopRepo: shopRepo,
		uow:      uow,
		fetcher:  fetcher,
		logger:   logger,
	}
}

// ==================== 导入入口 ====================

// ImportFromURL 以 actor 的身份从 URL 导入价格表
// 能力前置检查放在服务入口处，而不是散在各个分支里
func (s *ImportService) ImportFromURL(ctx context.Context, actorID int64, feedURL string) (*dto.ImportResult, error) {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, ErrAuthRequired
	}
	if !actor.IsActive {
		return nil, ErrPermissionDenied
	}
	if !actor.IsShopOwner() {
		return nil, fmt.Errorf("%w: 价格表导入仅限供货商账号", ErrPermissionDenied)
	}

	if err := pricelist.ValidateURL(feedURL); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	raw, err := s.fetcher.Fetch(ctx, feedURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedFetch, err)
	}

	feed, err := pricelist.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	result, err := s.applyFeed(ctx, actor, feed, feedURL)
	if err != nil {
		return nil, err
	}

	s.logger.Info("价格表导入完成",
		zap.Int64("shop_id", result.ShopID),
		zap.String("shop", result.ShopName),
		zap.Int("categories", result.Categories),
		zap.Int("goods", result.Goods))
	return result, nil
}

// RefreshShop 用店铺存储的源地址重新导入（定时刷新用）
func (s *ImportService) RefreshShop(ctx context.Context, shopID int64) (*dto.ImportResult, error) {
	shop, err := s.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, notFoundErr("店铺不存在")
	}
	if shop.URL == "" {
		return nil, validationErr("店铺 %d 未配置价格表地址", shopID)
	}
	return s.ImportFromURL(ctx, shop.UserID, shop.URL)
}

// ==================== 目录刷新事务 ====================

// applyFeed 在单个事务内执行破坏性刷新
func (s *ImportService) applyFeed(ctx context.Context, actor *model.SysUser, feed *pricelist.Feed, feedURL string) (*dto.ImportResult, error) {
	var result dto.ImportResult

	err := s.uow.Transaction(ctx, func(uow *repository.CatalogUnitOfWork) error {
		// 1. 解析/创建 actor 的店铺（一个用户一个店铺）
		shop, err := uow.Shops.GetOrCreateByUser(ctx, actor.ID, feed.Shop, feedURL)
		if err != nil {
			return fmt.Errorf("店铺 get-or-create 失败: %w", err)
		}

		// 2. 品类字典：按文档提供的 id get-or-create，并把店铺挂上去
		for _, c := range feed.Categories {
			category, err := uow.Categories.GetOrCreate(ctx, c.ID, c.Name)
			if err != nil {
				return fmt.Errorf("品类 %d 处理失败: %w", c.ID, err)
			}
			if err := uow.Categories.AttachShop(ctx, category, shop); err != nil {
				return fmt.Errorf("品类 %d 关联店铺失败: %w", c.ID, err)
			}
		}

		// 3. 破坏性刷新点：清空该店铺的全部在售条目
		// 在事务里做，失败回滚后旧目录原样保留
		if err := uow.ProductInfos.DeleteByShopID(ctx, shop.ID); err != nil {
			return fmt.Errorf("清空店铺条目失败: %w", err)
		}

		// 4. 按文档重建在售条目
		for _, g := range feed.Goods {
			category, err := uow.Categories.GetByID(ctx, g.Category)
			if err != nil {
				return err
			}
			if category == nil {
				// Parse 已校验文档内闭合，到这里说明本次事务内建品类失败了
				return validationErr("商品 %q 引用的品类 %d 不存在", g.Name, g.Category)
			}
			if g.Price < 0 || g.PriceRRC < 0 || g.Quantity < 0 {
				return validationErr("商品 %q 的价格/库存不能为负", g.Name)
			}

			product, err := uow.Products.GetOrCreate(ctx, category.ID, g.Name)
			if err != nil {
				return fmt.Errorf("商品 %q get-or-create 失败: %w", g.Name, err)
			}

			info := &model.ProductInfo{
				ProductID:  product.ID,
				ShopID:     shop.ID,
				ExternalID: g.ID,
				Model:      g.Model,
				Name:       g.Name,
				Quantity:   g.Quantity,
				Price:      g.Price,
				PriceRRC:   g.PriceRRC,
			}
			if err := uow.ProductInfos.Create(ctx, info); err != nil {
				return fmt.Errorf("创建条目 %q 失败: %w", g.Name, err)
			}

			// 5. 参数：名字典全局复用，值挂在条目上
			for name, value := range g.Parameters {
				parameter, err := uow.Parameters.GetOrCreate(ctx, name)
				if err != nil {
					return fmt.Errorf("参数 %q get-or-create 失败: %w", name, err)
				}
				pp := &model.ProductParameter{
					ProductInfoID: info.ID,
					ParameterID:   parameter.ID,
					Value:         fmt.Sprint(value),
				}
				if err := uow.ProductInfos.CreateParameter(ctx, pp); err != nil {
					return fmt.Errorf("参数 %q 挂接失败: %w", name, err)
				}
			}
		}

		now := time.Now()
		if err := uow.Shops.UpdateFeedSyncedAt(ctx, shop.ID, now); err != nil {
			return err
		}

		result = dto.ImportResult{
			ShopID:     shop.ID,
			ShopName:   shop.Name,
			Categories: len(feed.Categories),
			Goods:      len(feed.Goods),
			SyncedAt:   now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
