package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"retail_orders_v1_202608/internal/model"
)

// ==================== 接口定义 ====================

// ShopRepository 店铺仓储接口
type ShopRepository interface {
	Create(ctx context.Context, shop *model.Shop) error
	GetByID(ctx context.Context, id int64) (*model.Shop, error)
	GetByUserID(ctx context.Context, userID int64) (*model.Shop, error)
	Update(ctx context.Context, shop *model.Shop) error
	UpdateFeedSyncedAt(ctx context.Context, id int64, t time.Time) error
	Delete(ctx context.Context, id int64) error

	// 列表查询
	List(ctx context.Context, filter ShopFilter) ([]model.Shop, int64, error)
	ListActiveWithFeed(ctx context.Context) ([]model.Shop, error)

	// 导入专用：按用户原子 get-or-create 店铺
	GetOrCreateByUser(ctx context.Context, userID int64, name, url string) (*model.Shop, error)
}

// ==================== 过滤条件 ====================

// ShopFilter 店铺过滤条件
type ShopFilter struct {
	Name     string
	Status   int // 0 表示不筛选
	Page     int
	PageSize int
}

// ==================== 仓储实现 ====================

type shopRepo struct {
	db *gorm.DB
}

// NewShopRepository 创建店铺仓储
func NewShopRepository(db *gorm.DB) ShopRepository {
	return &shopRepo{db: db}
}

func (r *shopRepo) Create(ctx context.Context, shop *model.Shop) error {
	return r.db.WithContext(ctx).Create(shop).Error
}

func (r *shopRepo) GetByID(ctx context.Context, id int64) (*model.Shop, error) {
	var shop model.Shop
	if err := r.db.WithContext(ctx).First(&shop, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &shop, nil
}

func (r *shopRepo) GetByUserID(ctx context.Context, userID int64) (*model.Shop, error) {
	var shop model.Shop
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&shop).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &shop, nil
}

func (r *shopRepo) Update(ctx context.Context, shop *model.Shop) error {
	return r.db.WithContext(ctx).Save(shop).Error
}

func (r *shopRepo) UpdateFeedSyncedAt(ctx context.Context, id int64, t time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Shop{}).
		Where("id = ?", id).Update("feed_synced_at", t).Error
}

func (r *shopRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Shop{}, id).Error
}

func (r *shopRepo) List(ctx context.Context, filter ShopFilter) ([]model.Shop, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Shop{})

	if filter.Name != "" {
		query = query.Where("name LIKE ?", "%"+filter.Name+"%")
	}
	if filter.Status != 0 {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var shops []model.Shop
	if err := query.Order("id asc").Find(&shops).Error; err != nil {
		return nil, 0, err
	}
	return shops, total, nil
}

// ListActiveWithFeed 查询所有配置了价格表地址的正常店铺（定时刷新用）
func (r *shopRepo) ListActiveWithFeed(ctx context.Context) ([]model.Shop, error) {
	var shops []model.Shop
	err := r.db.WithContext(ctx).
		Where("status = ? AND url <> ''", model.ShopStatusActive).
		Find(&shops).Error
	return shops, err
}

// GetOrCreateByUser 按 user get-or-create 店铺，并刷新名称与源地址
// UserID 上有唯一索引，一个用户只有一个店铺
func (r *shopRepo) GetOrCreateByUser(ctx context.Context, userID int64, name, url string) (*model.Shop, error) {
	shop, err := r.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		shop = &model.Shop{
			Name:   name,
			URL:    url,
			UserID: userID,
			Status: model.ShopStatusActive,
		}
		if err := r.db.WithContext(ctx).Create(shop).Error; err != nil {
			return nil, err
		}
		return shop, nil
	}

	// 已有店铺：同步名称与最新的源地址
	shop.Name = name
	if url != "" {
		shop.URL = url
	}
	if err := r.db.WithContext(ctx).Save(shop).Error; err != nil {
		return nil, err
	}
	return shop, nil
}
