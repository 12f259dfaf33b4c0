package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"retail_orders_v1_202608/internal/model"
)

// ==================== 接口定义 ====================

// ProductInfoRepository 在售条目仓储接口
type ProductInfoRepository interface {
	Create(ctx context.Context, info *model.ProductInfo) error
	GetByID(ctx context.Context, id int64) (*model.ProductInfo, error)
	GetByIDWithRelations(ctx context.Context, id int64) (*model.ProductInfo, error)

	// 导入的破坏性刷新点：整体删除某店铺的全部条目（级联带走条目参数）
	DeleteByShopID(ctx context.Context, shopID int64) error

	CreateParameter(ctx context.Context, pp *model.ProductParameter) error

	// 列表查询
	List(ctx context.Context, filter ProductInfoFilter) ([]model.ProductInfo, int64, error)
	CountByShopID(ctx context.Context, shopID int64) (int64, error)
}

// ==================== 过滤条件 ====================

// ProductInfoFilter 商品目录过滤条件
type ProductInfoFilter struct {
	ShopID     int64 // 0 表示不筛选
	CategoryID int64 // 0 表示不筛选
	Keyword    string
	Page       int
	PageSize   int
}

// ==================== 仓储实现 ====================

type productInfoRepo struct {
	db *gorm.DB
}

// NewProductInfoRepository 创建在售条目仓储
func NewProductInfoRepository(db *gorm.DB) ProductInfoRepository {
	return &productInfoRepo{db: db}
}

func (r *productInfoRepo) Create(ctx context.Context, info *model.ProductInfo) error {
	return r.db.WithContext(ctx).Create(info).Error
}

func (r *productInfoRepo) GetByID(ctx context.Context, id int64) (*model.ProductInfo, error) {
	var info model.ProductInfo
	if err := r.db.WithContext(ctx).First(&info, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &info, nil
}

func (r *productInfoRepo) GetByIDWithRelations(ctx context.Context, id int64) (*model.ProductInfo, error) {
	var info model.ProductInfo
	err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Product.Category").
		Preload("Shop").
		Preload("Parameters").
		Preload("Parameters.Parameter").
		First(&info, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &info, nil
}

// DeleteByShopID 删除店铺的全部在售条目
// 先删条目参数再删条目：sqlite 下外键级联不一定开启，显式删保证两端一致
func (r *productInfoRepo) DeleteByShopID(ctx context.Context, shopID int64) error {
	db := r.db.WithContext(ctx)

	err := db.Where("product_info_id IN (?)",
		db.Session(&gorm.Session{NewDB: true}).
			Model(&model.ProductInfo{}).
			Select("id").
			Where("shop_id = ?", shopID),
	).Delete(&model.ProductParameter{}).Error
	if err != nil {
		return err
	}

	return db.Where("shop_id = ?", shopID).Delete(&model.ProductInfo{}).Error
}

func (r *productInfoRepo) CreateParameter(ctx context.Context, pp *model.ProductParameter) error {
	return r.db.WithContext(ctx).Create(pp).Error
}

func (r *productInfoRepo) List(ctx context.Context, filter ProductInfoFilter) ([]model.ProductInfo, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.ProductInfo{})

	if filter.ShopID != 0 {
		query = query.Where("shop_id = ?", filter.ShopID)
	}
	if filter.CategoryID != 0 {
		query = query.
			Joins("JOIN products p ON p.id = product_infos.product_id").
			Where("p.category_id = ?", filter.CategoryID)
	}
	if filter.Keyword != "" {
		query = query.Where("product_infos.name LIKE ?", "%"+filter.Keyword+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var infos []model.ProductInfo
	err := query.
		Preload("Product").
		Preload("Product.Category").
		Preload("Shop").
		Preload("Parameters").
		Preload("Parameters.Parameter").
		Order("product_infos.id asc").
		Find(&infos).Error
	if err != nil {
		return nil, 0, err
	}
	return infos, total, nil
}

func (r *productInfoRepo) CountByShopID(ctx context.Context, shopID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ProductInfo{}).
		Where("shop_id = ?", shopID).Count(&count).Error
	return count, err
}
