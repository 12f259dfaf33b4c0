package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"retail_orders_v1_202608/internal/model"
)

// ==================== CategoryRepository ====================

// CategoryRepository 品类仓储接口
// 品类 id 由价格表外部提供，get-or-create 以 id 为键
type CategoryRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Category, error)
	GetOrCreate(ctx context.Context, id int64, name string) (*model.Category, error)
	AttachShop(ctx context.Context, category *model.Category, shop *model.Shop) error
	List(ctx context.Context) ([]model.Category, error)
	ListByShopID(ctx context.Context, shopID int64) ([]model.Category, error)
}

type categoryRepo struct {
	db *gorm.DB
}

// NewCategoryRepository 创建品类仓储
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepo) GetOrCreate(ctx context.Context, id int64, name string) (*model.Category, error) {
	category, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		category = &model.Category{ID: id, Name: name}
		if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
			return nil, err
		}
		return category, nil
	}

	// id 是字典键，重复导入时以最新名称为准
	if category.Name != name {
		category.Name = name
		if err := r.db.WithContext(ctx).Save(category).Error; err != nil {
			return nil, err
		}
	}
	return category, nil
}

// AttachShop 把店铺挂到品类的店铺集合上（join 行已存在时为空操作）
func (r *categoryRepo) AttachShop(ctx context.Context, category *model.Category, shop *model.Shop) error {
	return r.db.WithContext(ctx).Model(category).Association("Shops").Append(shop)
}

func (r *categoryRepo) List(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	err := r.db.WithContext(ctx).Order("id asc").Find(&categories).Error
	return categories, err
}

func (r *categoryRepo) ListByShopID(ctx context.Context, shopID int64) ([]model.Category, error) {
	var categories []model.Category
	err := r.db.WithContext(ctx).
		Joins("JOIN shop_categories sc ON sc.category_id = categories.id").
		Where("sc.shop_id = ?", shopID).
		Order("categories.id asc").
		Find(&categories).Error
	return categories, err
}

// ==================== ProductRepository ====================

// ProductRepository 商品字典仓储接口
type ProductRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	GetOrCreate(ctx context.Context, categoryID int64, name string) (*model.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]model.Product, int64, error)
}

// ProductFilter 商品过滤条件
type ProductFilter struct {
	CategoryID int64 // 0 表示不筛选
	Name       string
	Page       int
	PageSize   int
}

type productRepo struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓储
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).Preload("Category").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) GetOrCreate(ctx context.Context, categoryID int64, name string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where(model.Product{CategoryID: categoryID, Name: name}).
		FirstOrCreate(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) List(ctx context.Context, filter ProductFilter) ([]model.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Product{})

	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Name != "" {
		query = query.Where("name LIKE ?", "%"+filter.Name+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var products []model.Product
	if err := query.Preload("Category").Order("id asc").Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// ==================== ParameterRepository ====================

// ParameterRepository 参数名字典仓储接口
type ParameterRepository interface {
	GetOrCreate(ctx context.Context, name string) (*model.Parameter, error)
}

type parameterRepo struct {
	db *gorm.DB
}

// NewParameterRepository 创建参数仓储
func NewParameterRepository(db *gorm.DB) ParameterRepository {
	return &parameterRepo{db: db}
}

func (r *parameterRepo) GetOrCreate(ctx context.Context, name string) (*model.Parameter, error) {
	var parameter model.Parameter
	err := r.db.WithContext(ctx).
		Where(model.Parameter{Name: name}).
		FirstOrCreate(&parameter).Error
	if err != nil {
		return nil, err
	}
	return &parameter, nil
}
