package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"retail_orders_v1_202608/internal/model"
)

// ==================== OrderRepository ====================

// OrderRepository 订单仓储接口
type OrderRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	GetByIDWithItems(ctx context.Context, id int64) (*model.Order, error)
	GetBasket(ctx context.Context, userID int64) (*model.Order, error)

	// GetOrCreateBasket 原子 get-or-create 用户的购物篮订单
	// 依赖 (user_id) WHERE status='basket' 的部分唯一索引 + insert-on-conflict，
	// 并发调用下不会产生第二个购物篮
	GetOrCreateBasket(ctx context.Context, userID int64) (*model.Order, error)

	Update(ctx context.Context, order *model.Order) error
	UpdateStatus(ctx context.Context, id int64, status string) error

	// 列表查询
	List(ctx context.Context, filter OrderFilter) ([]model.Order, int64, error)
}

// OrderFilter 订单过滤条件
type OrderFilter struct {
	UserID   int64  // 0 表示不筛选
	Status   string // 空串表示不筛选
	Page     int
	PageSize int
}

type orderRepo struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	var order model.Order
	if err := r.db.WithContext(ctx).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) GetByIDWithItems(ctx context.Context, id int64) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.ProductInfo").
		Preload("Items.ProductInfo.Product").
		Preload("Items.ProductInfo.Shop").
		First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) GetBasket(ctx context.Context, userID int64) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.ProductInfo").
		Where("user_id = ? AND status = ?", userID, model.OrderStatusBasket).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) GetOrCreateBasket(ctx context.Context, userID int64) (*model.Order, error) {
	order := model.Order{
		UserID: userID,
		Status: model.OrderStatusBasket,
	}

	// 裸 ON CONFLICT DO NOTHING：部分唯一索引冲突时静默跳过插入
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&order).Error
	if err != nil {
		return nil, err
	}

	// 冲突时 Create 拿不到已有行，统一回查
	var out model.Order
	err = r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, model.OrderStatusBasket).
		First(&out).Error
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *orderRepo) Update(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	return r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", id).Update("status", status).Error
}

func (r *orderRepo) List(ctx context.Context, filter OrderFilter) ([]model.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Order{})

	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var orders []model.Order
	err := query.Preload("Items").Order("id desc").Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// ==================== OrderItemRepository ====================

// OrderItemRepository 订单项仓储接口
type OrderItemRepository interface {
	GetByOrderAndInfo(ctx context.Context, orderID, productInfoID int64) (*model.OrderItem, error)
	Create(ctx context.Context, item *model.OrderItem) error
	Update(ctx context.Context, item *model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
}

type orderItemRepo struct {
	db *gorm.DB
}

// NewOrderItemRepository 创建订单项仓储
func NewOrderItemRepository(db *gorm.DB) OrderItemRepository {
	return &orderItemRepo{db: db}
}

func (r *orderItemRepo) GetByOrderAndInfo(ctx context.Context, orderID, productInfoID int64) (*model.OrderItem, error) {
	var item model.OrderItem
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND product_info_id = ?", orderID, productInfoID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *orderItemRepo) Create(ctx context.Context, item *model.OrderItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *orderItemRepo) Update(ctx context.Context, item *model.OrderItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *orderItemRepo) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	var items []model.OrderItem
	err := r.db.WithContext(ctx).
		Preload("ProductInfo").
		Where("order_id = ?", orderID).
		Order("id asc").
		Find(&items).Error
	return items, err
}
