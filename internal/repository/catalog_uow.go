package repository

import (
	"context"

	"gorm.io/gorm"
)

// ==================== CatalogUnitOfWork 目录工作单元（事务） ====================

// CatalogUnitOfWork 把价格表导入涉及的全部仓储绑到同一个事务句柄上。
// 导入是删除重建式刷新，任何一步失败都必须整体回滚，
// 否则读者会看到半空的目录
type CatalogUnitOfWork struct {
	db           *gorm.DB
	Shops        ShopRepository
	Categories   CategoryRepository
	Products     ProductRepository
	Parameters   ParameterRepository
	ProductInfos ProductInfoRepository
}

// NewCatalogUnitOfWork 创建工作单元
func NewCatalogUnitOfWork(db *gorm.DB) *CatalogUnitOfWork {
	return &CatalogUnitOfWork{
		db:           db,
		Shops:        NewShopRepository(db),
		Categories:   NewCategoryRepository(db),
		Products:     NewProductRepository(db),
		Parameters:   NewParameterRepository(db),
		ProductInfos: NewProductInfoRepository(db),
	}
}

// Transaction 执行事务
func (u *CatalogUnitOfWork) Transaction(ctx context.Context, fn func(uow *CatalogUnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txUow := &CatalogUnitOfWork{
			db:           tx,
			Shops:        NewShopRepository(tx),
			Categories:   NewCategoryRepository(tx),
			Products:     NewProductRepository(tx),
			Parameters:   NewParameterRepository(tx),
			ProductInfos: NewProductInfoRepository(tx),
		}
		return fn(txUow)
	})
}

// ==================== OrderUnitOfWork 订单工作单元（事务） ====================

// OrderUnitOfWork 购物篮写操作的事务封装
type OrderUnitOfWork struct {
	db     *gorm.DB
	Orders OrderRepository
	Items  OrderItemRepository
}

// NewOrderUnitOfWork 创建工作单元
func NewOrderUnitOfWork(db *gorm.DB) *OrderUnitOfWork {
	return &OrderUnitOfWork{
		db:     db,
		Orders: NewOrderRepository(db),
		Items:  NewOrderItemRepository(db),
	}
}

// Transaction 执行事务
func (u *OrderUnitOfWork) Transaction(ctx context.Context, fn func(uow *OrderUnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txUow := &OrderUnitOfWork{
			db:     tx,
			Orders: NewOrderRepository(tx),
			Items:  NewOrderItemRepository(tx),
		}
		return fn(txUow)
	})
}
