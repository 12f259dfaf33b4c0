package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ==================== 订单状态常量 ====================

// OrderStatus 订单状态，basket → accepted 之后的流转由后台人工推进
const (
	OrderStatusBasket    = "basket"    // 购物篮 (草稿订单)
	OrderStatusAccepted  = "accepted"  // 已确认
	OrderStatusPayed     = "payed"     // 已支付
	OrderStatusPosted    = "posted"    // 已发出
	OrderStatusDelivered = "delivered" // 已送达
	OrderStatusReturned  = "returned"  // 已退回
	OrderStatusCancelled = "cancelled" // 已取消
	OrderStatusFilling   = "filling"   // 拣货中
)

// ==================== Order 订单主表 ====================

// Order 订单
// 每个用户同一时刻最多一个 basket 状态订单，
// 由 (user_id) WHERE status='basket' 的部分唯一索引保证
type Order struct {
	ID     int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64 `gorm:"index;uniqueIndex:uniq_user_basket,where:status = 'basket';not null" json:"user_id"`

	Status string `gorm:"size:20;index;default:basket" json:"status"`

	// 收货地址（PostgreSQL JSONB）
	DeliveryAddress datatypes.JSONMap `gorm:"type:jsonb" json:"delivery_address,omitempty"`

	// 审计字段
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// 关联
	User  *SysUser    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (*Order) TableName() string {
	return "orders"
}

// IsBasket 是否处于购物篮状态
func (o *Order) IsBasket() bool {
	return o.Status == OrderStatusBasket
}

// CanConfirm 是否可以确认（只有购物篮可确认）
func (o *Order) CanConfirm() bool {
	return o.Status == OrderStatusBasket
}

// CanCancel 是否可以取消
func (o *Order) CanCancel() bool {
	return o.Status == OrderStatusBasket || o.Status == OrderStatusAccepted
}

// ==================== OrderItem 订单项 ====================

// OrderItem 订单项，引用某店铺的在售条目
type OrderItem struct {
	ID      int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID int64 `gorm:"uniqueIndex:uniq_order_info;not null" json:"order_id"`

	ProductInfoID int64 `gorm:"uniqueIndex:uniq_order_info;not null" json:"product_info_id"`
	ShopID        int64 `gorm:"index;not null" json:"shop_id"`

	Quantity int `gorm:"not null" json:"quantity"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProductInfo *ProductInfo `gorm:"foreignKey:ProductInfoID" json:"product_info,omitempty"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
