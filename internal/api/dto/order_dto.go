package dto

import "time"

// ==================== 请求 ====================

// AddToBasketRequest 加入购物篮请求
type AddToBasketRequest struct {
	ProductInfoID int64 `json:"product_info_id" binding:"required"`
	Quantity      int   `json:"quantity" binding:"required,gt=0"`
}

// ListOrdersRequest 订单列表查询
type ListOrdersRequest struct {
	Status   string `form:"status"`
	Page     int    `form:"page,default=1"`
	PageSize int    `form:"page_size,default=20"`
}

// ==================== 响应 ====================

// OrderItemView 订单项视图
type OrderItemView struct {
	ID            int64  `json:"id"`
	ProductInfoID int64  `json:"product_info_id"`
	ProductName   string `json:"product_name"`
	ShopID        int64  `json:"shop_id"`
	Quantity      int    `json:"quantity"`
	Price         int    `json:"price"`
}

// OrderView 订单视图
type OrderView struct {
	ID        int64           `json:"id"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Items     []OrderItemView `json:"items"`
	Total     int             `json:"total"` // 按条目价格合计
}

// ListOrdersResponse 订单列表响应
type ListOrdersResponse struct {
	Total int64       `json:"total"`
	List  []OrderView `json:"list"`
}
