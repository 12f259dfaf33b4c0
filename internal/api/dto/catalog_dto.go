package dto

// ==================== 目录查询 ====================

// CatalogQuery 商品目录查询条件
type CatalogQuery struct {
	ShopID     int64  `form:"shop_id"`
	CategoryID int64  `form:"category_id"`
	Keyword    string `form:"keyword"`
	Page       int    `form:"page,default=1"`
	PageSize   int    `form:"page_size,default=20"`
}

// ProductQuery 商品字典查询条件
type ProductQuery struct {
	CategoryID int64  `form:"category_id"`
	Name       string `form:"name"`
	Page       int    `form:"page,default=1"`
	PageSize   int    `form:"page_size,default=20"`
}

// ==================== 店铺 ====================

// UpdateShopRequest 店铺资料更新
type UpdateShopRequest struct {
	Name string `json:"name" binding:"omitempty,max=100"`
	URL  string `json:"url" binding:"omitempty,url"`
}

// ShopQuery 店铺列表查询条件
type ShopQuery struct {
	Name     string `form:"name"`
	Status   int    `form:"status"`
	Page     int    `form:"page,default=1"`
	PageSize int    `form:"page_size,default=20"`
}
