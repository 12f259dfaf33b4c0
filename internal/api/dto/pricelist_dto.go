package dto

import "time"

// ImportRequest 价格表导入请求
type ImportRequest struct {
	URL string `json:"url" binding:"required"`
}

// ImportResult 导入结果回显
type ImportResult struct {
	ShopID     int64     `json:"shop_id"`
	ShopName   string    `json:"shop_name"`
	Categories int       `json:"categories"` // 文档中的品类数
	Goods      int       `json:"goods"`      // 重建后的在售条目数
	SyncedAt   time.Time `json:"synced_at"`
}
