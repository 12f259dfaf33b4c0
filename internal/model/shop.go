package model

import "time"

// Shop 店铺状态常量
const (
	ShopStatusActive   = 1 // 正常
	ShopStatusInactive = 2 // 已停用
)

type Shop struct {
	BaseModel
	// 1. 核心身份
	Name     string `gorm:"size:100;not null" json:"name"`
	URL      string `gorm:"size:255" json:"url"`      // 价格表源地址
	Filename string `gorm:"size:100" json:"filename"` // 上次导入的源文件名 (可空)

	// 2. 归属
	// 一个用户只能拥有一个店铺，UserID 唯一
	UserID int64    `gorm:"uniqueIndex;not null" json:"user_id"`
	User   *SysUser `gorm:"foreignKey:UserID" json:"-"`

	// 3. 状态
	Status int `gorm:"default:1;comment:状态 1-正常 2-已停用" json:"status"`

	// 4. 导入状态
	// 最后一次价格表成功导入的时间，由导入服务维护
	FeedSyncedAt *time.Time `json:"feed_synced_at,omitempty"`

	// ==============================
	// 关联关系
	// ==============================

	// 店铺参与的品类字典 (多对多，品类为全局字典)
	Categories []Category `gorm:"many2many:shop_categories;" json:"-"`

	// 店铺的在售条目，每次导入整体重建
	ProductInfos []ProductInfo `gorm:"foreignKey:ShopID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Shop) TableName() string {
	return "shops"
}
