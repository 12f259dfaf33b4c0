package model

import "time"

// ==================== Category 品类 ====================

// Category 品类字典
// 主键 ID 由价格表外部提供，不自增：价格表格式约定各店铺、各次导入之间
// 复用稳定的品类 id，因此品类是跨店铺共享的全局字典
type Category struct {
	ID        int64     `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name      string    `gorm:"size:120;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Shops    []Shop    `gorm:"many2many:shop_categories;" json:"-"`
	Products []Product `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Category) TableName() string {
	return "categories"
}

// ==================== Product 商品 ====================

// Product 商品字典，(category, name) 为 get-or-create 键
type Product struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID int64     `gorm:"uniqueIndex:uniq_category_name;not null" json:"category_id"`
	Name       string    `gorm:"size:150;uniqueIndex:uniq_category_name;not null" json:"name"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Category     *Category     `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	ProductInfos []ProductInfo `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Product) TableName() string {
	return "products"
}

// ==================== Parameter 参数 ====================

// Parameter 参数名字典，按 name 全局复用
type Parameter struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:60;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (Parameter) TableName() string {
	return "parameters"
}
