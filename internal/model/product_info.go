package model

import "time"

// ==================== ProductInfo 在售条目 ====================

// ProductInfo 店铺对某商品的在售条目，携带该店铺的价格与库存
// 没有软删除字段：每次价格表导入对该店铺整体删除重建，
// 保留软删除会让 (shop_id, external_id) 唯一键在重建时撞上历史行
type ProductInfo struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProductID int64 `gorm:"index;not null" json:"product_id"`
	ShopID    int64 `gorm:"uniqueIndex:uniq_shop_external;not null" json:"shop_id"`

	// 价格表中的商品标识
	ExternalID int64  `gorm:"uniqueIndex:uniq_shop_external;not null" json:"external_id"`
	Model      string `gorm:"size:100" json:"model"`
	Name       string `gorm:"size:170" json:"name"`

	// 库存与价格，导入时校验非负
	Quantity int `gorm:"not null" json:"quantity"`
	Price    int `gorm:"not null" json:"price"`
	PriceRRC int `gorm:"not null" json:"price_rrc"` // 建议零售价

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Shop    *Shop    `gorm:"foreignKey:ShopID" json:"shop,omitempty"`

	Parameters []ProductParameter `gorm:"foreignKey:ProductInfoID;constraint:OnDelete:CASCADE" json:"parameters,omitempty"`
}

func (ProductInfo) TableName() string {
	return "product_infos"
}

// InStock 请求数量是否有足够库存
func (p *ProductInfo) InStock(quantity int) bool {
	return quantity > 0 && quantity <= p.Quantity
}

// ==================== ProductParameter 条目参数 ====================

// ProductParameter 在售条目的参数值，(product_info, parameter) 一行
type ProductParameter struct {
	ID            int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductInfoID int64  `gorm:"uniqueIndex:uniq_info_param;not null" json:"product_info_id"`
	ParameterID   int64  `gorm:"uniqueIndex:uniq_info_param;not null" json:"parameter_id"`
	Value         string `gorm:"size:70;not null" json:"value"`

	Parameter *Parameter `gorm:"foreignKey:ParameterID" json:"parameter,omitempty"`
}

func (ProductParameter) TableName() string {
	return "product_parameters"
}
