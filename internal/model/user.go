package model

// ==================== 用户类型常量 ====================

// UserType 用户类型: shop (供货商/店铺) 或 buyer (采购方)
// 只有 shop 类型的用户允许上传价格表
const (
	UserTypeShop  = "shop"
	UserTypeBuyer = "buyer"
)

// SysUser 系统用户
type SysUser struct {
	BaseModel
	// 基础信息
	Username  string `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Password  string `gorm:"size:255;not null" json:"-"` // 哈希密码
	Email     string `gorm:"size:100;index" json:"email"`
	FirstName string `gorm:"size:150" json:"first_name"`
	LastName  string `gorm:"size:150" json:"last_name"`

	// 用户类型: shop / buyer
	// 注意区分：这是业务角色，不是后台管理权限 (IsStaff)
	UserType string `gorm:"size:10;default:'buyer'" json:"user_type"`

	IsStaff  bool `gorm:"default:false" json:"is_staff"`
	IsActive bool `gorm:"default:true" json:"is_active"`

	// ==============================
	// 关联关系
	// ==============================

	// 每个 shop 用户拥有一个店铺
	Shop *Shop `gorm:"foreignKey:UserID" json:"shop,omitempty"`

	// 用户的订单与联系方式
	Orders   []Order   `gorm:"foreignKey:UserID" json:"-"`
	Contacts []Contact `gorm:"foreignKey:UserID" json:"-"`
}

func (SysUser) TableName() string {
	return "sys_users"
}

// IsShopOwner 是否为供货商账号
func (u *SysUser) IsShopOwner() bool {
	return u.UserType == UserTypeShop
}

// Contact 用户联系方式 (电话/地址等)
type Contact struct {
	BaseModel
	UserID int64  `gorm:"index;not null" json:"user_id"`
	Type   string `gorm:"size:50;not null" json:"type"`
	Value  string `gorm:"size:150;not null" json:"value"`
}

func (Contact) TableName() string {
	return "contacts"
}
