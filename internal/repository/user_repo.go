package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"retail_orders_v1_202608/internal/model"
)

// ==================== 接口定义 ====================

// UserRepository 用户仓储接口
type UserRepository interface {
	Create(ctx context.Context, user *model.SysUser) error
	GetByID(ctx context.Context, id int64) (*model.SysUser, error)
	GetByUsername(ctx context.Context, username string) (*model.SysUser, error)
	GetByEmail(ctx context.Context, email string) (*model.SysUser, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Update(ctx context.Context, user *model.SysUser) error
	UpdatePassword(ctx context.Context, id int64, hashedPassword string) error
	Delete(ctx context.Context, id int64) error

	// 列表查询
	List(ctx context.Context, filter UserFilter) ([]model.SysUser, int64, error)
}

// ==================== 过滤条件 ====================

// UserFilter 用户过滤条件
type UserFilter struct {
	Username string
	UserType string // 空串表示不筛选
	Page     int
	PageSize int
}

// ==================== 仓储实现 ====================

type userRepo struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *model.SysUser) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*model.SysUser, error) {
	var user model.SysUser
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*model.SysUser, error) {
	var user model.SysUser
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.SysUser, error) {
	var user model.SysUser
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.SysUser{}).
		Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

func (r *userRepo) Update(ctx context.Context, user *model.SysUser) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepo) UpdatePassword(ctx context.Context, id int64, hashedPassword string) error {
	return r.db.WithContext(ctx).Model(&model.SysUser{}).
		Where("id = ?", id).Update("password", hashedPassword).Error
}

func (r *userRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.SysUser{}, id).Error
}

func (r *userRepo) List(ctx context.Context, filter UserFilter) ([]model.SysUser, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.SysUser{})

	if filter.Username != "" {
		query = query.Where("username LIKE ?", "%"+filter.Username+"%")
	}
	if filter.UserType != "" {
		query = query.Where("user_type = ?", filter.UserType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var users []model.SysUser
	if err := query.Order("id desc").Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}
