package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"retail_orders_v1_202608/internal/model"
)

// ContactRepository 联系方式仓储接口
type ContactRepository interface {
	Create(ctx context.Context, contact *model.Contact) error
	GetByID(ctx context.Context, id int64) (*model.Contact, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.Contact, error)
	Delete(ctx context.Context, id int64) error
}

type contactRepo struct {
	db *gorm.DB
}

// NewContactRepository 创建联系方式仓储
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepo{db: db}
}

func (r *contactRepo) Create(ctx context.Context, contact *model.Contact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

func (r *contactRepo) GetByID(ctx context.Context, id int64) (*model.Contact, error) {
	var contact model.Contact
	if err := r.db.WithContext(ctx).First(&contact, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &contact, nil
}

func (r *contactRepo) ListByUserID(ctx context.Context, userID int64) ([]model.Contact, error) {
	var contacts []model.Contact
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id asc").
		Find(&contacts).Error
	return contacts, err
}

func (r *contactRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Contact{}, id).Error
}
