package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	domainrepo "app/internal/repository"

	"gorm.io/gorm"
)

type adminUserGormRepository struct {
	db *gorm.DB
}

// DI
func NewAdminUserGormRepository(db *gorm.DB) domainrepo.AdminUserRepository {
	return &adminUserGormRepository{db: db}
}

func (r *adminUserGormRepository) Create(ctx context.Context, admin *model.AdminUser) error {
	if err := r.db.WithContext(ctx).Create(admin).Error; err != nil {
		return err
	}
	return nil
}

// usernameで管理者を1件取得。見つからないときは (nil, nil)
func (r *adminUserGormRepository) FindByUsername(ctx context.Context, username string) (*model.AdminUser, error) {
	var a model.AdminUser

	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&a).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &a, nil
}
