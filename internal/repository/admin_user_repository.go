package repository

import (
	"app/internal/domain/model"
	"context"
)

// 管理者の取得を約束
type AdminUserRepository interface {
	Create(ctx context.Context, admin *model.AdminUser) error
	//見つからないときは (nil, nil)
	FindByUsername(ctx context.Context, username string) (*model.AdminUser, error)
}
