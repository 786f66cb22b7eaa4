package repository

import (
	"app/internal/domain/model"
	"context"
)

// 顧客の保存・取得を約束
type CustomerRepository interface {
	Create(ctx context.Context, customer *model.Customer) error
	//見つからないときは (nil, nil)
	FindByEmail(ctx context.Context, email string) (*model.Customer, error)
	FindByID(ctx context.Context, id int64) (*model.Customer, error)
}
