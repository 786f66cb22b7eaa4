package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// 公開一覧の絞り込み条件
type ProductListQuery struct {
	Category string
	Search   string
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	//公開中（is_active=true）の商品一覧。name昇順。
	ListActive(ctx context.Context, q ProductListQuery) ([]model.Product, error)
	//公開中の商品を1件取得
	FindActiveByID(ctx context.Context, id int64) (model.Product, error)
	//公開中商品のカテゴリ一覧（重複なし）
	ListCategories(ctx context.Context) ([]string, error)
	//管理画面用。非公開も含めて新しい順。
	ListAll(ctx context.Context) ([]model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	//行は消さず is_active=false にする
	SoftDelete(ctx context.Context, id int64) error
	DeactivateAll(ctx context.Context) (int64, error)
}

// 在庫の減算を約束。注文確定トランザクションの中で使う。
type InventoryRepository interface {
	//在庫が足りるときだけ減らす（条件付きUPDATE）。足りなければ false。
	DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error)
}
