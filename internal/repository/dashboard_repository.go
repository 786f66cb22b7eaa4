package repository

import (
	"context"
	"time"

	"app/internal/domain/model"

	"github.com/shopspring/decimal"
)

// 売上の時系列1点分。Periodは "2024-01-31" か "2024-01"。
type RevenueBucket struct {
	Period  string          `json:"period"`
	Revenue decimal.Decimal `json:"revenue"`
}

// 販売数上位の商品1件分。
type TopProduct struct {
	ProductName string          `json:"product_name"`
	TotalSold   int64           `json:"total_sold"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// ダッシュボード用の集計読み取りだけを約束。from が nil なら全期間。
type DashboardRepository interface {
	CountActiveProducts(ctx context.Context) (int64, error)
	CountOrders(ctx context.Context, from *time.Time) (int64, error)
	CountPendingPayments(ctx context.Context, from *time.Time) (int64, error)
	//payment_status=Approved の合計売上
	SumApprovedRevenue(ctx context.Context, from *time.Time) (decimal.Decimal, error)
	RecentOrders(ctx context.Context, limit int) ([]model.Order, error)
	//Approved注文の売上を日単位/月単位で集計
	RevenueBuckets(ctx context.Context, from time.Time, byMonth bool) ([]RevenueBucket, error)
	//Approved注文の販売数上位
	TopProducts(ctx context.Context, from time.Time, limit int) ([]TopProduct, error)
}
