package usecase

import (
	"context"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

type DashboardPeriod string

const (
	DashboardPeriodAll   DashboardPeriod = "all"
	DashboardPeriodWeek  DashboardPeriod = "week"
	DashboardPeriodMonth DashboardPeriod = "month"
	DashboardPeriodYear  DashboardPeriod = "year"
)

type DashboardOutput struct {
	TotalProducts   int64           `json:"total_products"`
	TotalOrders     int64           `json:"total_orders"`
	PendingPayments int64           `json:"pending_payments"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	RecentOrders    []model.Order   `json:"recent_orders"`

	//期間指定のときだけ入る
	Analytics   []repo.RevenueBucket `json:"analytics,omitempty"`
	TopProducts []repo.TopProduct    `json:"top_products,omitempty"`
}

type DashboardUsecase struct {
	dashRepo repo.DashboardRepository
	now      func() time.Time
}

// DI。nowFnはテスト用にnilなら time.Now。
func NewDashboardUsecase(dashRepo repo.DashboardRepository, nowFn func() time.Time) *DashboardUsecase {
	if nowFn == nil {
		nowFn = time.Now
	}
	return &DashboardUsecase{dashRepo: dashRepo, now: nowFn}
}

// Get は集計ダッシュボードを返す。
// week/monthは日単位、yearは月単位で売上を集計する。
func (u *DashboardUsecase) Get(ctx context.Context, period string) (DashboardOutput, error) {
	p := DashboardPeriod(period)
	if period == "" {
		p = DashboardPeriodAll
	}

	var from *time.Time
	byMonth := false
	now := u.now()

	switch p {
	case DashboardPeriodAll:
		// 全期間
	case DashboardPeriodWeek:
		t := now.AddDate(0, 0, -7)
		from = &t
	case DashboardPeriodMonth:
		t := now.AddDate(0, 0, -30)
		from = &t
	case DashboardPeriodYear:
		t := now.AddDate(-1, 0, 0)
		from = &t
		byMonth = true
	default:
		return DashboardOutput{}, NewHTTPError(http.StatusBadRequest, "invalid period")
	}

	out := DashboardOutput{TotalRevenue: decimal.Zero}

	totalProducts, err := u.dashRepo.CountActiveProducts(ctx)
	if err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	out.TotalProducts = totalProducts

	totalOrders, err := u.dashRepo.CountOrders(ctx, from)
	if err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	out.TotalOrders = totalOrders

	pending, err := u.dashRepo.CountPendingPayments(ctx, from)
	if err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	out.PendingPayments = pending

	revenue, err := u.dashRepo.SumApprovedRevenue(ctx, from)
	if err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	out.TotalRevenue = revenue

	recent, err := u.dashRepo.RecentOrders(ctx, 5)
	if err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	out.RecentOrders = recent

	//期間指定があるときだけ時系列と売れ筋を付ける
	if from != nil {
		buckets, err := u.dashRepo.RevenueBuckets(ctx, *from, byMonth)
		if err != nil {
			return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out.Analytics = buckets

		top, err := u.dashRepo.TopProducts(ctx, *from, 5)
		if err != nil {
			return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out.TopProducts = top
	}

	return out, nil
}
