package repository

import (
	"context"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DashboardGormRepository struct {
	db *gorm.DB
}

// DI
func NewDashboardGormRepository(db *gorm.DB) *DashboardGormRepository {
	return &DashboardGormRepository{db: db}
}

func (r *DashboardGormRepository) CountActiveProducts(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("is_active = ?", true).
		Count(&total).Error
	return total, err
}

func (r *DashboardGormRepository) CountOrders(ctx context.Context, from *time.Time) (int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Order{})
	if from != nil {
		q = q.Where("created_at >= ?", *from)
	}
	var total int64
	err := q.Count(&total).Error
	return total, err
}

func (r *DashboardGormRepository) CountPendingPayments(ctx context.Context, from *time.Time) (int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("payment_status = ?", model.PaymentStatusPending)
	if from != nil {
		q = q.Where("created_at >= ?", *from)
	}
	var total int64
	err := q.Count(&total).Error
	return total, err
}

// Approved注文だけを売上として数える
func (r *DashboardGormRepository) SumApprovedRevenue(ctx context.Context, from *time.Time) (decimal.Decimal, error) {
	q := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("payment_status = ?", model.PaymentStatusApproved)
	if from != nil {
		q = q.Where("created_at >= ?", *from)
	}

	var row struct {
		Revenue decimal.Decimal
	}
	err := q.Select("COALESCE(SUM(total_amount), 0) AS revenue").Scan(&row).Error
	if err != nil {
		return decimal.Zero, err
	}
	return row.Revenue, nil
}

func (r *DashboardGormRepository) RecentOrders(ctx context.Context, limit int) ([]model.Order, error) {
	if limit <= 0 {
		limit = 5
	}
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return []model.Order{}, err
	}
	return orders, nil
}

// Approved注文の売上を日単位/月単位で集計（postgresのto_char）
func (r *DashboardGormRepository) RevenueBuckets(ctx context.Context, from time.Time, byMonth bool) ([]repo.RevenueBucket, error) {
	format := "YYYY-MM-DD"
	if byMonth {
		format = "YYYY-MM"
	}

	var rows []repo.RevenueBucket
	err := r.db.WithContext(ctx).Raw(`
		SELECT to_char(created_at, ?) AS period,
		       COALESCE(SUM(total_amount), 0) AS revenue
		FROM orders
		WHERE payment_status = ? AND created_at >= ?
		GROUP BY period
		ORDER BY period ASC`,
		format, model.PaymentStatusApproved, from,
	).Scan(&rows).Error
	if err != nil {
		return []repo.RevenueBucket{}, err
	}
	return rows, nil
}

// Approved注文の販売数上位（数量の多い順）
func (r *DashboardGormRepository) TopProducts(ctx context.Context, from time.Time, limit int) ([]repo.TopProduct, error) {
	if limit <= 0 {
		limit = 5
	}

	var rows []repo.TopProduct
	err := r.db.WithContext(ctx).Raw(`
		SELECT oi.product_name,
		       SUM(oi.quantity) AS total_sold,
		       COALESCE(SUM(oi.total_price), 0) AS revenue
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.payment_status = ? AND o.created_at >= ?
		GROUP BY oi.product_name
		ORDER BY total_sold DESC
		LIMIT ?`,
		model.PaymentStatusApproved, from, limit,
	).Scan(&rows).Error
	if err != nil {
		return []repo.TopProduct{}, err
	}
	return rows, nil
}
