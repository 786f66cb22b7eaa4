package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "Cash"
	PaymentMethodUPI  PaymentMethod = "UPI"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "Pending"
	PaymentStatusApproved PaymentStatus = "Approved"
	PaymentStatusRejected PaymentStatus = "Rejected"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusConfirmed OrderStatus = "Confirmed"
	OrderStatusShipped   OrderStatus = "Shipped"
	OrderStatusDelivered OrderStatus = "Delivered"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// 注文ヘッダ。顧客情報は注文時点のスナップショットを持つ
// （後から customers / products が変わっても注文履歴は変えない）。
type Order struct {
	ID         int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID *int64 `gorm:"index" json:"customer_id"`

	// 注文時点の顧客情報スナップショット
	CustomerName    string `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerPhone   string `gorm:"type:varchar(20);not null" json:"customer_phone"`
	CustomerAddress string `gorm:"type:text" json:"customer_address"`

	TotalAmount   decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total_amount"`
	PaymentMethod PaymentMethod   `gorm:"type:varchar(10);not null" json:"payment_method"`
	PaymentStatus PaymentStatus   `gorm:"type:varchar(20);not null;index" json:"payment_status"`
	OrderStatus   OrderStatus     `gorm:"type:varchar(20);not null;index" json:"order_status"`

	// 二重送信防止キー
	IdempotencyKey string `gorm:"type:varchar(255);not null;uniqueIndex" json:"-"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
