package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

type OrderUsecase struct {
	tx repo.TransactionManager
}

func NewOrderUsecase(tx repo.TransactionManager) *OrderUsecase {
	return &OrderUsecase{tx: tx}
}

type OrderLineInput struct {
	ProductID int64
	Quantity  int64
}

type PlaceOrderInput struct {
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	PaymentMethod   string
	Items           []OrderLineInput
	IdempotencyKey  string
}

type PlaceOrderOutput struct {
	OrderID          int64           `json:"order_id"`
	PaymentStatus    string          `json:"payment_status"`
	RequiresApproval bool            `json:"requires_approval"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
}

type OrderItemOutput struct {
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

type OrderOutput struct {
	ID              int64             `json:"id"`
	CustomerID      *int64            `json:"customer_id"`
	CustomerName    string            `json:"customer_name"`
	CustomerPhone   string            `json:"customer_phone"`
	CustomerAddress string            `json:"customer_address"`
	TotalAmount     decimal.Decimal   `json:"total_amount"`
	PaymentMethod   string            `json:"payment_method"`
	PaymentStatus   string            `json:"payment_status"`
	OrderStatus     string            `json:"order_status"`
	CreatedAt       time.Time         `json:"created_at"`
	Items           []OrderItemOutput `json:"items"`
}

// PlaceOrder は注文を確定する。
// 検証・単価決定・在庫減算・注文/明細の保存までを1トランザクションで行い、
// 途中で失敗したら全部ロールバックする（在庫の部分減算を残さない）。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, customerID *int64, in PlaceOrderInput) (PlaceOrderOutput, error) {
	if strings.TrimSpace(in.CustomerName) == "" || strings.TrimSpace(in.CustomerPhone) == "" {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusBadRequest, "Customer name and phone are required")
	}

	method := model.PaymentMethod(strings.TrimSpace(in.PaymentMethod))
	if method != model.PaymentMethodCash && method != model.PaymentMethodUPI {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid payment_method")
	}

	if len(in.Items) == 0 {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusBadRequest, "Order items are required")
	}
	for _, line := range in.Items {
		if line.ProductID <= 0 || line.Quantity <= 0 {
			return PlaceOrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid order item")
		}
	}

	key := strings.TrimSpace(in.IdempotencyKey)
	if key == "" || len(key) > 255 {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid idempotency_key")
	}

	//支払い方法で初期ステータスが決まる。
	//Cashは即Approved、UPIは管理者の承認待ち（Pending）。
	paymentStatus := model.PaymentStatusApproved
	if method == model.PaymentMethodUPI {
		paymentStatus = model.PaymentStatusPending
	}

	var out PlaceOrderOutput

	//注文処理はトランザクション
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// 同じキーなら同じ結果
		existing, found, err := r.Orders().FindByIdempotencyKey(ctx, key)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if found {
			out = toPlaceOrderOutput(existing)
			return nil
		}

		//明細ごとに商品確認→在庫減算→スナップショット作成
		orderItems := make([]model.OrderItem, 0, len(in.Items))
		total := decimal.Zero

		for _, line := range in.Items {
			p, err := r.Products().FindActiveByID(ctx, line.ProductID)
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, fmt.Sprintf("Product %d not found", line.ProductID))
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			//在庫減算（足りないなら false）。減算は条件付きUPDATEなので同時注文でも売り越さない。
			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, line.ProductID, line.Quantity)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !ok {
				return NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Out of stock: %s", p.Name))
			}

			//単価はカタログの現在価格。クライアントの申告額は使わない。
			lineTotal := p.Price.Mul(decimal.NewFromInt(line.Quantity))
			orderItems = append(orderItems, model.OrderItem{
				ProductID:   p.ID,
				ProductName: p.Name,
				Quantity:    line.Quantity,
				UnitPrice:   p.Price,
				TotalPrice:  lineTotal,
			})

			total = total.Add(lineTotal)
		}

		// 注文作成
		now := time.Now()
		orderID, err := r.Orders().Create(ctx, model.Order{
			CustomerID:      customerID,
			CustomerName:    strings.TrimSpace(in.CustomerName),
			CustomerPhone:   strings.TrimSpace(in.CustomerPhone),
			CustomerAddress: strings.TrimSpace(in.CustomerAddress),
			TotalAmount:     total,
			PaymentMethod:   method,
			PaymentStatus:   paymentStatus,
			OrderStatus:     model.OrderStatusPending,
			IdempotencyKey:  key,
			CreatedAt:       now,
			UpdatedAt:       now,
		})
		if err != nil {
			//競合（同時で同じキーが入った等）はもう一回検索して同じ結果を返す
			ex2, found2, err2 := r.Orders().FindByIdempotencyKey(ctx, key)
			if err2 == nil && found2 {
				out = toPlaceOrderOutput(ex2)
				return nil
			}
			return NewHTTPError(http.StatusBadRequest, "idempotency conflict")
		}

		//注文明細一括作成
		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = PlaceOrderOutput{
			OrderID:          orderID,
			PaymentStatus:    string(paymentStatus),
			RequiresApproval: method == model.PaymentMethodUPI,
			TotalAmount:      total,
		}
		return nil
	})

	if err != nil {
		return PlaceOrderOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, customerID int64) ([]OrderOutput, error) {
	if customerID <= 0 {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	//ページングはまずは固定で取る
	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, _, err := r.Orders().ListByCustomerID(ctx, customerID, 1, 50)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, items))
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

func (u *OrderUsecase) GetMyOrderDetail(ctx context.Context, customerID int64, orderID int64) (OrderOutput, error) {
	if customerID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "Order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		//他人の注文・ゲスト注文は「存在しない扱い」にする
		if o.CustomerID == nil || *o.CustomerID != customerID {
			return NewHTTPError(http.StatusNotFound, "Order not found")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func toPlaceOrderOutput(o model.Order) PlaceOrderOutput {
	return PlaceOrderOutput{
		OrderID:          o.ID,
		PaymentStatus:    string(o.PaymentStatus),
		RequiresApproval: o.PaymentMethod == model.PaymentMethodUPI && o.PaymentStatus == model.PaymentStatusPending,
		TotalAmount:      o.TotalAmount,
	}
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TotalPrice:  it.TotalPrice,
		})
	}

	return OrderOutput{
		ID:              o.ID,
		CustomerID:      o.CustomerID,
		CustomerName:    o.CustomerName,
		CustomerPhone:   o.CustomerPhone,
		CustomerAddress: o.CustomerAddress,
		TotalAmount:     o.TotalAmount,
		PaymentMethod:   string(o.PaymentMethod),
		PaymentStatus:   string(o.PaymentStatus),
		OrderStatus:     string(o.OrderStatus),
		CreatedAt:       o.CreatedAt,
		Items:           outItems,
	}
}
