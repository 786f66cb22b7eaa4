package repository

import (
	"context"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SQLiteのインメモリDBでGORM実装を検証する。
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.Product{},
		&model.Customer{},
		&model.AdminUser{},
		&model.Order{},
		&model.OrderItem{},
		&model.AuditLog{},
	))
	return db
}

func createProduct(t *testing.T, db *gorm.DB, name string, category string, price int64, stock int64, active bool) model.Product {
	t.Helper()
	p := model.Product{
		Name:          name,
		Description:   name + " description",
		Price:         decimal.NewFromInt(price),
		Category:      category,
		StockQuantity: stock,
		IsActive:      active,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func TestProductListActiveFilters(t *testing.T) {
	db := newTestDB(t)
	r := NewProductGormRepository(db)
	ctx := context.Background()

	createProduct(t, db, "Whey Protein Powder", "Protein", 2500, 50, true)
	createProduct(t, db, "Creatine Monohydrate", "Performance", 1200, 30, true)
	createProduct(t, db, "Old Protein Bar", "Protein", 300, 0, false)

	// 非公開は出ない、name昇順
	all, err := r.ListActive(ctx, repo.ProductListQuery{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Creatine Monohydrate", all[0].Name)
	assert.Equal(t, "Whey Protein Powder", all[1].Name)

	// カテゴリで絞る
	proteins, err := r.ListActive(ctx, repo.ProductListQuery{Category: "Protein"})
	require.NoError(t, err)
	require.Len(t, proteins, 1)
	assert.Equal(t, "Whey Protein Powder", proteins[0].Name)

	// 検索語はname/description両方に当たる
	found, err := r.ListActive(ctx, repo.ProductListQuery{Search: "Creatine"})
	require.NoError(t, err)
	require.Len(t, found, 1)

	none, err := r.ListActive(ctx, repo.ProductListQuery{Search: "no-such-thing"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestProductFindActiveByID(t *testing.T) {
	db := newTestDB(t)
	r := NewProductGormRepository(db)
	ctx := context.Background()

	active := createProduct(t, db, "Whey Protein Powder", "Protein", 2500, 50, true)
	inactive := createProduct(t, db, "Old Protein Bar", "Protein", 300, 0, false)

	got, err := r.FindActiveByID(ctx, active.ID)
	require.NoError(t, err)
	assert.Equal(t, active.Name, got.Name)
	assert.True(t, got.Price.Equal(decimal.NewFromInt(2500)))

	_, err = r.FindActiveByID(ctx, inactive.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)

	_, err = r.FindActiveByID(ctx, 9999)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestProductSoftDeleteKeepsRow(t *testing.T) {
	db := newTestDB(t)
	r := NewProductGormRepository(db)
	ctx := context.Background()

	p := createProduct(t, db, "Whey Protein Powder", "Protein", 2500, 50, true)

	require.NoError(t, r.SoftDelete(ctx, p.ID))

	// 公開一覧からは消えるが行は残る
	_, err := r.FindActiveByID(ctx, p.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)

	var row model.Product
	require.NoError(t, db.First(&row, p.ID).Error)
	assert.False(t, row.IsActive)

	assert.ErrorIs(t, r.SoftDelete(ctx, 9999), repo.ErrNotFound)
}

func TestProductDeactivateAll(t *testing.T) {
	db := newTestDB(t)
	r := NewProductGormRepository(db)
	ctx := context.Background()

	createProduct(t, db, "A", "Protein", 100, 1, true)
	createProduct(t, db, "B", "Protein", 100, 1, true)
	createProduct(t, db, "C", "Protein", 100, 1, false)

	n, err := r.DeactivateAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	all, err := r.ListActive(ctx, repo.ProductListQuery{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestProductListAllIncludesInactive(t *testing.T) {
	db := newTestDB(t)
	r := NewProductGormRepository(db)
	ctx := context.Background()

	createProduct(t, db, "A", "Protein", 100, 1, true)
	createProduct(t, db, "B", "Protein", 100, 1, false)

	all, err := r.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	// 新しい順
	assert.Equal(t, "B", all[0].Name)
}

func TestProductListCategories(t *testing.T) {
	db := newTestDB(t)
	r := NewProductGormRepository(db)
	ctx := context.Background()

	createProduct(t, db, "A", "Protein", 100, 1, true)
	createProduct(t, db, "B", "Protein", 100, 1, true)
	createProduct(t, db, "C", "Vitamins", 100, 1, true)
	createProduct(t, db, "D", "Misc", 100, 1, false)

	categories, err := r.ListCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Protein", "Vitamins"}, categories)
}

func TestDecreaseStockIfEnough(t *testing.T) {
	db := newTestDB(t)
	r := NewInventoryGormRepository(db)
	ctx := context.Background()

	p := createProduct(t, db, "Creatine Monohydrate", "Performance", 1200, 5, true)

	ok, err := r.DecreaseStockIfEnough(ctx, p.ID, 3)
	require.NoError(t, err)
	assert.True(t, ok)

	// 足りない分は減らさない
	ok, err = r.DecreaseStockIfEnough(ctx, p.ID, 3)
	require.NoError(t, err)
	assert.False(t, ok)

	var row model.Product
	require.NoError(t, db.First(&row, p.ID).Error)
	assert.Equal(t, int64(2), row.StockQuantity)

	// ちょうど残り全部は通る
	ok, err = r.DecreaseStockIfEnough(ctx, p.ID, 2)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestOrderCreateAndIdempotencyKey(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderGormRepository(db)
	items := NewOrderItemGormRepository(db)
	ctx := context.Background()

	id, err := orders.Create(ctx, model.Order{
		CustomerName:   "Ravi Kumar",
		CustomerPhone:  "9876543210",
		TotalAmount:    decimal.NewFromInt(5000),
		PaymentMethod:  model.PaymentMethodCash,
		PaymentStatus:  model.PaymentStatusApproved,
		OrderStatus:    model.OrderStatusPending,
		IdempotencyKey: "key-1",
	})
	require.NoError(t, err)
	require.NotZero(t, id)

	require.NoError(t, items.CreateBulk(ctx, id, []model.OrderItem{
		{ProductID: 1, ProductName: "Whey Protein Powder", Quantity: 2,
			UnitPrice: decimal.NewFromInt(2500), TotalPrice: decimal.NewFromInt(5000)},
	}))

	// キーで引ける
	found, ok, err := orders.FindByIdempotencyKey(ctx, "key-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, id, found.ID)

	_, ok, err = orders.FindByIdempotencyKey(ctx, "no-such-key")
	require.NoError(t, err)
	assert.False(t, ok)

	// 同じキーの二重INSERTはuniqueIndexで弾かれる
	_, err = orders.Create(ctx, model.Order{
		CustomerName:   "Ravi Kumar",
		CustomerPhone:  "9876543210",
		TotalAmount:    decimal.NewFromInt(5000),
		PaymentMethod:  model.PaymentMethodCash,
		PaymentStatus:  model.PaymentStatusApproved,
		OrderStatus:    model.OrderStatusPending,
		IdempotencyKey: "key-1",
	})
	require.Error(t, err)

	// 明細は注文に紐付く
	got, err := items.ListByOrderID(ctx, id)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Whey Protein Powder", got[0].ProductName)
}

func TestOrderStatusUpdates(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderGormRepository(db)
	ctx := context.Background()

	id, err := orders.Create(ctx, model.Order{
		CustomerName:   "Ravi Kumar",
		CustomerPhone:  "9876543210",
		TotalAmount:    decimal.NewFromInt(1200),
		PaymentMethod:  model.PaymentMethodUPI,
		PaymentStatus:  model.PaymentStatusPending,
		OrderStatus:    model.OrderStatusPending,
		IdempotencyKey: "key-status",
	})
	require.NoError(t, err)

	require.NoError(t, orders.UpdateOrderStatus(ctx, id, model.OrderStatusShipped))
	require.NoError(t, orders.UpdatePaymentStatus(ctx, id, model.PaymentStatusApproved))

	got, err := orders.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusShipped, got.OrderStatus)
	assert.Equal(t, model.PaymentStatusApproved, got.PaymentStatus)

	assert.ErrorIs(t, orders.UpdateOrderStatus(ctx, 9999, model.OrderStatusShipped), repo.ErrNotFound)
	assert.ErrorIs(t, orders.UpdatePaymentStatus(ctx, 9999, model.PaymentStatusApproved), repo.ErrNotFound)
}

func TestOrderListAdminFilters(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderGormRepository(db)
	ctx := context.Background()

	customerID := int64(7)
	seed := []model.Order{
		{CustomerName: "A", CustomerPhone: "1", TotalAmount: decimal.NewFromInt(100),
			PaymentMethod: model.PaymentMethodCash, PaymentStatus: model.PaymentStatusApproved,
			OrderStatus: model.OrderStatusPending, IdempotencyKey: "la-1"},
		{CustomerID: &customerID, CustomerName: "B", CustomerPhone: "2", TotalAmount: decimal.NewFromInt(200),
			PaymentMethod: model.PaymentMethodUPI, PaymentStatus: model.PaymentStatusPending,
			OrderStatus: model.OrderStatusShipped, IdempotencyKey: "la-2"},
		{CustomerID: &customerID, CustomerName: "C", CustomerPhone: "3", TotalAmount: decimal.NewFromInt(300),
			PaymentMethod: model.PaymentMethodUPI, PaymentStatus: model.PaymentStatusApproved,
			OrderStatus: model.OrderStatusPending, IdempotencyKey: "la-3"},
	}
	for _, o := range seed {
		_, err := orders.Create(ctx, o)
		require.NoError(t, err)
	}

	got, total, err := orders.ListAdmin(ctx, repo.AdminOrderListFilter{OrderStatus: "Pending"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, got, 2)

	got, total, err = orders.ListAdmin(ctx, repo.AdminOrderListFilter{PaymentMethod: "UPI", PaymentStatus: "Pending"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, got, 1)
	assert.Equal(t, "B", got[0].CustomerName)

	got, total, err = orders.ListAdmin(ctx, repo.AdminOrderListFilter{CustomerID: &customerID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	// 新しい順
	got, _, err = orders.ListAdmin(ctx, repo.AdminOrderListFilter{})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "C", got[0].CustomerName)
}

func TestOrderListByCustomerID(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderGormRepository(db)
	ctx := context.Background()

	mine := int64(1)
	other := int64(2)
	for i, cid := range []*int64{&mine, &other, &mine, nil} {
		_, err := orders.Create(ctx, model.Order{
			CustomerID:     cid,
			CustomerName:   "X",
			CustomerPhone:  "0",
			TotalAmount:    decimal.NewFromInt(100),
			PaymentMethod:  model.PaymentMethodCash,
			PaymentStatus:  model.PaymentStatusApproved,
			OrderStatus:    model.OrderStatusPending,
			IdempotencyKey: "lc-" + string(rune('a'+i)),
		})
		require.NoError(t, err)
	}

	got, total, err := orders.ListByCustomerID(ctx, mine, 1, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, got, 2)
}

func TestCustomerRepository(t *testing.T) {
	db := newTestDB(t)
	r := NewCustomerGormRepository(db)
	ctx := context.Background()

	c := &model.Customer{
		Name:         "Ravi Kumar",
		Phone:        "9876543210",
		Email:        "ravi@example.com",
		PasswordHash: "hash",
		IsRegistered: true,
	}
	require.NoError(t, r.Create(ctx, c))
	require.NotZero(t, c.ID)

	found, err := r.FindByEmail(ctx, "ravi@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, c.ID, found.ID)

	// 見つからないときは (nil, nil)
	missing, err := r.FindByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)

	byID, err := r.FindByID(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "Ravi Kumar", byID.Name)
}

func TestAdminUserRepository(t *testing.T) {
	db := newTestDB(t)
	r := NewAdminUserGormRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Create(ctx, &model.AdminUser{
		Username:     "admin",
		PasswordHash: "hash",
		Email:        "admin@bhadrakhealth.com",
	}))

	found, err := r.FindByUsername(ctx, "admin")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "admin@bhadrakhealth.com", found.Email)

	missing, err := r.FindByUsername(ctx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestTxManagerRollsBackOnError(t *testing.T) {
	db := newTestDB(t)
	tm := NewTxManagerGorm(db)
	ctx := context.Background()

	p := createProduct(t, db, "Creatine Monohydrate", "Performance", 1200, 5, true)

	err := tm.WithinTx(ctx, func(r repo.TxRepos) error {
		ok, err := r.Inventory().DecreaseStockIfEnough(ctx, p.ID, 3)
		require.NoError(t, err)
		require.True(t, ok)

		_, err = r.Orders().Create(ctx, model.Order{
			CustomerName:   "Ravi Kumar",
			CustomerPhone:  "9876543210",
			TotalAmount:    decimal.NewFromInt(3600),
			PaymentMethod:  model.PaymentMethodCash,
			PaymentStatus:  model.PaymentStatusApproved,
			OrderStatus:    model.OrderStatusPending,
			IdempotencyKey: "tx-1",
		})
		require.NoError(t, err)

		return assert.AnError
	})
	require.Error(t, err)

	// 在庫減算も注文も巻き戻る
	var row model.Product
	require.NoError(t, db.First(&row, p.ID).Error)
	assert.Equal(t, int64(5), row.StockQuantity)

	var count int64
	require.NoError(t, db.Model(&model.Order{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

// RevenueBuckets/TopProductsはpostgresのto_char前提なのでここでは触らない
func TestDashboardCountsAndRevenue(t *testing.T) {
	db := newTestDB(t)
	r := NewDashboardGormRepository(db)
	orders := NewOrderGormRepository(db)
	ctx := context.Background()

	createProduct(t, db, "A", "Protein", 100, 1, true)
	createProduct(t, db, "B", "Protein", 100, 1, false)

	seed := []model.Order{
		{CustomerName: "A", CustomerPhone: "1", TotalAmount: decimal.NewFromInt(2500),
			PaymentMethod: model.PaymentMethodCash, PaymentStatus: model.PaymentStatusApproved,
			OrderStatus: model.OrderStatusPending, IdempotencyKey: "d-1"},
		{CustomerName: "B", CustomerPhone: "2", TotalAmount: decimal.NewFromInt(1200),
			PaymentMethod: model.PaymentMethodUPI, PaymentStatus: model.PaymentStatusPending,
			OrderStatus: model.OrderStatusPending, IdempotencyKey: "d-2"},
		{CustomerName: "C", CustomerPhone: "3", TotalAmount: decimal.NewFromInt(800),
			PaymentMethod: model.PaymentMethodUPI, PaymentStatus: model.PaymentStatusApproved,
			OrderStatus: model.OrderStatusDelivered, IdempotencyKey: "d-3"},
	}
	for _, o := range seed {
		_, err := orders.Create(ctx, o)
		require.NoError(t, err)
	}

	products, err := r.CountActiveProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), products)

	total, err := r.CountOrders(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	pending, err := r.CountPendingPayments(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), pending)

	// Pendingの1200は売上に入らない
	revenue, err := r.SumApprovedRevenue(ctx, nil)
	require.NoError(t, err)
	assert.True(t, revenue.Equal(decimal.NewFromInt(3300)), "revenue = %s", revenue)

	recent, err := r.RecentOrders(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, recent, 2)
}

func TestAuditLogRepository(t *testing.T) {
	db := newTestDB(t)
	r := NewAuditLogGormRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Create(ctx, model.AuditLog{
		ActorAdminID: 1,
		Action:       model.AuditActionUpdateOrderStatus,
		ResourceType: model.AuditResourceOrder,
		ResourceID:   10,
		BeforeJSON:   `{"order_status":"Pending"}`,
		AfterJSON:    `{"order_status":"Shipped"}`,
	}))
	require.NoError(t, r.Create(ctx, model.AuditLog{
		ActorAdminID: 2,
		Action:       model.AuditActionCreateProduct,
		ResourceType: model.AuditResourceProduct,
		ResourceID:   3,
	}))

	actor := int64(1)
	logs, err := r.List(ctx, repo.AuditLogFilter{ActorAdminID: &actor})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, model.AuditActionUpdateOrderStatus, logs[0].Action)

	action := model.AuditActionCreateProduct
	logs, err = r.List(ctx, repo.AuditLogFilter{Action: &action})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, int64(3), logs[0].ResourceID)
}
