package usecase

import (
	"context"
	"net/http"
	"testing"

	"app/internal/domain/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProductInput() ProductInput {
	return ProductInput{
		Name:          "Fish Oil",
		Description:   "Omega-3 capsules",
		Price:         decimal.NewFromInt(900),
		Category:      "Vitamins",
		StockQuantity: 15,
	}
}

func TestAdminCreateProduct(t *testing.T) {
	store := newFakeStore()
	audit := &fakeAuditRepo{}
	uc := NewAdminProductUsecase(&fakeProductRepo{store: store}, audit)

	created, err := uc.Create(context.Background(), 1, validProductInput())
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	assert.True(t, created.IsActive) // 未指定なら公開
	assert.Equal(t, "Fish Oil", store.products[created.ID].Name)

	require.Len(t, audit.logs, 1)
	assert.Equal(t, model.AuditActionCreateProduct, audit.logs[0].Action)
	assert.Equal(t, created.ID, audit.logs[0].ResourceID)
}

func TestAdminCreateProductRequiresFields(t *testing.T) {
	uc := NewAdminProductUsecase(&fakeProductRepo{store: newFakeStore()}, &fakeAuditRepo{})

	in := validProductInput()
	in.Name = ""
	_, err := uc.Create(context.Background(), 1, in)
	require.Error(t, err)

	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	assert.Equal(t, "Name, price, and category are required", he.Message)

	in = validProductInput()
	in.Price = decimal.Zero
	_, err = uc.Create(context.Background(), 1, in)
	require.Error(t, err)

	in = validProductInput()
	in.StockQuantity = -1
	_, err = uc.Create(context.Background(), 1, in)
	require.Error(t, err)
}

func TestAdminUpdateProductNotFound(t *testing.T) {
	uc := NewAdminProductUsecase(&fakeProductRepo{store: newFakeStore()}, &fakeAuditRepo{})

	err := uc.Update(context.Background(), 1, 99, validProductInput())
	require.Error(t, err)

	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
	assert.Equal(t, "Product not found", he.Message)
}

func TestAdminDeleteIsSoft(t *testing.T) {
	store := newFakeStore()
	seedProducts(store)
	audit := &fakeAuditRepo{}
	uc := NewAdminProductUsecase(&fakeProductRepo{store: store}, audit)

	err := uc.Delete(context.Background(), 1, 1)
	require.NoError(t, err)

	// 行は残るが非公開になる
	p, ok := store.products[1]
	require.True(t, ok)
	assert.False(t, p.IsActive)

	require.Len(t, audit.logs, 1)
	assert.Equal(t, model.AuditActionDeleteProduct, audit.logs[0].Action)
}

func TestAdminDeactivateAll(t *testing.T) {
	store := newFakeStore()
	seedProducts(store)
	uc := NewAdminProductUsecase(&fakeProductRepo{store: store}, &fakeAuditRepo{})

	n, err := uc.DeactivateAll(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n) // 元から非公開の1件は数えない

	for _, p := range store.products {
		assert.False(t, p.IsActive)
	}
}

func TestAdminListIncludesInactive(t *testing.T) {
	store := newFakeStore()
	seedProducts(store)
	uc := NewAdminProductUsecase(&fakeProductRepo{store: store}, &fakeAuditRepo{})

	products, err := uc.List(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, products, 3) // 非公開の1件も見える
}

func TestPublicListHidesInactive(t *testing.T) {
	store := newFakeStore()
	seedProducts(store)
	uc := NewProductUsecase(&fakeProductRepo{store: store})

	products, err := uc.List(context.Background(), ListProductsInput{})
	require.NoError(t, err)
	require.Len(t, products, 2)
	for _, p := range products {
		assert.True(t, p.IsActive)
	}

	_, err = uc.Detail(context.Background(), 3)
	require.Error(t, err)
	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}

func TestPublicCategories(t *testing.T) {
	store := newFakeStore()
	seedProducts(store)
	uc := NewProductUsecase(&fakeProductRepo{store: store})

	categories, err := uc.Categories(context.Background())
	require.NoError(t, err)
	// 非公開商品のカテゴリ（Misc）は出ない
	assert.Equal(t, []string{"Performance", "Protein"}, categories)
}
