package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

type AdminProductUsecase struct {
	productRepo repo.ProductRepository
	auditRepo   repo.AuditLogRepository
}

// DI
func NewAdminProductUsecase(
	productRepo repo.ProductRepository,
	auditRepo repo.AuditLogRepository,
) *AdminProductUsecase {
	return &AdminProductUsecase{
		productRepo: productRepo,
		auditRepo:   auditRepo,
	}
}

type ProductInput struct {
	Name          string
	Description   string
	Price         decimal.Decimal
	Category      string
	StockQuantity int64
	ImageURL      string
	IsActive      *bool
}

// 管理画面の商品一覧（非公開も含む）
func (u *AdminProductUsecase) List(ctx context.Context, actorAdminID int64) ([]model.Product, error) {
	if actorAdminID <= 0 {
		return []model.Product{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	products, err := u.productRepo.ListAll(ctx)
	if err != nil {
		return []model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return products, nil
}

// 商品作成。name/price/categoryは必須。
func (u *AdminProductUsecase) Create(ctx context.Context, actorAdminID int64, in ProductInput) (model.Product, error) {
	if actorAdminID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := validateProductInput(in); err != nil {
		return model.Product{}, err
	}

	isActive := true
	if in.IsActive != nil {
		isActive = *in.IsActive
	}

	p := model.Product{
		Name:          strings.TrimSpace(in.Name),
		Description:   in.Description,
		Price:         in.Price,
		Category:      strings.TrimSpace(in.Category),
		StockQuantity: in.StockQuantity,
		ImageURL:      in.ImageURL,
		IsActive:      isActive,
	}

	created, err := u.productRepo.Create(ctx, p)
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.writeAudit(ctx, actorAdminID, model.AuditActionCreateProduct, created.ID, "", created)
	return created, nil
}

// 商品更新（全フィールド上書き）
func (u *AdminProductUsecase) Update(ctx context.Context, actorAdminID int64, productID int64, in ProductInput) error {
	if actorAdminID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := validateProductInput(in); err != nil {
		return err
	}

	isActive := true
	if in.IsActive != nil {
		isActive = *in.IsActive
	}

	p := model.Product{
		ID:            productID,
		Name:          strings.TrimSpace(in.Name),
		Description:   in.Description,
		Price:         in.Price,
		Category:      strings.TrimSpace(in.Category),
		StockQuantity: in.StockQuantity,
		ImageURL:      in.ImageURL,
		IsActive:      isActive,
	}

	err := u.productRepo.Update(ctx, p)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.writeAudit(ctx, actorAdminID, model.AuditActionUpdateProduct, productID, "", p)
	return nil
}

// 商品削除（is_active=false）
func (u *AdminProductUsecase) Delete(ctx context.Context, actorAdminID int64, productID int64) error {
	if actorAdminID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.productRepo.SoftDelete(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.writeAudit(ctx, actorAdminID, model.AuditActionDeleteProduct, productID, "", nil)
	return nil
}

// 全商品を非公開にする。非公開にした件数を返す。
func (u *AdminProductUsecase) DeactivateAll(ctx context.Context, actorAdminID int64) (int64, error) {
	if actorAdminID <= 0 {
		return 0, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	n, err := u.productRepo.DeactivateAll(ctx)
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return n, nil
}

func validateProductInput(in ProductInput) error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Category) == "" || in.Price.IsZero() {
		return NewHTTPError(http.StatusBadRequest, "Name, price, and category are required")
	}
	if in.Price.IsNegative() {
		return NewHTTPError(http.StatusBadRequest, "invalid price")
	}
	if in.StockQuantity < 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid stock_quantity")
	}
	return nil
}

// 監査ログ書き込み。保存失敗で商品操作は巻き戻さない。
func (u *AdminProductUsecase) writeAudit(ctx context.Context, actorAdminID int64, action model.AuditAction, resourceID int64, before string, after interface{}) {
	afterJSON := ""
	if after != nil {
		if b, err := json.Marshal(after); err == nil {
			afterJSON = string(b)
		}
	}

	_ = u.auditRepo.Create(ctx, model.AuditLog{
		ActorAdminID: actorAdminID,
		Action:       action,
		ResourceType: model.AuditResourceProduct,
		ResourceID:   resourceID,
		BeforeJSON:   before,
		AfterJSON:    afterJSON,
		CreatedAt:    time.Now(),
	})
}
