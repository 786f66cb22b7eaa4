package validator

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"app/internal/repository"
	auth "app/internal/usecase/auth_usecase"
)

var (
	// 入力が不正
	ErrInvalidInput = errors.New("invalid input")

	// emailが既に使用済み
	ErrEmailAlreadyUsed = errors.New("email already used")
)

type authValidator struct {
	customers repository.CustomerRepository
}

// Usecaseは interface を依存注入
func NewAuthValidator(customers repository.CustomerRepository) auth.AuthValidator {
	return &authValidator{customers: customers}
}

// 会員登録の入力を検証
func (v *authValidator) ValidateRegister(ctx context.Context, name string, email string, phone string, password string) error {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)

	// 必須チェック
	if name == "" || email == "" || phone == "" || password == "" {
		return ErrInvalidInput
	}

	// email形式
	if !isEmailLike(email) {
		return ErrInvalidInput
	}

	// パスワード最低文字数（MVP: 8）
	if len(password) < 8 {
		return ErrInvalidInput
	}

	// email重複チェック（DBが必要）
	c, err := v.customers.FindByEmail(ctx, email)
	if err == nil && c != nil {
		return ErrEmailAlreadyUsed
	}

	return nil
}

// ログインの入力を検証
func (v *authValidator) ValidateLogin(ctx context.Context, email string, password string) error {
	email = strings.TrimSpace(email)

	// 必須チェック
	if email == "" || password == "" {
		return ErrInvalidInput
	}

	// email形式
	if !isEmailLike(email) {
		return ErrInvalidInput
	}

	return nil
}

// 簡易メール形式をチェック
func isEmailLike(s string) bool {
	re := regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	return re.MatchString(s)
}
