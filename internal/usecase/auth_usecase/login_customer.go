package auth

import (
	"context"
	"time"

	"app/internal/domain/model"
	"app/internal/repository"
)

// handlerからusecaseに渡す入力
type LoginCustomerInput struct {
	Email    string
	Password string
}

type LoginCustomerOutput struct {
	Customer model.Customer `json:"customer"`
	Token    JwtAccessToken `json:"token"`
}

type LoginCustomerUsecase struct {
	customerRepo repository.CustomerRepository
	validator    AuthValidator
	verifier     PasswordVerifier
	issuer       AccessTokenIssuer
	clock        Clock
	accessTTL    time.Duration
}

func NewLoginCustomerUsecase(
	customerRepo repository.CustomerRepository,
	validator AuthValidator,
	verifier PasswordVerifier,
	issuer AccessTokenIssuer,
	clock Clock,
	accessTTL time.Duration,
) *LoginCustomerUsecase {
	return &LoginCustomerUsecase{
		customerRepo: customerRepo,
		validator:    validator,
		verifier:     verifier,
		issuer:       issuer,
		clock:        clock,
		accessTTL:    accessTTL,
	}
}

// ログイン処理を実行する
func (u *LoginCustomerUsecase) Execute(ctx context.Context, in LoginCustomerInput) (LoginCustomerOutput, error) {
	var out LoginCustomerOutput

	if err := u.validator.ValidateLogin(ctx, in.Email, in.Password); err != nil {
		return out, err
	}

	//emailで顧客取得
	customer, err := u.customerRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return out, err
	}
	//未登録（ゲスト行など）はログイン不可
	if customer == nil || !customer.IsRegistered {
		return out, ErrInvalidCredentials
	}

	//パスワード照合
	if ok := u.verifier.Verify(in.Password, customer.PasswordHash); !ok {
		return out, ErrInvalidCredentials
	}

	//AccessToken発行
	now := u.clock.Now()
	token, expiresAt, err := u.issuer.Issue(customer.ID, RoleCustomer, u.accessTTL, now)
	if err != nil {
		return out, err
	}

	safeCustomer := *customer
	safeCustomer.PasswordHash = ""

	out.Customer = safeCustomer
	out.Token = JwtAccessToken{
		AccessToken: token,
		ExpiresIn:   int(expiresAt.Sub(now).Seconds()),
	}
	return out, nil
}
