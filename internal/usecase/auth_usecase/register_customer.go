package auth

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	"app/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// JWTのroleクレーム値
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// メールまたはパスワードが違う
var ErrInvalidCredentials = errors.New("invalid credentials")

// 会員登録の入力
type RegisterCustomerInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Address  string
}

// token 形
type JwtAccessToken struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// handlerがJSONにして返す
type RegisterCustomerOutput struct {
	Customer model.Customer `json:"customer"`
	Token    JwtAccessToken `json:"token"`
}

// 平文パスワードからハッシュへ。
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// 入力パスワードと保存したハッシュを比べる約束
type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

// JWTを発行する約束
type AccessTokenIssuer interface {
	Issue(subjectID int64, role string, ttl time.Duration, now time.Time) (token string, expiresAt time.Time, err error)
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

// 登録/ログイン入力の検証の約束。実装は internal/validator。
type AuthValidator interface {
	ValidateRegister(ctx context.Context, name string, email string, phone string, password string) error
	ValidateLogin(ctx context.Context, email string, password string) error
}

// RegisterCustomerUsecaseは会員登録の処理。
type RegisterCustomerUsecase struct {
	customerRepo repository.CustomerRepository
	validator    AuthValidator
	hasher       PasswordHasher
	issuer       AccessTokenIssuer
	clock        Clock
	accessTTL    time.Duration
}

// DI
func NewRegisterCustomerUsecase(
	customerRepo repository.CustomerRepository,
	validator AuthValidator,
	hasher PasswordHasher,
	issuer AccessTokenIssuer,
	clock Clock,
	accessTTL time.Duration,
) *RegisterCustomerUsecase {
	return &RegisterCustomerUsecase{
		customerRepo: customerRepo,
		validator:    validator,
		hasher:       hasher,
		issuer:       issuer,
		clock:        clock,
		accessTTL:    accessTTL,
	}
}

// 会員登録実行
func (u *RegisterCustomerUsecase) Execute(ctx context.Context, in RegisterCustomerInput) (RegisterCustomerOutput, error) {
	var out RegisterCustomerOutput

	//必須・形式・メール重複チェック
	if err := u.validator.ValidateRegister(ctx, in.Name, in.Email, in.Phone, in.Password); err != nil {
		return out, err
	}

	// パスワードをハッシュ化
	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return out, err
	}

	// Customerを作って保存
	now := u.clock.Now()

	customer := &model.Customer{
		Name:         in.Name,
		Phone:        in.Phone,
		Email:        in.Email,
		PasswordHash: hashed, // ハッシュを保存（平文は保存しない）
		Address:      in.Address,
		IsRegistered: true,
		CreatedAt:    now,
	}

	if err := u.customerRepo.Create(ctx, customer); err != nil {
		return out, err
	}

	//登録と同時にログイン状態にする
	token, expiresAt, err := u.issuer.Issue(customer.ID, RoleCustomer, u.accessTTL, now)
	if err != nil {
		return out, err
	}

	// 返すときは password を空にして漏洩防止
	safeCustomer := *customer
	safeCustomer.PasswordHash = ""

	out.Customer = safeCustomer
	out.Token = JwtAccessToken{
		AccessToken: token,
		ExpiresIn:   int(expiresAt.Sub(now).Seconds()),
	}
	return out, nil
}

// bcryptハッシュ化
type BcryptPasswordHasher struct {
	cost int
}

// DI
func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordHasher{cost}
}

// bcryptでハッシュ化
func (h *BcryptPasswordHasher) Hash(plain string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}

	return string(hashedBytes), nil
}

// bcryptハッシュと平文を比較
type BcryptPasswordVerifier struct{}

// DI
func NewBcryptPasswordVerifier() *BcryptPasswordVerifier {
	return &BcryptPasswordVerifier{}
}

// 平文(plain)をbcryptで比較
func (v *BcryptPasswordVerifier) Verify(plain string, hashed string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
	return err == nil
}
