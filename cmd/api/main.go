package main

import (
	"log"
	"strconv"
	"time"

	"app/internal/config"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/server"
	"app/internal/usecase"
	auth "app/internal/usecase/auth_usecase"
	"app/internal/validator"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
)

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

type jwtIssuer struct {
	secret []byte
}

func (i *jwtIssuer) Issue(subjectID int64, role string, ttl time.Duration, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(ttl)

	claims := jwt.MapClaims{
		"sub":  strconv.FormatInt(subjectID, 10),
		"role": role,
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	//.envは無くても動く（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		log.Fatal(err)
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatal(err)
	}
	if err := db.Seed(gormDB); err != nil {
		log.Fatal(err)
	}

	//Repository（GORM実装）生成
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	customerRepo := infraRepo.NewCustomerGormRepository(gormDB)
	adminUserRepo := infraRepo.NewAdminUserGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	dashRepo := infraRepo.NewDashboardGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	clock := &realClock{}

	//bcrypt（会員登録：Hash / ログイン：Verify）
	hasher := auth.NewBcryptPasswordHasher(12)
	verifier := auth.NewBcryptPasswordVerifier()

	//JWT issuer
	issuer := &jwtIssuer{secret: []byte(cfg.JWTSecret)}

	//TTL（顧客は長め、管理者は1日）
	customerTTL := 30 * 24 * time.Hour
	adminTTL := 24 * time.Hour

	authValidator := validator.NewAuthValidator(customerRepo)

	//Usecase生成
	registerUC := auth.NewRegisterCustomerUsecase(customerRepo, authValidator, hasher, issuer, clock, customerTTL)
	loginUC := auth.NewLoginCustomerUsecase(customerRepo, authValidator, verifier, issuer, clock, customerTTL)
	adminLoginUC := auth.NewLoginAdminUsecase(adminUserRepo, verifier, issuer, clock, adminTTL)

	productUC := usecase.NewProductUsecase(productRepo)
	orderUC := usecase.NewOrderUsecase(txManager)
	adminProductUC := usecase.NewAdminProductUsecase(productRepo, auditRepo)
	adminOrderUC := usecase.NewAdminOrderUsecase(txManager, auditRepo)
	dashboardUC := usecase.NewDashboardUsecase(dashRepo, nil)

	//Handler生成
	h := server.Handlers{
		Auth:           handler.NewAuthHandler(registerUC, loginUC, adminLoginUC),
		Product:        handler.NewProductHandler(productUC),
		Order:          handler.NewOrderHandler(orderUC),
		AdminProduct:   handler.NewAdminProductHandler(adminProductUC),
		AdminOrder:     handler.NewAdminOrderHandler(adminOrderUC),
		AdminDashboard: handler.NewAdminDashboardHandler(dashboardUC),
	}

	//Server起動
	if err := server.Start(cfg, h); err != nil {
		log.Fatal(err)
	}
}
