package auth

import (
	"context"
	"strings"
	"time"

	"app/internal/domain/model"
	"app/internal/repository"
)

type LoginAdminInput struct {
	Username string
	Password string
}

type LoginAdminOutput struct {
	Admin model.AdminUser `json:"user"`
	Token JwtAccessToken  `json:"token"`
}

// 管理画面ログイン。admin_usersテーブルに対して照合する。
type LoginAdminUsecase struct {
	adminRepo repository.AdminUserRepository
	verifier  PasswordVerifier
	issuer    AccessTokenIssuer
	clock     Clock
	accessTTL time.Duration
}

func NewLoginAdminUsecase(
	adminRepo repository.AdminUserRepository,
	verifier PasswordVerifier,
	issuer AccessTokenIssuer,
	clock Clock,
	accessTTL time.Duration,
) *LoginAdminUsecase {
	return &LoginAdminUsecase{
		adminRepo: adminRepo,
		verifier:  verifier,
		issuer:    issuer,
		clock:     clock,
		accessTTL: accessTTL,
	}
}

func (u *LoginAdminUsecase) Execute(ctx context.Context, in LoginAdminInput) (LoginAdminOutput, error) {
	var out LoginAdminOutput

	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return out, ErrInvalidCredentials
	}

	admin, err := u.adminRepo.FindByUsername(ctx, username)
	if err != nil {
		return out, err
	}
	if admin == nil {
		return out, ErrInvalidCredentials
	}

	if ok := u.verifier.Verify(in.Password, admin.PasswordHash); !ok {
		return out, ErrInvalidCredentials
	}

	now := u.clock.Now()
	token, expiresAt, err := u.issuer.Issue(admin.ID, RoleAdmin, u.accessTTL, now)
	if err != nil {
		return out, err
	}

	safeAdmin := *admin
	safeAdmin.PasswordHash = ""

	out.Admin = safeAdmin
	out.Token = JwtAccessToken{
		AccessToken: token,
		ExpiresIn:   int(expiresAt.Sub(now).Seconds()),
	}
	return out, nil
}
