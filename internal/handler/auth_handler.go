package handler

import (
	"errors"
	"net/http"

	auth "app/internal/usecase/auth_usecase"
	"app/internal/validator"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	registerCustomerUsecase *auth.RegisterCustomerUsecase
	loginCustomerUsecase    *auth.LoginCustomerUsecase
	loginAdminUsecase       *auth.LoginAdminUsecase
}

// DI
func NewAuthHandler(
	registerCustomerUsecase *auth.RegisterCustomerUsecase,
	loginCustomerUsecase *auth.LoginCustomerUsecase,
	loginAdminUsecase *auth.LoginAdminUsecase,
) *AuthHandler {
	return &AuthHandler{
		registerCustomerUsecase: registerCustomerUsecase,
		loginCustomerUsecase:    loginCustomerUsecase,
		loginAdminUsecase:       loginAdminUsecase,
	}
}

type registerCustomerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Address  string `json:"address"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /api/customers/register
func (h *AuthHandler) RegisterCustomer(c echo.Context) error {
	var req registerCustomerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	out, err := h.registerCustomerUsecase.Execute(c.Request().Context(), auth.RegisterCustomerInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Address:  req.Address,
	})
	if err != nil {
		return writeAuthError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":  "Registration successful",
		"token":    out.Token.AccessToken,
		"customer": out.Customer,
	})
}

// POST /api/customers/login
func (h *AuthHandler) LoginCustomer(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	out, err := h.loginCustomerUsecase.Execute(c.Request().Context(), auth.LoginCustomerInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return writeAuthError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "Login successful",
		"token":    out.Token.AccessToken,
		"customer": out.Customer,
	})
}

// POST /api/admin/login
func (h *AuthHandler) LoginAdmin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	out, err := h.loginAdminUsecase.Execute(c.Request().Context(), auth.LoginAdminInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return writeAuthError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"token":   out.Token.AccessToken,
		"user":    out.Admin,
	})
}

// 認証系のエラーをHTTPステータスへ変換する
func writeAuthError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, validator.ErrEmailAlreadyUsed):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Email already registered"})
	case errors.Is(err, validator.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid input"})
	case errors.Is(err, auth.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid credentials"})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}
