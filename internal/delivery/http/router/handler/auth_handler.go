package handler

import (
	"net/http"

	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AuthHandler holds the login, signup and logout endpoints.
type AuthHandler struct {
	account usecase.AccountUsecase
}

func NewAuthHandler(account usecase.AccountUsecase) *AuthHandler {
	return &AuthHandler{account: account}
}

// PasswordStrengthRequest is the body of POST /api/auth/password-strength.
type PasswordStrengthRequest struct {
	Password string `json:"password"`
}

// PasswordStrengthResponse rates a password as Weak, Medium or Strong.
type PasswordStrengthResponse struct {
	Strength entity.PasswordStrength `json:"strength"`
}

func (h *AuthHandler) Login(c echo.Context) error {
	var input usecase.LoginInput
	if err := bind(c, &input); err != nil {
		return err
	}

	output, err := h.account.Login(c.Request().Context(), &input)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, output, "Login successful")
}

func (h *AuthHandler) Signup(c echo.Context) error {
	var input usecase.SignupInput
	if err := bind(c, &input); err != nil {
		return err
	}

	output, err := h.account.Signup(c.Request().Context(), &input)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, output, "Account created successfully")
}

// Logout runs behind the auth middleware.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.account.Logout(c.Request().Context()); err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, nil, "Logout successful")
}

func (h *AuthHandler) PasswordStrength(c echo.Context) error {
	var req PasswordStrengthRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	return response.OK(c, PasswordStrengthResponse{Strength: h.account.PasswordStrength(req.Password)})
}
