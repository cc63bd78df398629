// Package middleware holds the API-only echo middleware.
package middleware

import (
	"strings"

	deliverycontext "storefront/internal/delivery/context"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware guards the account routes with the session token issued at login.
type AuthMiddleware struct {
	tokens  service.TokenService
	account usecase.AccountUsecase
}

func NewAuthMiddleware(tokens service.TokenService, account usecase.AccountUsecase) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, account: account}
}

// Authenticate accepts a Bearer token whose user is still the stored current
// user. A valid token for a user that has since logged out is rejected.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return domainerrors.ErrNotLoggedIn
		}

		token, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || token == "" {
			return domainerrors.ErrSessionInvalid.WithDetails("expected a Bearer token")
		}

		claims, err := m.tokens.ValidateSessionToken(token)
		if err != nil {
			return err
		}

		user, err := m.account.CurrentUser(c.Request().Context())
		if err != nil {
			return err
		}
		if user.ID != claims.UserID {
			return domainerrors.ErrSessionInvalid.WithDetails("token belongs to another user")
		}

		deliverycontext.SetSession(c, claims, user)

		return next(c)
	}
}
