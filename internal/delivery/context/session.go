package context

import (
	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"

	"github.com/labstack/echo/v4"
)

const (
	// KeySession stores the validated session claims on the echo context.
	KeySession ContextKey = "session"

	// KeyUser stores the signed-in user on the echo context.
	KeyUser ContextKey = "user"
)

// SetSession stores the claims and the user the token was issued to.
func SetSession(c echo.Context, claims *service.SessionClaims, user *entity.User) {
	c.Set(string(KeySession), claims)
	c.Set(string(KeyUser), user)
}

// GetSession returns the claims set by the auth middleware.
func GetSession(c echo.Context) (*service.SessionClaims, bool) {
	claims, ok := c.Get(string(KeySession)).(*service.SessionClaims)

	return claims, ok && claims != nil
}

// GetUser returns the user set by the auth middleware.
func GetUser(c echo.Context) (*entity.User, bool) {
	user, ok := c.Get(string(KeyUser)).(*entity.User)

	return user, ok && user != nil
}
