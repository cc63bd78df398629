// Package router registers the storefront API routes.
package router

import (
	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/router/handler"
	"storefront/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	CatalogHandler    *handler.CatalogHandler
	CartHandler       *handler.CartHandler
	CheckoutHandler   *handler.CheckoutHandler
	AuthHandler       *handler.AuthHandler
	AccountHandler    *handler.AccountHandler
	WishlistHandler   *handler.WishlistHandler
	NewsletterHandler *handler.NewsletterHandler
	EventsHandler     *handler.EventsHandler
	AuthMiddleware    *middleware.AuthMiddleware
	Metrics           *metrics.Recorder
}

type router struct {
	catalog    *handler.CatalogHandler
	cart       *handler.CartHandler
	checkout   *handler.CheckoutHandler
	auth       *handler.AuthHandler
	account    *handler.AccountHandler
	wishlist   *handler.WishlistHandler
	newsletter *handler.NewsletterHandler
	events     *handler.EventsHandler

	authMiddleware *middleware.AuthMiddleware
	metrics        *metrics.Recorder
}

func NewRouter(params RouterParams) *router {
	return &router{
		catalog:        params.CatalogHandler,
		cart:           params.CartHandler,
		checkout:       params.CheckoutHandler,
		auth:           params.AuthHandler,
		account:        params.AccountHandler,
		wishlist:       params.WishlistHandler,
		newsletter:     params.NewsletterHandler,
		events:         params.EventsHandler,
		authMiddleware: params.AuthMiddleware,
		metrics:        params.Metrics,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(r.metrics.Handler()))

	api := e.Group("/api")
	api.GET("/events", r.events.Stream)

	catalogGroup := api.Group("/catalog")
	{
		catalogGroup.GET("/categories", r.catalog.Categories)
		catalogGroup.GET("/products", r.catalog.Browse)
		catalogGroup.GET("/products/featured", r.catalog.Featured)
		catalogGroup.GET("/products/:id", r.catalog.GetProduct)
	}

	cartGroup := api.Group("/cart")
	{
		cartGroup.GET("", r.cart.Summary)
		cartGroup.DELETE("", r.cart.Clear)
		cartGroup.POST("/items", r.cart.AddItem)
		cartGroup.PATCH("/items/:productId", r.cart.UpdateQuantity)
		cartGroup.DELETE("/items/:productId", r.cart.RemoveItem)
		cartGroup.POST("/commands", r.cart.Apply)
	}

	// Guests can check out; the order is only recorded for a signed-in user.
	checkoutGroup := api.Group("/checkout")
	{
		checkoutGroup.GET("", r.checkout.View)
		checkoutGroup.PUT("/delivery", r.checkout.SetDeliveryOption)
		checkoutGroup.POST("/promo", r.checkout.ApplyPromoCode)
		checkoutGroup.POST("/orders", r.checkout.PlaceOrder)
	}

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", r.auth.Login)
		authGroup.POST("/signup", r.auth.Signup)
		authGroup.POST("/password-strength", r.auth.PasswordStrength)
		authGroup.POST("/logout", r.auth.Logout, r.authMiddleware.Authenticate)
	}

	accountGroup := api.Group("/account")
	accountGroup.Use(r.authMiddleware.Authenticate)
	{
		accountGroup.GET("/me", r.account.Me)
		accountGroup.PUT("/me", r.account.UpdateProfile)
		accountGroup.GET("/orders", r.account.Orders)
		accountGroup.GET("/orders/:id", r.account.GetOrder)
		accountGroup.POST("/orders/:id/advance", r.account.AdvanceOrder)
		accountGroup.GET("/orders/:id/qrcode", r.account.OrderQRCode)
		accountGroup.GET("/addresses", r.account.Addresses)
		accountGroup.POST("/addresses", r.account.AddAddress)
		accountGroup.DELETE("/addresses/:id", r.account.DeleteAddress)
	}

	wishlistGroup := api.Group("/wishlist")
	{
		wishlistGroup.GET("", r.wishlist.Items)
		wishlistGroup.POST("/:productId/toggle", r.wishlist.Toggle)
	}

	api.POST("/newsletter", r.newsletter.Subscribe)
}
