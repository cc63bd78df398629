// Package constants holds the fixed names shared between config, infra and delivery.
package constants

// Environments
const (
	EnvDevelop    = "develop"
	EnvProduction = "production"
)

// Store drivers
const (
	StoreDriverMemory   = "memory"
	StoreDriverFile     = "file"
	StoreDriverRedis    = "redis"
	StoreDriverPostgres = "postgres"
)

// Pub/Sub providers
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Persisted profile keys. The names match the keys the storefront pages have
// always written, so an exported browser profile can be loaded as-is.
const (
	KeyCart                    = "cart"
	KeyCurrentUser             = "homeEssentials_user"
	KeyOrders                  = "homeEssentials_orders"
	KeyAddresses               = "homeEssentials_addresses"
	KeyWishlist                = "wishlist"
	KeyNewsletterSubscriptions = "newsletter_subscriptions"
	KeyAnalyticsPurchases      = "analytics_purchases"
)

// Currency
const (
	CurrencyCode   = "INR"
	CurrencySymbol = "₹"
)

// Event types
const (
	EventTypeOrderPlaced = "order.placed"
)
