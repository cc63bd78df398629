package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// --- Input DTOs ---

// LoginInput defines the data required to log in.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupInput defines the data required to create an account.
type SignupInput struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	AcceptTerms     bool   `json:"acceptTerms"`
}

// UpdateProfileInput defines the editable profile fields.
type UpdateProfileInput struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Phone     string `json:"phone" validate:"required"`
}

// OrderDraft carries the caller-supplied fields of a new order.
type OrderDraft struct {
	Items           []entity.OrderItem     `json:"items"`
	Total           int64                  `json:"total"`
	Shipping        int64                  `json:"shipping"`
	Tax             int64                  `json:"tax"`
	GrandTotal      int64                  `json:"grandTotal"`
	ShippingAddress entity.ShippingAddress `json:"shippingAddress"`
}

// AddressInput defines the data required to save an address.
type AddressInput struct {
	Type      string `json:"type" validate:"required"`
	Name      string `json:"name" validate:"required"`
	Phone     string `json:"phone" validate:"required"`
	Address   string `json:"address" validate:"required"`
	City      string `json:"city" validate:"required"`
	State     string `json:"state" validate:"required"`
	Pincode   string `json:"pincode" validate:"required,numeric,len=6"`
	IsDefault bool   `json:"isDefault"`
}

// --- Output DTOs ---

// SessionOutput is returned by login and signup.
type SessionOutput struct {
	User      *entity.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresIn int64        `json:"expiresIn"` // Seconds.
}

// AccountUsecase defines the interface for the mock account session and its
// order and address history. History is shared by every user of the profile.
type AccountUsecase interface {
	Login(ctx context.Context, input *LoginInput) (*SessionOutput, error)
	Signup(ctx context.Context, input *SignupInput) (*SessionOutput, error)
	Logout(ctx context.Context) error
	IsLoggedIn(ctx context.Context) (bool, error)
	CurrentUser(ctx context.Context) (*entity.User, error)
	UpdateProfile(ctx context.Context, input *UpdateProfileInput) (*entity.User, error)

	// AddOrder prepends a new pending order to the ledger and persists it.
	AddOrder(ctx context.Context, draft *OrderDraft) (*entity.Order, error)
	Orders(ctx context.Context) ([]entity.Order, error)
	FilterOrders(ctx context.Context, status entity.OrderStatus) ([]entity.Order, error)
	GetOrder(ctx context.Context, orderID string) (*entity.Order, error)
	AdvanceOrderStatus(ctx context.Context, orderID string, next entity.OrderStatus) (*entity.Order, error)

	Addresses(ctx context.Context) ([]entity.Address, error)
	AddAddress(ctx context.Context, input *AddressInput) (*entity.Address, error)
	DeleteAddress(ctx context.Context, addressID int64) error

	PasswordStrength(password string) entity.PasswordStrength
}
