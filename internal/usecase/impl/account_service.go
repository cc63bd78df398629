package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/constants"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/infra/validation"
	"storefront/internal/usecase"

	"github.com/go-playground/validator/v10"
	"go.uber.org/fx"
)

const isoDate = "2006-01-02"

// accountService implements the AccountUsecase interface.
type accountService struct {
	mu       sync.Mutex
	store    repository.Store
	tokens   service.TokenService
	validate *validator.Validate
	logger   *slog.Logger
	now      func() time.Time
}

// AccountServiceParams holds dependencies for AccountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	Store        repository.Store
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAccountService is the constructor for accountService.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		store:    params.Store,
		tokens:   params.TokenService,
		validate: validation.New(),
		logger:   params.Logger,
		now:      time.Now,
	}
}

func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Login accepts any non-empty credentials and signs in the demo user.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.SessionOutput, error) {
	if strings.TrimSpace(input.Email) == "" || input.Password == "" {
		return nil, domainerrors.ErrMissingCredentials
	}

	user := &entity.User{
		ID:        demoUserID,
		Email:     strings.TrimSpace(input.Email),
		FirstName: demoFirstName,
		LastName:  demoLastName,
		Phone:     demoPhone,
		JoinDate:  demoJoinDate,
	}

	return srv.startSession(ctx, user)
}

// Signup validates the form and signs in a new user.
func (srv *accountService) Signup(ctx context.Context, input *usecase.SignupInput) (*usecase.SessionOutput, error) {
	required := []string{input.FirstName, input.LastName, input.Email, input.Phone, input.Password, input.ConfirmPassword}
	for _, field := range required {
		if strings.TrimSpace(field) == "" {
			return nil, domainerrors.ErrMissingCredentials
		}
	}

	if input.Password != input.ConfirmPassword {
		return nil, domainerrors.ErrPasswordMismatch
	}

	if !input.AcceptTerms {
		return nil, domainerrors.ErrTermsNotAccepted
	}

	now := srv.now()
	user := &entity.User{
		ID:        now.UnixMilli(),
		Email:     strings.TrimSpace(input.Email),
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Phone:     strings.TrimSpace(input.Phone),
		JoinDate:  now.Format(isoDate),
	}

	return srv.startSession(ctx, user)
}

func (srv *accountService) startSession(ctx context.Context, user *entity.User) (*usecase.SessionOutput, error) {
	if err := writeDocument(ctx, srv.store, constants.KeyCurrentUser, user); err != nil {
		return nil, errors.Wrap(err, "failed to save current user")
	}

	token, err := srv.tokens.GenerateSessionToken(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue session token")
	}

	srv.log(ctx).Info("User signed in", slog.Int64("userID", user.ID))

	return &usecase.SessionOutput{
		User:      user,
		Token:     token,
		ExpiresIn: int64(srv.tokens.SessionTTL().Seconds()),
	}, nil
}

// Logout forgets the current user; order and address history stay.
func (srv *accountService) Logout(ctx context.Context) error {
	if err := deleteDocument(ctx, srv.store, constants.KeyCurrentUser); err != nil {
		return errors.Wrap(err, "failed to clear current user")
	}

	srv.log(ctx).Info("User signed out")

	return nil
}

// IsLoggedIn reports whether a current user is stored.
func (srv *accountService) IsLoggedIn(ctx context.Context) (bool, error) {
	user, err := srv.currentUser(ctx)
	if err != nil {
		return false, err
	}

	return user != nil, nil
}

// CurrentUser returns the signed-in user or ErrNotLoggedIn.
func (srv *accountService) CurrentUser(ctx context.Context) (*entity.User, error) {
	user, err := srv.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domainerrors.ErrNotLoggedIn
	}

	return user, nil
}

func (srv *accountService) currentUser(ctx context.Context) (*entity.User, error) {
	return readDocument[*entity.User](ctx, srv.store, srv.log(ctx), constants.KeyCurrentUser)
}

// UpdateProfile edits the name and phone of the current user.
func (srv *accountService) UpdateProfile(ctx context.Context, input *usecase.UpdateProfileInput) (*entity.User, error) {
	if err := srv.validate.Struct(input); err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails(strings.Join(validation.FieldErrors(err), "; "))
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()

	user, err := srv.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	user.FirstName = strings.TrimSpace(input.FirstName)
	user.LastName = strings.TrimSpace(input.LastName)
	user.Phone = strings.TrimSpace(input.Phone)

	if err := writeDocument(ctx, srv.store, constants.KeyCurrentUser, user); err != nil {
		return nil, errors.Wrap(err, "failed to save profile")
	}

	return user, nil
}

// --- Orders ---

func (srv *accountService) loadOrders(ctx context.Context) ([]entity.Order, error) {
	orders, err := readDocument[[]entity.Order](ctx, srv.store, srv.log(ctx), constants.KeyOrders)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return demoOrders(), nil
	}

	return orders, nil
}

// AddOrder prepends a pending order. The first order added to an empty
// ledger also persists the demo orders it was read with.
func (srv *accountService) AddOrder(ctx context.Context, draft *usecase.OrderDraft) (*entity.Order, error) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	orders, err := srv.loadOrders(ctx)
	if err != nil {
		return nil, err
	}

	now := srv.now()
	millis := strconv.FormatInt(now.UnixMilli(), 10)
	order := entity.Order{
		ID:              "HE" + millis[len(millis)-6:],
		Date:            now.Format(isoDate),
		Status:          entity.OrderStatusPending,
		Items:           draft.Items,
		Total:           draft.Total,
		Shipping:        draft.Shipping,
		Tax:             draft.Tax,
		GrandTotal:      draft.GrandTotal,
		ShippingAddress: draft.ShippingAddress,
	}
	if order.Items == nil {
		order.Items = []entity.OrderItem{}
	}

	orders = append([]entity.Order{order}, orders...)
	if err := writeDocument(ctx, srv.store, constants.KeyOrders, orders); err != nil {
		return nil, errors.Wrap(err, "failed to save order")
	}

	srv.log(ctx).Info("Order recorded",
		slog.String("orderID", order.ID),
		slog.Int64("grandTotal", order.GrandTotal),
	)

	return &order, nil
}

// Orders returns the ledger, newest first.
func (srv *accountService) Orders(ctx context.Context) ([]entity.Order, error) {
	return srv.loadOrders(ctx)
}

// FilterOrders returns the orders with the given status, or all of them for "all".
func (srv *accountService) FilterOrders(ctx context.Context, status entity.OrderStatus) ([]entity.Order, error) {
	orders, err := srv.loadOrders(ctx)
	if err != nil {
		return nil, err
	}
	if status == "" || status == entity.OrderStatusAll {
		return orders, nil
	}

	filtered := make([]entity.Order, 0, len(orders))
	for _, order := range orders {
		if order.Status == status {
			filtered = append(filtered, order)
		}
	}

	return filtered, nil
}

// GetOrder looks an order up by id.
func (srv *accountService) GetOrder(ctx context.Context, orderID string) (*entity.Order, error) {
	orders, err := srv.loadOrders(ctx)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		if orders[i].ID == orderID {
			return &orders[i], nil
		}
	}

	return nil, domainerrors.ErrOrderNotFound
}

// AdvanceOrderStatus moves an order one step along its lifecycle. A shipped
// order without a tracking number gets one.
func (srv *accountService) AdvanceOrderStatus(ctx context.Context, orderID string, next entity.OrderStatus) (*entity.Order, error) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	orders, err := srv.loadOrders(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range orders {
		if orders[i].ID == orderID {
			idx = i

			break
		}
	}
	if idx < 0 {
		return nil, domainerrors.ErrOrderNotFound
	}

	order := &orders[idx]
	if !order.Status.CanTransitionTo(next) {
		return nil, domainerrors.ErrInvalidStatusTransition.WithDetails(
			fmt.Sprintf("%s cannot move to %s", order.Status, next),
		)
	}

	order.Status = next
	if next == entity.OrderStatusShipped && order.TrackingNumber == nil {
		order.TrackingNumber = strPtr(srv.trackingNumber())
	}

	if err := writeDocument(ctx, srv.store, constants.KeyOrders, orders); err != nil {
		return nil, errors.Wrap(err, "failed to save order status")
	}

	srv.log(ctx).Info("Order status advanced",
		slog.String("orderID", order.ID),
		slog.String("status", string(next)),
	)

	result := *order

	return &result, nil
}

// trackingNumber is "HE" + year + the last 9 digits of the epoch milliseconds.
func (srv *accountService) trackingNumber() string {
	now := srv.now()

	return fmt.Sprintf("HE%d%09d", now.Year(), now.UnixMilli()%1_000_000_000)
}

// --- Addresses ---

func (srv *accountService) loadAddresses(ctx context.Context) ([]entity.Address, error) {
	addresses, err := readDocument[[]entity.Address](ctx, srv.store, srv.log(ctx), constants.KeyAddresses)
	if err != nil {
		return nil, err
	}
	if len(addresses) == 0 {
		return demoAddresses(), nil
	}

	return addresses, nil
}

// Addresses returns the saved addresses.
func (srv *accountService) Addresses(ctx context.Context) ([]entity.Address, error) {
	return srv.loadAddresses(ctx)
}

// AddAddress appends an address. A new default address clears the previous default.
func (srv *accountService) AddAddress(ctx context.Context, input *usecase.AddressInput) (*entity.Address, error) {
	if err := srv.validate.Struct(input); err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails(strings.Join(validation.FieldErrors(err), "; "))
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()

	addresses, err := srv.loadAddresses(ctx)
	if err != nil {
		return nil, err
	}

	var maxID int64
	for i := range addresses {
		maxID = max(maxID, addresses[i].ID)
		if input.IsDefault {
			addresses[i].IsDefault = false
		}
	}

	address := entity.Address{
		ID:        maxID + 1,
		Type:      input.Type,
		Name:      input.Name,
		Phone:     input.Phone,
		Address:   input.Address,
		City:      input.City,
		State:     input.State,
		Pincode:   input.Pincode,
		IsDefault: input.IsDefault,
	}
	addresses = append(addresses, address)

	if err := writeDocument(ctx, srv.store, constants.KeyAddresses, addresses); err != nil {
		return nil, errors.Wrap(err, "failed to save address")
	}

	return &address, nil
}

// DeleteAddress removes a saved address.
func (srv *accountService) DeleteAddress(ctx context.Context, addressID int64) error {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	addresses, err := srv.loadAddresses(ctx)
	if err != nil {
		return err
	}

	kept := make([]entity.Address, 0, len(addresses))
	for _, address := range addresses {
		if address.ID != addressID {
			kept = append(kept, address)
		}
	}
	if len(kept) == len(addresses) {
		return domainerrors.ErrAddressNotFound
	}

	if err := writeDocument(ctx, srv.store, constants.KeyAddresses, kept); err != nil {
		return errors.Wrap(err, "failed to delete address")
	}

	return nil
}

// PasswordStrength rates a signup password.
func (srv *accountService) PasswordStrength(password string) entity.PasswordStrength {
	return entity.EvaluatePasswordStrength(password)
}
