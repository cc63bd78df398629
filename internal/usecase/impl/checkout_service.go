package impl

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"storefront/config"
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

// deliveryDateLayout renders dates the way en-IN shoppers read them (D/M/YYYY).
const deliveryDateLayout = "2/1/2006"

// checkoutService implements the CheckoutUsecase interface. The checkout
// session belongs to the running page, so it is kept in memory.
type checkoutService struct {
	mu      sync.Mutex
	session entity.CheckoutSession

	// placing is held for the whole of a PlaceOrder call.
	placing sync.Mutex

	store     repository.Store
	cart      usecase.CartUsecase
	account   usecase.AccountUsecase
	payment   service.PaymentProcessor
	publisher service.EventPublisher
	metrics   service.MetricsRecorder
	validate  *validator.Validate
	taxRate   float64
	logger    *slog.Logger
	now       func() time.Time
	intN      func(n int) int
}

// CheckoutServiceParams holds dependencies for CheckoutService, injected by Fx.
type CheckoutServiceParams struct {
	fx.In

	Store     repository.Store
	Cart      usecase.CartUsecase
	Account   usecase.AccountUsecase
	Payment   service.PaymentProcessor
	Publisher service.EventPublisher
	Metrics   service.MetricsRecorder
	Config    *config.Config
	Logger    *slog.Logger
}

// NewCheckoutService is the constructor for checkoutService.
func NewCheckoutService(params CheckoutServiceParams) usecase.CheckoutUsecase {
	return &checkoutService{
		session:   defaultCheckoutSession(),
		store:     params.Store,
		cart:      params.Cart,
		account:   params.Account,
		payment:   params.Payment,
		publisher: params.Publisher,
		metrics:   params.Metrics,
		validate:  validation.New(),
		taxRate:   params.Config.Checkout.TaxRate,
		logger:    params.Logger,
		now:       time.Now,
		intN:      rand.IntN,
	}
}

func defaultCheckoutSession() entity.CheckoutSession {
	rate, _ := entity.DeliveryStandard.Rate()

	return entity.CheckoutSession{
		DeliveryOption: entity.DeliveryStandard,
		DeliveryCost:   rate.Cost,
		DeliveryDays:   rate.Days,
	}
}

func (srv *checkoutService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// SetDeliveryOption switches delivery cost and lead time.
func (srv *checkoutService) SetDeliveryOption(option entity.DeliveryOption) (*entity.CheckoutSession, error) {
	rate, ok := option.Rate()
	if !ok {
		return nil, domainerrors.ErrUnknownDeliveryOption.WithDetails(string(option))
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()

	srv.session.DeliveryOption = option
	srv.session.DeliveryCost = rate.Cost
	srv.session.DeliveryDays = rate.Days
	session := srv.session

	return &session, nil
}

// ApplyPromoCode sets the discount of a known code. An unknown code clears
// whatever code was active before.
func (srv *checkoutService) ApplyPromoCode(code string) entity.PromoResult {
	normalized := entity.NormalizePromoCode(code)
	discount, ok := entity.LookupPromoCode(normalized)

	srv.mu.Lock()
	if ok {
		srv.session.PromoCode = normalized
		srv.session.Discount = discount
	} else {
		srv.session.PromoCode = ""
		srv.session.Discount = 0
	}
	srv.mu.Unlock()

	srv.metrics.PromoApplied(ok)

	if !ok {
		return entity.PromoResult{Applied: false}
	}

	return entity.PromoResult{Applied: true, Code: normalized, Discount: discount}
}

// ComputeTotals prices subtotal with the current delivery option and discount.
func (srv *checkoutService) ComputeTotals(subtotal int64) entity.CheckoutTotals {
	session := srv.Session()

	return entity.ComputeCheckoutTotals(subtotal, session.DeliveryCost, session.Discount, srv.taxRate)
}

// Session returns a copy of the checkout session.
func (srv *checkoutService) Session() entity.CheckoutSession {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	return srv.session
}

// View returns the session priced against the current cart.
func (srv *checkoutService) View(ctx context.Context) (*usecase.CheckoutView, error) {
	summary, err := srv.cart.Summary(ctx)
	if err != nil {
		return nil, err
	}

	return &usecase.CheckoutView{
		Session: srv.Session(),
		Totals:  srv.ComputeTotals(summary.Total),
		Cart:    *summary,
	}, nil
}

// PlaceOrder runs the checkout: validation, payment, ledger entry and removal
// of the ordered lines from the cart. Nothing is recorded when the payment step
// fails. A second call while one is running is rejected.
func (srv *checkoutService) PlaceOrder(ctx context.Context, input *usecase.PlaceOrderInput) (*entity.OrderConfirmation, error) {
	start := srv.now()

	if err := srv.validateInput(input); err != nil {
		return nil, err
	}

	if !srv.placing.TryLock() {
		return nil, domainerrors.ErrOrderInProgress
	}
	defer srv.placing.Unlock()

	cart, err := srv.cart.Summary(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load cart")
	}
	if len(cart.Items) == 0 {
		return nil, domainerrors.ErrEmptyCart
	}

	session := srv.Session()
	totals := entity.ComputeCheckoutTotals(cart.Total, session.DeliveryCost, session.Discount, srv.taxRate)
	orderNumber := srv.orderNumber(start)

	payment := &service.PaymentRequest{
		OrderNumber: orderNumber,
		Method:      input.PaymentMethod,
		Amount:      totals.GrandTotal,
	}
	if input.Card != nil {
		payment.CardLast4 = lastDigits(input.Card.Number, 4)
	}

	if err := srv.payment.Process(ctx, payment); err != nil {
		srv.metrics.OrderFailed("payment")
		srv.log(ctx).Warn("Order payment failed",
			slog.String("orderNumber", orderNumber),
			slog.Any("error", err),
		)

		return nil, errors.Wrap(domainerrors.ErrOrderProcessingFailed, err.Error())
	}

	shipping := shippingAddressFrom(&input.Shipping)

	var order *entity.Order
	err = srv.store.Execute(ctx, func(txCtx context.Context) error {
		loggedIn, err := srv.account.IsLoggedIn(txCtx)
		if err != nil {
			return err
		}

		if loggedIn {
			order, err = srv.account.AddOrder(txCtx, &usecase.OrderDraft{
				Items:           entity.OrderItemsFromCart(cart.Items),
				Total:           totals.Subtotal,
				Shipping:        totals.DeliveryCost,
				Tax:             totals.Tax,
				GrandTotal:      totals.GrandTotal,
				ShippingAddress: shipping,
			})
			if err != nil {
				return err
			}
		}

		return srv.cart.RemoveOrdered(txCtx, cart.Items)
	})
	if err != nil {
		srv.metrics.OrderFailed("store")
		srv.log(ctx).Error("Paid order could not be recorded",
			slog.String("orderNumber", orderNumber),
			slog.Any("error", err),
		)

		var appErr domainerrors.AppError
		if !errors.As(err, &appErr) {
			err = domainerrors.NewStoreError(err, "order "+orderNumber)
		}

		return nil, errors.Wrap(err, "failed to record order")
	}

	confirmation := &entity.OrderConfirmation{
		OrderNumber:    orderNumber,
		Order:          order,
		Totals:         totals,
		DeliveryOption: session.DeliveryOption,
		DeliveryDate:   start.AddDate(0, 0, session.DeliveryDays).Format(deliveryDateLayout),
		Address:        oneLineAddress(&input.Shipping),
		Items:          cart.Items,
	}

	srv.publishOrderPlaced(ctx, confirmation)
	srv.metrics.OrderPlaced(input.PaymentMethod, srv.now().Sub(start))

	srv.mu.Lock()
	srv.session = defaultCheckoutSession()
	srv.mu.Unlock()

	srv.log(ctx).Info("Order placed",
		slog.String("orderNumber", orderNumber),
		slog.Int64("grandTotal", totals.GrandTotal),
		slog.Bool("recorded", order != nil),
	)

	return confirmation, nil
}

func (srv *checkoutService) validateInput(input *usecase.PlaceOrderInput) error {
	if err := srv.validate.Struct(input.Shipping); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(strings.Join(validation.FieldErrors(err), "; "))
	}

	switch input.PaymentMethod {
	case usecase.PaymentMethodCard:
		if input.Card == nil {
			return domainerrors.ErrCardDetailsInvalid
		}
		if err := srv.validate.Struct(input.Card); err != nil {
			return domainerrors.ErrCardDetailsInvalid.WithDetails(strings.Join(validation.FieldErrors(err), "; "))
		}
	case usecase.PaymentMethodUPI, usecase.PaymentMethodCOD:
	case "":
		return domainerrors.ErrPaymentMethodRequired
	default:
		return domainerrors.ErrPaymentMethodRequired.WithDetails("unsupported payment method " + input.PaymentMethod)
	}

	return nil
}

// orderNumber is "HE-<year>-<4 random digits>".
func (srv *checkoutService) orderNumber(at time.Time) string {
	return fmt.Sprintf("HE-%d-%04d", at.Year(), srv.intN(10000))
}

func (srv *checkoutService) publishOrderPlaced(ctx context.Context, confirmation *entity.OrderConfirmation) {
	items := make([]service.PurchasedItem, 0, len(confirmation.Items))
	for _, line := range confirmation.Items {
		items = append(items, service.PurchasedItem{
			ItemID:   line.ProductID,
			ItemName: line.Title,
			Category: string(line.Category),
			Quantity: line.Quantity,
			Price:    line.Price,
		})
	}

	event := &service.OrderPlacedEvent{
		RequestID:     deliverycontext.GetRequestIDFromContext(ctx),
		TransactionID: confirmation.OrderNumber,
		Value:         confirmation.Totals.GrandTotal,
		Currency:      constants.CurrencyCode,
		Items:         items,
		PlacedAt:      srv.now().UTC().Format(time.RFC3339),
	}
	if confirmation.Order != nil {
		event.OrderID = confirmation.Order.ID
	}

	if err := srv.publisher.PublishOrderPlaced(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish order event",
			slog.String("transactionID", event.TransactionID),
			slog.Any("error", err),
		)
	}
}

func shippingAddressFrom(s *usecase.ShippingDetails) entity.ShippingAddress {
	return entity.ShippingAddress{
		Name:    s.FirstName + " " + s.LastName,
		Phone:   s.Phone,
		Address: s.Address,
		City:    s.City,
		State:   s.State,
		Pincode: s.Pincode,
	}
}

// oneLineAddress is "First Last, address, city, state - pincode".
func oneLineAddress(s *usecase.ShippingDetails) string {
	return fmt.Sprintf("%s %s, %s, %s, %s - %s", s.FirstName, s.LastName, s.Address, s.City, s.State, s.Pincode)
}

func lastDigits(number string, n int) string {
	digits := strings.ReplaceAll(number, " ", "")
	if len(digits) <= n {
		return digits
	}

	return digits[len(digits)-n:]
}
