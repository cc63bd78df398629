package impl

import (
	"context"
	"testing"
	"time"

	"storefront/internal/domain/constants"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validShipping() usecase.ShippingDetails {
	return usecase.ShippingDetails{
		FirstName: "Asha",
		LastName:  "Rao",
		Email:     "asha@example.com",
		Phone:     "9876543210",
		Address:   "12 Lake Road",
		City:      "Pune",
		State:     "Maharashtra",
		Pincode:   "411001",
	}
}

func validCard() *usecase.CardDetails {
	return &usecase.CardDetails{
		Number: "4111 1111 1111 1111",
		Expiry: "12/29",
		CVV:    "123",
		Name:   "Asha Rao",
	}
}

func TestCheckoutService_SetDeliveryOption(t *testing.T) {
	f := createTestCheckoutService(t)

	session, err := f.srv.SetDeliveryOption(entity.DeliveryExpress)
	require.NoError(t, err)
	assert.Equal(t, int64(99), session.DeliveryCost)
	assert.Equal(t, 3, session.DeliveryDays)

	_, err = f.srv.SetDeliveryOption("drone")
	require.ErrorIs(t, err, domainerrors.ErrUnknownDeliveryOption)
	assert.Equal(t, entity.DeliveryExpress, f.srv.Session().DeliveryOption)

	session, err = f.srv.SetDeliveryOption(entity.DeliveryNextDay)
	require.NoError(t, err)
	assert.Equal(t, int64(199), session.DeliveryCost)
	assert.Equal(t, 1, session.DeliveryDays)
}

func TestCheckoutService_ApplyPromoCode(t *testing.T) {
	f := createTestCheckoutService(t)

	result := f.srv.ApplyPromoCode("  welcome10 ")
	assert.True(t, result.Applied)
	assert.Equal(t, "WELCOME10", result.Code)
	assert.Equal(t, int64(10), f.srv.Session().Discount)

	result = f.srv.ApplyPromoCode("BOGUS")
	assert.False(t, result.Applied)
	assert.Zero(t, f.srv.Session().Discount)
	assert.Empty(t, f.srv.Session().PromoCode)
}

func TestCheckoutService_ComputeTotals(t *testing.T) {
	f := createTestCheckoutService(t)

	_, err := f.srv.SetDeliveryOption(entity.DeliveryExpress)
	require.NoError(t, err)
	f.srv.ApplyPromoCode("SAVE20")

	totals := f.srv.ComputeTotals(1000)
	assert.Equal(t, int64(1000), totals.Subtotal)
	assert.Equal(t, int64(99), totals.DeliveryCost)
	assert.Equal(t, int64(20), totals.Discount)
	assert.Equal(t, int64(176), totals.Tax)
	assert.Equal(t, int64(1255), totals.GrandTotal)
}

func TestCheckoutService_View(t *testing.T) {
	f := createTestCheckoutService(t)
	ctx := context.Background()

	_, err := f.cart.AddItem(ctx, 5, 2)
	require.NoError(t, err)

	view, err := f.srv.View(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1598), view.Cart.Total)
	assert.Equal(t, int64(1598), view.Totals.Subtotal)
	assert.Equal(t, int64(288), view.Totals.Tax)
	assert.Equal(t, entity.DeliveryStandard, view.Session.DeliveryOption)
}

func TestCheckoutService_PlaceOrder_LoggedIn(t *testing.T) {
	f := createTestCheckoutService(t)
	ctx := context.Background()

	f.tokens.EXPECT().GenerateSessionToken(int64(1)).Return("token", nil)
	f.tokens.EXPECT().SessionTTL().Return(24 * time.Hour)
	_, err := f.account.Login(ctx, &usecase.LoginInput{Email: "john@example.com", Password: "secret"})
	require.NoError(t, err)

	_, err = f.cart.AddItem(ctx, 7, 1)
	require.NoError(t, err)
	_, err = f.cart.AddItem(ctx, 15, 2)
	require.NoError(t, err)
	_, err = f.srv.SetDeliveryOption(entity.DeliveryExpress)
	require.NoError(t, err)
	f.srv.ApplyPromoCode("FIRST50")

	f.payment.EXPECT().
		Process(mock.Anything, mock.MatchedBy(func(req *service.PaymentRequest) bool {
			return req.OrderNumber == "HE-2025-0042" && req.CardLast4 == "1111" && req.Amount == 4874
		})).
		Return(nil)

	var published *service.OrderPlacedEvent
	f.publisher.EXPECT().
		PublishOrderPlaced(mock.Anything, mock.AnythingOfType("*service.OrderPlacedEvent")).
		Run(func(_ context.Context, event *service.OrderPlacedEvent) { published = event }).
		Return(nil)

	confirmation, err := f.srv.PlaceOrder(ctx, &usecase.PlaceOrderInput{
		Shipping:      validShipping(),
		PaymentMethod: usecase.PaymentMethodCard,
		Card:          validCard(),
	})
	require.NoError(t, err)

	// 2499 + 2*799 = 4097; tax on 4047 = 728; 4097 + 99 + 728 - 50 = 4874
	assert.Equal(t, "HE-2025-0042", confirmation.OrderNumber)
	assert.Equal(t, int64(4097), confirmation.Totals.Subtotal)
	assert.Equal(t, int64(4874), confirmation.Totals.GrandTotal)
	assert.Equal(t, "17/3/2025", confirmation.DeliveryDate)
	assert.Equal(t, "Asha Rao, 12 Lake Road, Pune, Maharashtra - 411001", confirmation.Address)
	require.Len(t, confirmation.Items, 2)

	require.NotNil(t, confirmation.Order)
	assert.Equal(t, entity.OrderStatusPending, confirmation.Order.Status)
	assert.Equal(t, int64(4874), confirmation.Order.GrandTotal)
	assert.Equal(t, "Asha Rao", confirmation.Order.ShippingAddress.Name)

	orders, err := f.account.Orders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 4)
	assert.Equal(t, confirmation.Order.ID, orders[0].ID)

	count, err := f.cart.ItemCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	require.NotNil(t, published)
	assert.Equal(t, "HE-2025-0042", published.TransactionID)
	assert.Equal(t, confirmation.Order.ID, published.OrderID)
	assert.Equal(t, "INR", published.Currency)
	assert.Equal(t, int64(4874), published.Value)

	assert.Equal(t, defaultCheckoutSession(), f.srv.Session())
}

func TestCheckoutService_PlaceOrder_Guest(t *testing.T) {
	f := createTestCheckoutService(t)
	ctx := context.Background()

	_, err := f.cart.AddItem(ctx, 2, 1)
	require.NoError(t, err)

	f.payment.EXPECT().Process(mock.Anything, mock.Anything).Return(nil)
	f.publisher.EXPECT().PublishOrderPlaced(mock.Anything, mock.Anything).Return(nil)

	confirmation, err := f.srv.PlaceOrder(ctx, &usecase.PlaceOrderInput{
		Shipping:      validShipping(),
		PaymentMethod: usecase.PaymentMethodCOD,
	})
	require.NoError(t, err)
	assert.Nil(t, confirmation.Order)

	orders, err := f.account.Orders(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 3)

	items, err := f.cart.Items(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCheckoutService_PlaceOrder_PaymentFailureKeepsCart(t *testing.T) {
	f := createTestCheckoutService(t)
	ctx := context.Background()

	_, err := f.cart.AddItem(ctx, 3, 2)
	require.NoError(t, err)
	f.srv.ApplyPromoCode("NEWYEAR")

	f.payment.EXPECT().Process(mock.Anything, mock.Anything).Return(errors.New("gateway timeout"))

	_, err = f.srv.PlaceOrder(ctx, &usecase.PlaceOrderInput{
		Shipping:      validShipping(),
		PaymentMethod: usecase.PaymentMethodUPI,
	})
	require.ErrorIs(t, err, domainerrors.ErrOrderProcessingFailed)

	count, err := f.cart.ItemCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, int64(15), f.srv.Session().Discount)
}

func TestCheckoutService_PlaceOrder_PublishFailureIsNotFatal(t *testing.T) {
	f := createTestCheckoutService(t)
	ctx := context.Background()

	_, err := f.cart.AddItem(ctx, 1, 1)
	require.NoError(t, err)

	f.payment.EXPECT().Process(mock.Anything, mock.Anything).Return(nil)
	f.publisher.EXPECT().PublishOrderPlaced(mock.Anything, mock.Anything).Return(errors.New("broker down"))

	_, err = f.srv.PlaceOrder(ctx, &usecase.PlaceOrderInput{
		Shipping:      validShipping(),
		PaymentMethod: usecase.PaymentMethodUPI,
	})
	require.NoError(t, err)
}

func TestCheckoutService_PlaceOrder_Validation(t *testing.T) {
	badPhone := validShipping()
	badPhone.Phone = "12345"
	badPincode := validShipping()
	badPincode.Pincode = "4110"
	missingCity := validShipping()
	missingCity.City = ""
	badExpiry := validCard()
	badExpiry.Expiry = "13/29"
	shortCard := validCard()
	shortCard.Number = "4111 1111"

	tests := []struct {
		name    string
		input   *usecase.PlaceOrderInput
		wantErr error
	}{
		{
			name:    "bad phone",
			input:   &usecase.PlaceOrderInput{Shipping: badPhone, PaymentMethod: usecase.PaymentMethodCOD},
			wantErr: domainerrors.ErrValidationFailed,
		},
		{
			name:    "bad pincode",
			input:   &usecase.PlaceOrderInput{Shipping: badPincode, PaymentMethod: usecase.PaymentMethodCOD},
			wantErr: domainerrors.ErrValidationFailed,
		},
		{
			name:    "missing city",
			input:   &usecase.PlaceOrderInput{Shipping: missingCity, PaymentMethod: usecase.PaymentMethodCOD},
			wantErr: domainerrors.ErrValidationFailed,
		},
		{
			name:    "no payment method",
			input:   &usecase.PlaceOrderInput{Shipping: validShipping()},
			wantErr: domainerrors.ErrPaymentMethodRequired,
		},
		{
			name:    "unknown payment method",
			input:   &usecase.PlaceOrderInput{Shipping: validShipping(), PaymentMethod: "barter"},
			wantErr: domainerrors.ErrPaymentMethodRequired,
		},
		{
			name:    "card without details",
			input:   &usecase.PlaceOrderInput{Shipping: validShipping(), PaymentMethod: usecase.PaymentMethodCard},
			wantErr: domainerrors.ErrCardDetailsInvalid,
		},
		{
			name:    "card bad expiry",
			input:   &usecase.PlaceOrderInput{Shipping: validShipping(), PaymentMethod: usecase.PaymentMethodCard, Card: badExpiry},
			wantErr: domainerrors.ErrCardDetailsInvalid,
		},
		{
			name:    "card too short",
			input:   &usecase.PlaceOrderInput{Shipping: validShipping(), PaymentMethod: usecase.PaymentMethodCard, Card: shortCard},
			wantErr: domainerrors.ErrCardDetailsInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := createTestCheckoutService(t)
			ctx := context.Background()

			_, err := f.cart.AddItem(ctx, 1, 1)
			require.NoError(t, err)

			_, err = f.srv.PlaceOrder(ctx, tt.input)
			require.ErrorIs(t, err, tt.wantErr)

			count, err := f.cart.ItemCount(ctx)
			require.NoError(t, err)
			assert.Equal(t, 1, count)
		})
	}
}

func TestCheckoutService_PlaceOrder_EmptyCart(t *testing.T) {
	f := createTestCheckoutService(t)

	_, err := f.srv.PlaceOrder(context.Background(), &usecase.PlaceOrderInput{
		Shipping:      validShipping(),
		PaymentMethod: usecase.PaymentMethodUPI,
	})
	require.ErrorIs(t, err, domainerrors.ErrEmptyCart)
}

func loginDemoUser(t *testing.T, f *checkoutFixture) {
	t.Helper()

	f.tokens.EXPECT().GenerateSessionToken(int64(1)).Return("token", nil)
	f.tokens.EXPECT().SessionTTL().Return(24 * time.Hour)
	_, err := f.account.Login(context.Background(), &usecase.LoginInput{Email: "john@example.com", Password: "secret"})
	require.NoError(t, err)
}

func TestCheckoutService_PlaceOrder_KeepsItemsAddedDuringPayment(t *testing.T) {
	f := createTestCheckoutService(t)
	ctx := context.Background()
	loginDemoUser(t, f)

	_, err := f.cart.AddItem(ctx, 7, 1)
	require.NoError(t, err)

	f.payment.EXPECT().Process(mock.Anything, mock.Anything).
		Run(func(context.Context, *service.PaymentRequest) {
			_, err := f.cart.AddItem(ctx, 15, 3)
			assert.NoError(t, err)
			_, err = f.cart.AddItem(ctx, 7, 1)
			assert.NoError(t, err)
		}).
		Return(nil).Once()
	f.publisher.EXPECT().PublishOrderPlaced(mock.Anything, mock.Anything).Return(nil).Once()

	confirmation, err := f.srv.PlaceOrder(ctx, &usecase.PlaceOrderInput{
		Shipping:      validShipping(),
		PaymentMethod: usecase.PaymentMethodUPI,
	})
	require.NoError(t, err)
	require.Len(t, confirmation.Items, 1)
	assert.Equal(t, 7, confirmation.Items[0].ProductID)
	assert.Equal(t, 1, confirmation.Items[0].Quantity)

	items, err := f.cart.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 7, items[0].ProductID)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, 15, items[1].ProductID)
	assert.Equal(t, 3, items[1].Quantity)
}

func TestCheckoutService_PlaceOrder_RejectsConcurrentPlacement(t *testing.T) {
	f := createTestCheckoutService(t)
	ctx := context.Background()
	loginDemoUser(t, f)

	_, err := f.cart.AddItem(ctx, 3, 1)
	require.NoError(t, err)

	input := &usecase.PlaceOrderInput{Shipping: validShipping(), PaymentMethod: usecase.PaymentMethodCOD}

	var secondErr error
	f.payment.EXPECT().Process(mock.Anything, mock.Anything).
		Run(func(context.Context, *service.PaymentRequest) {
			_, secondErr = f.srv.PlaceOrder(ctx, input)
		}).
		Return(nil).Once()
	f.publisher.EXPECT().PublishOrderPlaced(mock.Anything, mock.Anything).Return(nil).Once()

	_, err = f.srv.PlaceOrder(ctx, input)
	require.NoError(t, err)
	require.ErrorIs(t, secondErr, domainerrors.ErrOrderInProgress)

	orders, err := f.account.Orders(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 4)

	// Once the first placement is done the next one sees the emptied cart.
	_, err = f.srv.PlaceOrder(ctx, input)
	require.ErrorIs(t, err, domainerrors.ErrEmptyCart)
}

func TestCheckoutService_PlaceOrder_CommitFailureKeepsCartAndLedger(t *testing.T) {
	tests := []struct {
		name    string
		failKey string
	}{
		{name: "ledger write fails", failKey: constants.KeyOrders},
		{name: "cart write fails after ledger", failKey: constants.KeyCart},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, driver := newFailingStore(t)
			f := createTestCheckoutServiceOn(t, s)
			ctx := context.Background()
			loginDemoUser(t, f)

			_, err := f.cart.AddItem(ctx, 7, 2)
			require.NoError(t, err)

			f.payment.EXPECT().Process(mock.Anything, mock.Anything).Return(nil).Once()
			driver.failWrites(tt.failKey)

			confirmation, err := f.srv.PlaceOrder(ctx, &usecase.PlaceOrderInput{
				Shipping:      validShipping(),
				PaymentMethod: usecase.PaymentMethodUPI,
			})
			requireStoreWriteFailed(t, err)
			assert.Nil(t, confirmation)

			count, err := f.cart.ItemCount(ctx)
			require.NoError(t, err)
			assert.Equal(t, 2, count)

			orders, err := f.account.Orders(ctx)
			require.NoError(t, err)
			require.Len(t, orders, 3)
			assert.Equal(t, "HE001", orders[0].ID)
		})
	}
}
