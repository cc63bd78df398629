package impl

import (
	"context"
	"fmt"
	"testing"
	"time"

	"storefront/internal/domain/constants"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountService_Login(t *testing.T) {
	s := newTestStore(t)
	srv, tokens := createTestAccountService(t, s)
	ctx := context.Background()

	tokens.EXPECT().GenerateSessionToken(int64(1)).Return("signed", nil)
	tokens.EXPECT().SessionTTL().Return(24 * time.Hour)

	out, err := srv.Login(ctx, &usecase.LoginInput{Email: " john@example.com ", Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, "signed", out.Token)
	assert.Equal(t, int64(86400), out.ExpiresIn)
	assert.Equal(t, "john@example.com", out.User.Email)
	assert.Equal(t, "John Doe", out.User.FullName())

	loggedIn, err := srv.IsLoggedIn(ctx)
	require.NoError(t, err)
	assert.True(t, loggedIn)

	assert.False(t, keyExists(t, s, constants.KeyOrders))
	assert.False(t, keyExists(t, s, constants.KeyAddresses))
}

func TestAccountService_Login_MissingCredentials(t *testing.T) {
	srv, _ := createTestAccountService(t, newTestStore(t))

	_, err := srv.Login(context.Background(), &usecase.LoginInput{Email: "john@example.com"})
	require.ErrorIs(t, err, domainerrors.ErrMissingCredentials)

	_, err = srv.Login(context.Background(), &usecase.LoginInput{Email: "  ", Password: "x"})
	require.ErrorIs(t, err, domainerrors.ErrMissingCredentials)
}

func TestAccountService_Signup(t *testing.T) {
	valid := usecase.SignupInput{
		FirstName:       "Asha",
		LastName:        "Rao",
		Email:           "asha@example.com",
		Phone:           "9876543210",
		Password:        "Str0ng!pass",
		ConfirmPassword: "Str0ng!pass",
		AcceptTerms:     true,
	}
	mismatch := valid
	mismatch.ConfirmPassword = "other"
	noTerms := valid
	noTerms.AcceptTerms = false
	missing := valid
	missing.Phone = ""

	tests := []struct {
		name    string
		input   usecase.SignupInput
		wantErr error
	}{
		{name: "missing field", input: missing, wantErr: domainerrors.ErrMissingCredentials},
		{name: "password mismatch", input: mismatch, wantErr: domainerrors.ErrPasswordMismatch},
		{name: "terms not accepted", input: noTerms, wantErr: domainerrors.ErrTermsNotAccepted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := createTestAccountService(t, newTestStore(t))

			_, err := srv.Signup(context.Background(), &tt.input)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("success", func(t *testing.T) {
		srv, tokens := createTestAccountService(t, newTestStore(t))
		joined := srv.now()

		tokens.EXPECT().GenerateSessionToken(joined.UnixMilli()).Return("signed", nil)
		tokens.EXPECT().SessionTTL().Return(time.Hour)

		out, err := srv.Signup(context.Background(), &valid)
		require.NoError(t, err)
		assert.Equal(t, joined.UnixMilli(), out.User.ID)
		assert.Equal(t, "2025-03-14", out.User.JoinDate)

		user, err := srv.CurrentUser(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Asha", user.FirstName)
	})
}

func TestAccountService_LogoutKeepsHistory(t *testing.T) {
	s := newTestStore(t)
	srv, tokens := createTestAccountService(t, s)
	ctx := context.Background()

	tokens.EXPECT().GenerateSessionToken(int64(1)).Return("signed", nil)
	tokens.EXPECT().SessionTTL().Return(time.Hour)
	_, err := srv.Login(ctx, &usecase.LoginInput{Email: "john@example.com", Password: "x"})
	require.NoError(t, err)

	_, err = srv.AddOrder(ctx, &usecase.OrderDraft{Total: 100, GrandTotal: 118})
	require.NoError(t, err)

	require.NoError(t, srv.Logout(ctx))

	_, err = srv.CurrentUser(ctx)
	require.ErrorIs(t, err, domainerrors.ErrNotLoggedIn)

	orders, err := srv.Orders(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 4)
}

func TestAccountService_UpdateProfile(t *testing.T) {
	srv, tokens := createTestAccountService(t, newTestStore(t))
	ctx := context.Background()

	_, err := srv.UpdateProfile(ctx, &usecase.UpdateProfileInput{FirstName: "A", LastName: "B", Phone: "1"})
	require.ErrorIs(t, err, domainerrors.ErrNotLoggedIn)

	tokens.EXPECT().GenerateSessionToken(int64(1)).Return("signed", nil)
	tokens.EXPECT().SessionTTL().Return(time.Hour)
	_, err = srv.Login(ctx, &usecase.LoginInput{Email: "john@example.com", Password: "x"})
	require.NoError(t, err)

	_, err = srv.UpdateProfile(ctx, &usecase.UpdateProfileInput{FirstName: "Jane"})
	require.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	user, err := srv.UpdateProfile(ctx, &usecase.UpdateProfileInput{FirstName: "Jane", LastName: "Roe", Phone: "9999999999"})
	require.NoError(t, err)
	assert.Equal(t, "Jane Roe", user.FullName())
	assert.Equal(t, "john@example.com", user.Email)
}

func TestAccountService_Orders_DemoSeedAndPrepend(t *testing.T) {
	s := newTestStore(t)
	srv, _ := createTestAccountService(t, s)
	ctx := context.Background()

	orders, err := srv.Orders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, "HE001", orders[0].ID)
	assert.False(t, keyExists(t, s, constants.KeyOrders))

	order, err := srv.AddOrder(ctx, &usecase.OrderDraft{
		Items:      []entity.OrderItem{{ProductID: 1, Name: "Airtight Storage Containers Set", Price: 1299, Quantity: 1}},
		Total:      1299,
		Tax:        234,
		GrandTotal: 1533,
	})
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("HE%06d", srv.now().UnixMilli()%1_000_000), order.ID)
	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.Equal(t, "2025-03-14", order.Date)
	assert.Nil(t, order.TrackingNumber)

	orders, err = srv.Orders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 4)
	assert.Equal(t, order.ID, orders[0].ID)
	assert.Equal(t, "HE001", orders[1].ID)
	assert.True(t, keyExists(t, s, constants.KeyOrders))
}

func TestAccountService_AddOrder_WriteFailureKeepsLedger(t *testing.T) {
	s, driver := newFailingStore(t)
	srv, _ := createTestAccountService(t, s)
	ctx := context.Background()

	driver.failWrites(constants.KeyOrders)

	order, err := srv.AddOrder(ctx, &usecase.OrderDraft{
		Items:      []entity.OrderItem{{ProductID: 4, Name: "Kids Safety Mat", Price: 899, Quantity: 1}},
		Total:      899,
		Tax:        162,
		GrandTotal: 1061,
	})
	requireStoreWriteFailed(t, err)
	assert.Nil(t, order)

	orders, err := srv.Orders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, "HE001", orders[0].ID)
	assert.False(t, keyExists(t, s, constants.KeyOrders))
}

func TestAccountService_FilterAndGetOrder(t *testing.T) {
	srv, _ := createTestAccountService(t, newTestStore(t))
	ctx := context.Background()

	shipped, err := srv.FilterOrders(ctx, entity.OrderStatusShipped)
	require.NoError(t, err)
	require.Len(t, shipped, 1)
	assert.Equal(t, "HE002", shipped[0].ID)

	all, err := srv.FilterOrders(ctx, entity.OrderStatusAll)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	pending, err := srv.FilterOrders(ctx, entity.OrderStatusPending)
	require.NoError(t, err)
	assert.Empty(t, pending)

	order, err := srv.GetOrder(ctx, "HE003")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusProcessing, order.Status)

	_, err = srv.GetOrder(ctx, "HE999")
	require.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
}

func TestAccountService_AdvanceOrderStatus(t *testing.T) {
	srv, _ := createTestAccountService(t, newTestStore(t))
	ctx := context.Background()

	order, err := srv.AdvanceOrderStatus(ctx, "HE003", entity.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusShipped, order.Status)
	require.NotNil(t, order.TrackingNumber)
	assert.Regexp(t, `^HE2025\d{9}$`, *order.TrackingNumber)

	_, err = srv.AdvanceOrderStatus(ctx, "HE001", entity.OrderStatusPending)
	require.ErrorIs(t, err, domainerrors.ErrInvalidStatusTransition)

	_, err = srv.AdvanceOrderStatus(ctx, "HE002", entity.OrderStatusShipped)
	require.ErrorIs(t, err, domainerrors.ErrInvalidStatusTransition)

	order, err = srv.AdvanceOrderStatus(ctx, "HE002", entity.OrderStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, "HE2025001234568", *order.TrackingNumber)

	_, err = srv.AdvanceOrderStatus(ctx, "nope", entity.OrderStatusDelivered)
	require.ErrorIs(t, err, domainerrors.ErrOrderNotFound)

	stored, err := srv.GetOrder(ctx, "HE003")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusShipped, stored.Status)
}

func TestAccountService_Addresses(t *testing.T) {
	srv, _ := createTestAccountService(t, newTestStore(t))
	ctx := context.Background()

	addresses, err := srv.Addresses(ctx)
	require.NoError(t, err)
	require.Len(t, addresses, 2)
	assert.True(t, addresses[0].IsDefault)

	added, err := srv.AddAddress(ctx, &usecase.AddressInput{
		Type:      "Parents",
		Name:      "Asha Rao",
		Phone:     "9876543210",
		Address:   "4 Hill View",
		City:      "Mysuru",
		State:     "Karnataka",
		Pincode:   "570001",
		IsDefault: true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), added.ID)

	addresses, err = srv.Addresses(ctx)
	require.NoError(t, err)
	require.Len(t, addresses, 3)
	defaults := 0
	for _, a := range addresses {
		if a.IsDefault {
			defaults++
			assert.Equal(t, int64(3), a.ID)
		}
	}
	assert.Equal(t, 1, defaults)

	_, err = srv.AddAddress(ctx, &usecase.AddressInput{Type: "Bad", Pincode: "12"})
	require.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	require.NoError(t, srv.DeleteAddress(ctx, 1))
	require.ErrorIs(t, srv.DeleteAddress(ctx, 1), domainerrors.ErrAddressNotFound)

	addresses, err = srv.Addresses(ctx)
	require.NoError(t, err)
	assert.Len(t, addresses, 2)
}

func TestAccountService_CorruptedOrdersReadAsDemo(t *testing.T) {
	s := newTestStore(t)
	putRaw(t, s, constants.KeyOrders, `not json`)
	srv, _ := createTestAccountService(t, s)

	orders, err := srv.Orders(context.Background())
	require.NoError(t, err)
	assert.Len(t, orders, 3)
	assert.False(t, keyExists(t, s, constants.KeyOrders))
}

func TestAccountService_PasswordStrength(t *testing.T) {
	srv, _ := createTestAccountService(t, newTestStore(t))

	assert.Equal(t, entity.PasswordWeak, srv.PasswordStrength("abc"))
	assert.Equal(t, entity.PasswordMedium, srv.PasswordStrength("abcdefgh1"))
	assert.Equal(t, entity.PasswordStrong, srv.PasswordStrength("Abcdefg1!"))
}
