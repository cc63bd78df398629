package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"storefront/config"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/infra/catalog"
	"storefront/internal/infra/metrics"
	"storefront/internal/infra/store"
	mockSvc "storefront/internal/mocks/service"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore(t *testing.T) repository.Store {
	t.Helper()

	s, err := store.NewStore(store.OpenMemoryDriver(), discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

// failingDriver is a memory driver whose writes to selected keys fail.
type failingDriver struct {
	store.Driver

	mu   sync.Mutex
	keys map[string]bool
}

func (d *failingDriver) failWrites(keys ...string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, k := range keys {
		d.keys[k] = true
	}
}

func (d *failingDriver) fails(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.keys[key]
}

func (d *failingDriver) Set(ctx context.Context, key string, value []byte) error {
	if d.fails(key) {
		return errors.Errorf("disk full writing %s", key)
	}

	return d.Driver.Set(ctx, key, value)
}

func (d *failingDriver) Delete(ctx context.Context, key string) error {
	if d.fails(key) {
		return errors.Errorf("disk full deleting %s", key)
	}

	return d.Driver.Delete(ctx, key)
}

func newFailingStore(t *testing.T) (repository.Store, *failingDriver) {
	t.Helper()

	driver := &failingDriver{Driver: store.OpenMemoryDriver(), keys: make(map[string]bool)}
	s, err := store.NewStore(driver, discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s, driver
}

func requireStoreWriteFailed(t *testing.T, err error) {
	t.Helper()

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr), "expected an AppError, got %v", err)
	assert.Equal(t, "STORE_WRITE_FAILED", appErr.ErrorCode())
}

func newTestCatalog(t *testing.T) repository.ProductCatalog {
	t.Helper()

	c, err := catalog.New()
	require.NoError(t, err)

	return c
}

func createTestCartService(t *testing.T, s repository.Store) usecase.CartUsecase {
	t.Helper()

	return NewCartService(s, newTestCatalog(t), metrics.Noop{}, discardLogger())
}

func createTestAccountService(t *testing.T, s repository.Store) (*accountService, *mockSvc.MockTokenService) {
	t.Helper()

	tokens := mockSvc.NewMockTokenService(t)
	srv := NewAccountService(AccountServiceParams{
		Store:        s,
		TokenService: tokens,
		Logger:       discardLogger(),
	}).(*accountService)
	srv.now = func() time.Time { return time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC) }

	return srv, tokens
}

type checkoutFixture struct {
	srv       *checkoutService
	store     repository.Store
	cart      usecase.CartUsecase
	account   *accountService
	tokens    *mockSvc.MockTokenService
	payment   *mockSvc.MockPaymentProcessor
	publisher *mockSvc.MockEventPublisher
}

func createTestCheckoutService(t *testing.T) *checkoutFixture {
	t.Helper()

	return createTestCheckoutServiceOn(t, newTestStore(t))
}

func createTestCheckoutServiceOn(t *testing.T, s repository.Store) *checkoutFixture {
	t.Helper()

	cart := createTestCartService(t, s)
	account, tokens := createTestAccountService(t, s)
	payment := mockSvc.NewMockPaymentProcessor(t)
	publisher := mockSvc.NewMockEventPublisher(t)

	cfg := &config.Config{}
	cfg.Checkout.TaxRate = 0.18

	srv := NewCheckoutService(CheckoutServiceParams{
		Store:     s,
		Cart:      cart,
		Account:   account,
		Payment:   payment,
		Publisher: publisher,
		Metrics:   metrics.Noop{},
		Config:    cfg,
		Logger:    discardLogger(),
	}).(*checkoutService)
	srv.now = func() time.Time { return time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC) }
	srv.intN = func(int) int { return 42 }

	return &checkoutFixture{
		srv:       srv,
		store:     s,
		cart:      cart,
		account:   account,
		tokens:    tokens,
		payment:   payment,
		publisher: publisher,
	}
}

func putRaw(t *testing.T, s repository.Store, key, value string) {
	t.Helper()

	require.NoError(t, s.Set(context.Background(), key, []byte(value)))
}

func keyExists(t *testing.T, s repository.Store, key string) bool {
	t.Helper()

	keys, err := s.Keys(context.Background())
	require.NoError(t, err)
	for _, k := range keys {
		if k == key {
			return true
		}
	}

	return false
}

