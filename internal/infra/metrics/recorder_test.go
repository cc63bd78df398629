package metrics

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"storefront/internal/infra/store"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func TestRecorder_Counters(t *testing.T) {
	r := NewRecorder()

	r.CartMutation("add")
	r.CartMutation("add")
	r.CartMutation("clear")
	r.PromoApplied(true)
	r.PromoApplied(false)
	r.OrderPlaced("upi", 2*time.Second)
	r.OrderFailed("payment")
	r.StoreChange("cart", true)

	assert.InDelta(t, 2, testutil.ToFloat64(r.cartMutations.WithLabelValues("add")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(r.cartMutations.WithLabelValues("clear")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(r.promoAttempts.WithLabelValues("true")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(r.promoAttempts.WithLabelValues("false")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(r.ordersPlaced.WithLabelValues("upi")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(r.ordersFailed.WithLabelValues("payment")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(r.storeChanges.WithLabelValues("cart", "remote")), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(r.orderDuration))
}

func TestRecorder_SeparateRegistries(t *testing.T) {
	a := NewRecorder()
	b := NewRecorder()

	a.OrderFailed("store")

	assert.InDelta(t, 0, testutil.ToFloat64(b.ordersFailed.WithLabelValues("store")), 0)
}

func TestWatchStore_CountsChanges(t *testing.T) {
	s, err := store.NewStore(store.OpenMemoryDriver(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	r := NewRecorder()
	lc := fxtest.NewLifecycle(t)
	WatchStore(lc, s, r)
	lc.RequireStart()

	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "cart", []byte(`[]`)))
	require.NoError(t, s.Set(ctx, "cart", []byte(`[]`)))

	assert.InDelta(t, 2, testutil.ToFloat64(r.storeChanges.WithLabelValues("cart", "local")), 0)

	lc.RequireStop()
	require.NoError(t, s.Set(ctx, "cart", []byte(`[]`)))

	assert.InDelta(t, 2, testutil.ToFloat64(r.storeChanges.WithLabelValues("cart", "local")), 0)
}
