package impl

import (
	"context"
	"math"
	"testing"

	"storefront/internal/domain/constants"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartService_AddItem_MergesLines(t *testing.T) {
	srv := createTestCartService(t, newTestStore(t))
	ctx := context.Background()

	_, err := srv.AddItem(ctx, 1, 2)
	require.NoError(t, err)
	summary, err := srv.AddItem(ctx, 1, 3)
	require.NoError(t, err)

	require.Len(t, summary.Items, 1)
	assert.Equal(t, 5, summary.Items[0].Quantity)
	assert.Equal(t, 5, summary.ItemCount)
	assert.Equal(t, int64(5*1299), summary.Total)
	assert.Equal(t, "₹6,495", summary.FormattedTotal)
}

func TestCartService_AddItem_DefaultsToOneUnit(t *testing.T) {
	srv := createTestCartService(t, newTestStore(t))

	summary, err := srv.AddItem(context.Background(), 7, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.ItemCount)
	assert.Equal(t, "Non-Stick Pan Set", summary.Items[0].Title)
}

func TestCartService_AddItem_Errors(t *testing.T) {
	srv := createTestCartService(t, newTestStore(t))
	ctx := context.Background()

	_, err := srv.AddItem(ctx, 999, 1)
	require.ErrorIs(t, err, domainerrors.ErrProductNotFound)

	_, err = srv.AddItem(ctx, 1, -2)
	require.ErrorIs(t, err, domainerrors.ErrInvalidQuantity)

	count, err := srv.ItemCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCartService_QuantityOverflowKeepsCart(t *testing.T) {
	s := newTestStore(t)
	srv := createTestCartService(t, s)
	ctx := context.Background()

	_, err := srv.AddItem(ctx, 2, 1)
	require.NoError(t, err)
	_, err = srv.AddItem(ctx, 1, 1)
	require.NoError(t, err)

	_, err = srv.AddItem(ctx, 1, math.MaxInt)
	require.ErrorIs(t, err, domainerrors.ErrInvalidQuantity)
	_, err = srv.UpdateQuantity(ctx, 1, math.MaxInt)
	require.ErrorIs(t, err, domainerrors.ErrInvalidQuantity)
	_, err = srv.Apply(ctx, usecase.AddItemCommand{ProductID: 2, Quantity: math.MaxInt})
	require.ErrorIs(t, err, domainerrors.ErrInvalidQuantity)

	summary, err := srv.AddItem(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, summary.Items, 2)
	assert.Equal(t, 3, summary.ItemCount)
	assert.Equal(t, int64(899+2*1299), summary.Total)

	// A fresh service reads the same persisted lines back.
	reloaded, err := createTestCartService(t, s).Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, summary.Items, reloaded.Items)
}

func TestCartService_WriteFailureKeepsCart(t *testing.T) {
	s, driver := newFailingStore(t)
	srv := createTestCartService(t, s)
	ctx := context.Background()

	_, err := srv.AddItem(ctx, 1, 1)
	require.NoError(t, err)

	driver.failWrites(constants.KeyCart)

	_, err = srv.AddItem(ctx, 2, 1)
	requireStoreWriteFailed(t, err)
	_, err = srv.UpdateQuantity(ctx, 1, 4)
	requireStoreWriteFailed(t, err)
	_, err = srv.RemoveItem(ctx, 1)
	requireStoreWriteFailed(t, err)
	requireStoreWriteFailed(t, srv.Clear(ctx))

	summary, err := srv.Summary(ctx)
	require.NoError(t, err)
	require.Len(t, summary.Items, 1)
	assert.Equal(t, 1, summary.Items[0].ProductID)
	assert.Equal(t, 1, summary.ItemCount)
}

func TestCartService_InsertionOrder(t *testing.T) {
	srv := createTestCartService(t, newTestStore(t))
	ctx := context.Background()

	for _, id := range []int{5, 2, 9} {
		_, err := srv.AddItem(ctx, id, 1)
		require.NoError(t, err)
	}
	_, err := srv.AddItem(ctx, 2, 1)
	require.NoError(t, err)

	items, err := srv.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, []int{5, 2, 9}, []int{items[0].ProductID, items[1].ProductID, items[2].ProductID})
}

func TestCartService_UpdateQuantity(t *testing.T) {
	srv := createTestCartService(t, newTestStore(t))
	ctx := context.Background()

	_, err := srv.AddItem(ctx, 1, 1)
	require.NoError(t, err)
	_, err = srv.AddItem(ctx, 2, 1)
	require.NoError(t, err)

	summary, err := srv.UpdateQuantity(ctx, 1, 4)
	require.NoError(t, err)
	assert.Equal(t, 5, summary.ItemCount)

	summary, err = srv.UpdateQuantity(ctx, 1, 0)
	require.NoError(t, err)
	require.Len(t, summary.Items, 1)
	assert.Equal(t, 2, summary.Items[0].ProductID)

	summary, err = srv.UpdateQuantity(ctx, 42, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.ItemCount)
}

func TestCartService_RemoveAndClear(t *testing.T) {
	s := newTestStore(t)
	srv := createTestCartService(t, s)
	ctx := context.Background()

	_, err := srv.AddItem(ctx, 1, 1)
	require.NoError(t, err)
	_, err = srv.AddItem(ctx, 3, 2)
	require.NoError(t, err)

	summary, err := srv.RemoveItem(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.ItemCount)

	_, err = srv.RemoveItem(ctx, 1)
	require.NoError(t, err)

	require.NoError(t, srv.Clear(ctx))
	total, err := srv.Total(ctx)
	require.NoError(t, err)
	assert.Zero(t, total)

	raw, err := s.Get(ctx, constants.KeyCart)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestCartService_Apply(t *testing.T) {
	srv := createTestCartService(t, newTestStore(t))
	ctx := context.Background()

	commands := []usecase.CartCommand{
		usecase.AddItemCommand{ProductID: 4, Quantity: 2},
		usecase.AddItemCommand{ProductID: 6},
		usecase.UpdateQuantityCommand{ProductID: 4, Quantity: 1},
		usecase.RemoveItemCommand{ProductID: 6},
	}
	var err error
	for _, cmd := range commands {
		_, err = srv.Apply(ctx, cmd)
		require.NoError(t, err, cmd.CommandName())
	}

	count, err := srv.ItemCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	summary, err := srv.Apply(ctx, usecase.ClearCartCommand{})
	require.NoError(t, err)
	assert.Empty(t, summary.Items)
}

func TestCartService_PersistsAcrossInstances(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := createTestCartService(t, s).AddItem(ctx, 10, 2)
	require.NoError(t, err)

	items, err := createTestCartService(t, s).Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 10, items[0].ProductID)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestCartService_CorruptedCartReadsEmpty(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "not json", raw: `{broken`},
		{name: "wrong shape", raw: `{"items":1}`},
		{name: "zero quantity", raw: `[{"id":1,"title":"x","price":10,"image":"","quantity":0}]`},
		{name: "duplicate line", raw: `[{"id":1,"price":10,"quantity":1},{"id":1,"price":10,"quantity":2}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			putRaw(t, s, constants.KeyCart, tt.raw)
			srv := createTestCartService(t, s)

			items, err := srv.Items(context.Background())
			require.NoError(t, err)
			assert.Empty(t, items)
			assert.False(t, keyExists(t, s, constants.KeyCart))
		})
	}
}

func TestCartService_ReadsExternalWrites(t *testing.T) {
	s := newTestStore(t)
	srv := createTestCartService(t, s)
	ctx := context.Background()

	_, err := srv.AddItem(ctx, 1, 1)
	require.NoError(t, err)

	putRaw(t, s, constants.KeyCart, `[{"id":2,"title":"Vacuum Storage Bags","category":"storage","price":899,"image":"x","quantity":3}]`)

	summary, err := srv.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.ItemCount)
	assert.Equal(t, int64(2697), summary.Total)
}
