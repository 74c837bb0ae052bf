package cart_test

import (
	"math"
	"sync"
	"testing"

	"github.com/nikolayk812/storefront/internal/cart"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestStoreAddMerges(t *testing.T) {
	store := cart.NewStore()

	require.NoError(t, store.Add(domain.LineItem{ProductID: 1, Quantity: 2}))
	require.NoError(t, store.Add(domain.LineItem{ProductID: 2, Quantity: 1}))
	require.NoError(t, store.Add(domain.LineItem{ProductID: 1, Quantity: 3}))

	assert.Equal(t, []domain.LineItem{
		{ProductID: 1, Quantity: 5},
		{ProductID: 2, Quantity: 1},
	}, store.View())
}

func TestStoreViewIsSnapshot(t *testing.T) {
	store := cart.NewStore()
	require.NoError(t, store.Add(domain.LineItem{ProductID: 1, Quantity: 1}))

	view := store.View()
	view[0].Quantity = 100

	assert.Equal(t, int32(1), store.View()[0].Quantity)
}

func TestStoreDrainAll(t *testing.T) {
	store := cart.NewStore()
	assert.Empty(t, store.DrainAll())

	require.NoError(t, store.Add(domain.LineItem{ProductID: 7, Quantity: 2}))

	drained := store.DrainAll()
	assert.Equal(t, []domain.LineItem{{ProductID: 7, Quantity: 2}}, drained)
	assert.Empty(t, store.View())

	require.NoError(t, store.Add(domain.LineItem{ProductID: 7, Quantity: 1}))
	assert.Equal(t, int32(2), drained[0].Quantity, "drained slice is detached from the store")
}

func TestStoreRestoreMerges(t *testing.T) {
	store := cart.NewStore()
	require.NoError(t, store.Add(domain.LineItem{ProductID: 1, Quantity: 1}))

	drained := store.DrainAll()
	require.NoError(t, store.Add(domain.LineItem{ProductID: 1, Quantity: 4}))
	require.NoError(t, store.Add(domain.LineItem{ProductID: 3, Quantity: 1}))

	require.NoError(t, store.Restore(drained))

	assert.Equal(t, []domain.LineItem{
		{ProductID: 1, Quantity: 5},
		{ProductID: 3, Quantity: 1},
	}, store.View())
}

func TestStoreAddRejectsInvalidQuantity(t *testing.T) {
	tests := []struct {
		name string
		item domain.LineItem
	}{
		{
			name: "zero quantity",
			item: domain.LineItem{ProductID: 2, Quantity: 0},
		},
		{
			name: "negative quantity",
			item: domain.LineItem{ProductID: 2, Quantity: -1},
		},
		{
			name: "sum overflows int32",
			item: domain.LineItem{ProductID: 1, Quantity: math.MaxInt32},
		},
		{
			name: "sum one past int32",
			item: domain.LineItem{ProductID: 1, Quantity: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := cart.NewStore()
			require.NoError(t, store.Add(domain.LineItem{ProductID: 1, Quantity: math.MaxInt32}))

			err := store.Add(tt.item)
			require.ErrorIs(t, err, domain.ErrInvalidQuantity)

			assert.Equal(t, []domain.LineItem{{ProductID: 1, Quantity: math.MaxInt32}}, store.View(),
				"cart unchanged on failure")
		})
	}
}

func TestStoreRestoreDropsOverflowingItems(t *testing.T) {
	store := cart.NewStore()
	require.NoError(t, store.Add(domain.LineItem{ProductID: 1, Quantity: 5}))
	require.NoError(t, store.Add(domain.LineItem{ProductID: 2, Quantity: 1}))

	drained := store.DrainAll()
	require.NoError(t, store.Add(domain.LineItem{ProductID: 1, Quantity: math.MaxInt32 - 1}))

	err := store.Restore(drained)
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)

	assert.Equal(t, []domain.LineItem{
		{ProductID: 1, Quantity: math.MaxInt32 - 1},
		{ProductID: 2, Quantity: 1},
	}, store.View())
}

func TestStoreConcurrentDrainIsExclusive(t *testing.T) {
	const (
		adds    = 1000
		drainer = 8
	)

	store := cart.NewStore()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		drained int32
	)

	for range adds {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, store.Add(domain.LineItem{ProductID: 1, Quantity: 1}))
		}()
	}

	for range drainer {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, item := range store.DrainAll() {
				mu.Lock()
				drained += item.Quantity
				mu.Unlock()
			}
			_ = store.View()
		}()
	}

	wg.Wait()

	for _, item := range store.DrainAll() {
		drained += item.Quantity
	}

	require.Equal(t, int32(adds), drained, "every added unit is drained exactly once")
}
