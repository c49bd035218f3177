package ledger

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/salon-management-service/internal/model"
	"github.com/fairyhunter13/salon-management-service/internal/store"
)

func newTestLedger(products ...model.Product) (*Ledger, *store.ProductStore) {
	ps := store.NewProducts()
	for _, p := range products {
		ps.Put(p)
	}
	return New(ps), ps
}

func stockOf(t *testing.T, ps *store.ProductStore, id string) int64 {
	t.Helper()
	p, ok := ps.Get(id)
	require.True(t, ok)
	return p.Stock
}

func TestReserveSnapshotsPrice(t *testing.T) {
	l, ps := newTestLedger(model.Product{ID: "p1", Name: "Argan Shampoo", Price: 12.5, Stock: 10})

	items, err := l.Reserve([]Line{{ProductID: "p1", Quantity: 3}})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 12.5, items[0].Price)
	assert.Equal(t, int64(7), stockOf(t, ps, "p1"))

	// A later price change must not affect already reserved items.
	_, err = ps.Update("p1", func(p *model.Product) error {
		p.Price = 20
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 12.5, items[0].Price)
}

func TestReserveAllOrNothing(t *testing.T) {
	l, ps := newTestLedger(
		model.Product{ID: "p1", Name: "Argan Shampoo", Price: 12.5, Stock: 10},
		model.Product{ID: "p2", Name: "Clay Wax", Price: 8, Stock: 1},
	)

	_, err := l.Reserve([]Line{
		{ProductID: "p1", Quantity: 2},
		{ProductID: "p2", Quantity: 5},
	})
	require.ErrorIs(t, err, model.ErrInsufficientStock)

	assert.Equal(t, int64(10), stockOf(t, ps, "p1"), "no partial decrement on failure")
	assert.Equal(t, int64(1), stockOf(t, ps, "p2"))
}

func TestReserveUnknownProduct(t *testing.T) {
	l, ps := newTestLedger(model.Product{ID: "p1", Name: "Argan Shampoo", Price: 12.5, Stock: 10})

	_, err := l.Reserve([]Line{
		{ProductID: "p1", Quantity: 1},
		{ProductID: "ghost", Quantity: 1},
	})
	require.ErrorIs(t, err, model.ErrProductNotFound)
	assert.Equal(t, int64(10), stockOf(t, ps, "p1"))
}

func TestReserveAggregatesDuplicateLines(t *testing.T) {
	l, ps := newTestLedger(model.Product{ID: "p1", Name: "Argan Shampoo", Price: 12.5, Stock: 5})

	// 3 + 3 across two lines of the same order exceeds stock even though
	// each line alone would fit.
	_, err := l.Reserve([]Line{
		{ProductID: "p1", Quantity: 3},
		{ProductID: "p1", Quantity: 3},
	})
	require.ErrorIs(t, err, model.ErrInsufficientStock)
	assert.Equal(t, int64(5), stockOf(t, ps, "p1"))

	items, err := l.Reserve([]Line{
		{ProductID: "p1", Quantity: 2},
		{ProductID: "p1", Quantity: 3},
	})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(0), stockOf(t, ps, "p1"))
}

func TestReserveValidatesLines(t *testing.T) {
	l, _ := newTestLedger(model.Product{ID: "p1", Name: "Argan Shampoo", Price: 12.5, Stock: 5})

	_, err := l.Reserve(nil)
	require.ErrorIs(t, err, model.ErrValidation)

	_, err = l.Reserve([]Line{{ProductID: "p1", Quantity: 0}})
	require.ErrorIs(t, err, model.ErrValidation)

	_, err = l.Reserve([]Line{{ProductID: "p1", Quantity: -2}})
	require.ErrorIs(t, err, model.ErrValidation)
}

func TestConcurrentReserveNeverOversells(t *testing.T) {
	l, ps := newTestLedger(model.Product{ID: "p1", Name: "Argan Shampoo", Price: 12.5, Stock: 5})

	const attempts = 8
	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := l.Reserve([]Line{{ProductID: "p1", Quantity: 3}})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var ok, insufficient int
	for err := range results {
		switch {
		case err == nil:
			ok++
		default:
			require.ErrorIs(t, err, model.ErrInsufficientStock)
			insufficient++
		}
	}
	assert.Equal(t, 1, ok, "stock 5 admits exactly one reservation of 3")
	assert.Equal(t, attempts-1, insufficient)
	assert.Equal(t, int64(2), stockOf(t, ps, "p1"))
}

func TestReleaseRestoresStock(t *testing.T) {
	l, ps := newTestLedger(model.Product{ID: "p1", Name: "Argan Shampoo", Price: 12.5, Stock: 5})

	items, err := l.Reserve([]Line{{ProductID: "p1", Quantity: 4}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), stockOf(t, ps, "p1"))

	l.Release(items)
	assert.Equal(t, int64(5), stockOf(t, ps, "p1"))
}

func TestReleaseSkipsDeletedProducts(t *testing.T) {
	l, ps := newTestLedger(
		model.Product{ID: "p1", Name: "Argan Shampoo", Price: 12.5, Stock: 5},
		model.Product{ID: "p2", Name: "Clay Wax", Price: 8, Stock: 5},
	)

	items, err := l.Reserve([]Line{
		{ProductID: "p1", Quantity: 2},
		{ProductID: "p2", Quantity: 2},
	})
	require.NoError(t, err)
	ps.Delete("p2")

	l.Release(items)
	assert.Equal(t, int64(5), stockOf(t, ps, "p1"), "surviving products still restored")
	_, ok := ps.Get("p2")
	assert.False(t, ok)
}

func TestRestock(t *testing.T) {
	l, ps := newTestLedger(model.Product{ID: "p1", Name: "Argan Shampoo", Price: 12.5, Stock: 5})

	require.NoError(t, l.Restock([]Line{{ProductID: "p1", Quantity: 20}}))
	assert.Equal(t, int64(25), stockOf(t, ps, "p1"))

	err := l.Restock([]Line{
		{ProductID: "p1", Quantity: 1},
		{ProductID: "ghost", Quantity: 1},
	})
	require.ErrorIs(t, err, model.ErrProductNotFound)
	assert.Equal(t, int64(25), stockOf(t, ps, "p1"), "restock is all or nothing")
}
