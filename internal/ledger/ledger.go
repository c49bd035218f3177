// Package ledger owns per-product available stock. Reserve, Release, and
// Restock are the only paths that mutate stock, and each batch runs in a
// single exclusive section over the product records so that concurrent
// reservations against the same product can never jointly oversell it.
package ledger

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/fairyhunter13/salon-management-service/internal/model"
	"github.com/fairyhunter13/salon-management-service/internal/obs"
	"github.com/fairyhunter13/salon-management-service/internal/store"
)

// Line requests a quantity of one product.
type Line struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// Ledger performs atomic stock operations over the product store.
type Ledger struct {
	products *store.ProductStore
}

// New creates a Ledger over the given product store.
func New(products *store.ProductStore) *Ledger {
	return &Ledger{products: products}
}

// Reserve checks and decrements stock for every line as one all-or-nothing
// batch: if any line fails, no stock is touched. On success it returns order
// items carrying the unit price snapshotted at reservation time.
//
// Duplicate lines for the same product are validated against their combined
// quantity.
func (l *Ledger) Reserve(lines []Line) ([]model.OrderItem, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: no items to reserve", model.ErrValidation)
	}
	needed := make(map[string]int64, len(lines))
	for _, ln := range lines {
		if ln.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity must be >= 1 for product %s", model.ErrValidation, ln.ProductID)
		}
		needed[ln.ProductID] += ln.Quantity
	}

	items := make([]model.OrderItem, 0, len(lines))
	err := l.products.Mutate(func(products map[string]*model.Product) error {
		for id, qty := range needed {
			p, ok := products[id]
			if !ok {
				return fmt.Errorf("%w: %s", model.ErrProductNotFound, id)
			}
			if p.Stock < qty {
				return fmt.Errorf("%w: product %s has %d, requested %d", model.ErrInsufficientStock, id, p.Stock, qty)
			}
		}
		// Every line checked out; apply the whole batch.
		for _, ln := range lines {
			p := products[ln.ProductID]
			p.Stock -= ln.Quantity
			items = append(items, model.OrderItem{
				ProductID: ln.ProductID,
				Quantity:  ln.Quantity,
				Price:     p.Price,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Release returns previously reserved quantities to stock. Products deleted
// since the order was placed are skipped; the caller guarantees Release runs
// at most once per order by gating it on the status transition.
func (l *Ledger) Release(items []model.OrderItem) {
	_ = l.products.Mutate(func(products map[string]*model.Product) error {
		for _, it := range items {
			p, ok := products[it.ProductID]
			if !ok {
				obs.Logger.Warn("release_skipped_missing_product",
					zap.String("product_id", it.ProductID),
					zap.Int64("quantity", it.Quantity),
				)
				continue
			}
			p.Stock += it.Quantity
		}
		return nil
	})
}

// Restock adds delivered quantities to stock as one all-or-nothing batch,
// failing with model.ErrProductNotFound when any line references an unknown
// product.
func (l *Ledger) Restock(lines []Line) error {
	if len(lines) == 0 {
		return fmt.Errorf("%w: no items to restock", model.ErrValidation)
	}
	for _, ln := range lines {
		if ln.Quantity < 1 {
			return fmt.Errorf("%w: quantity must be >= 1 for product %s", model.ErrValidation, ln.ProductID)
		}
	}
	return l.products.Mutate(func(products map[string]*model.Product) error {
		for _, ln := range lines {
			if _, ok := products[ln.ProductID]; !ok {
				return fmt.Errorf("%w: %s", model.ErrProductNotFound, ln.ProductID)
			}
		}
		for _, ln := range lines {
			products[ln.ProductID].Stock += ln.Quantity
		}
		return nil
	})
}
