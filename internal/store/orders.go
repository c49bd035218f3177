package store

import (
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/fairyhunter13/salon-management-service/internal/model"
)

// OrderStore holds order records keyed by id.
type OrderStore struct {
	mu sync.RWMutex
	m  map[string]*model.Order
}

// NewOrders creates an empty OrderStore.
func NewOrders() *OrderStore {
	return &OrderStore{m: make(map[string]*model.Order)}
}

func cloneOrder(o *model.Order) model.Order {
	cp := *o
	cp.Items = slices.Clone(o.Items)
	return cp
}

// Create inserts a new order record.
func (s *OrderStore) Create(o model.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := cloneOrder(&o)
	s.m[o.ID] = &cp
}

// Get returns a copy of the order with the given id.
func (s *OrderStore) Get(id string) (model.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.m[id]
	if !ok {
		return model.Order{}, false
	}
	return cloneOrder(o), true
}

// Update applies fn to a working copy under the store lock and commits only
// when fn succeeds. Concurrent status mutations of the same order serialize
// here.
func (s *OrderStore) Update(id string, fn func(*model.Order) error) (model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.m[id]
	if !ok {
		return model.Order{}, model.ErrNotFound
	}
	work := cloneOrder(o)
	if err := fn(&work); err != nil {
		return model.Order{}, err
	}
	committed := cloneOrder(&work)
	s.m[id] = &committed
	return work, nil
}

// OrderFilter narrows List results. Zero fields match everything.
type OrderFilter struct {
	CustomerID string
	Status     model.OrderStatus
	From, To   time.Time
}

// List returns copies of matching orders, newest first.
func (s *OrderStore) List(f OrderFilter) []model.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Order, 0, len(s.m))
	for _, o := range s.m {
		if f.CustomerID != "" && o.CustomerID != f.CustomerID {
			continue
		}
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		if !f.From.IsZero() && o.CreatedAt.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && o.CreatedAt.After(f.To) {
			continue
		}
		out = append(out, cloneOrder(o))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// HasActiveReference reports whether any order in a non-terminal status still
// references the product. Product deletion is refused while this holds.
func (s *OrderStore) HasActiveReference(productID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.m {
		if o.Status == model.OrderDelivered || o.Status == model.OrderCancelled {
			continue
		}
		for _, it := range o.Items {
			if it.ProductID == productID {
				return true
			}
		}
	}
	return false
}
