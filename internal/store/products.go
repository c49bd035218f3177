// Package store provides the in-memory persistence layer. Each store guards
// its records with a mutex: reads return copies, and read-modify-write goes
// through Update so two mutations of the same record never race.
package store

import (
	"sort"
	"strings"
	"sync"

	"github.com/fairyhunter13/salon-management-service/internal/model"
)

// ProductStore holds product records keyed by id.
type ProductStore struct {
	mu sync.RWMutex
	m  map[string]*model.Product
}

// NewProducts creates an empty ProductStore.
func NewProducts() *ProductStore {
	return &ProductStore{m: make(map[string]*model.Product)}
}

// Put inserts or replaces a product record.
func (s *ProductStore) Put(p model.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := p
	s.m[p.ID] = &cp
}

// Get returns a copy of the product with the given id.
func (s *ProductStore) Get(id string) (model.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.m[id]
	if !ok {
		return model.Product{}, false
	}
	return *p, true
}

// Update applies fn to a working copy of the record and commits it only when
// fn succeeds, so a failed update leaves the record untouched.
func (s *ProductStore) Update(id string, fn func(*model.Product) error) (model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.m[id]
	if !ok {
		return model.Product{}, model.ErrNotFound
	}
	work := *p
	if err := fn(&work); err != nil {
		return model.Product{}, err
	}
	s.m[id] = &work
	return work, nil
}

// Delete removes the product record, reporting whether it existed.
func (s *ProductStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.m[id]
	delete(s.m, id)
	return ok
}

// Mutate runs fn with exclusive access to the live records. The ledger uses
// it for batch stock operations; fn must fully validate before mutating so a
// failed call leaves no partial change behind.
func (s *ProductStore) Mutate(fn func(products map[string]*model.Product) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.m)
}

// ProductFilter narrows List results.
type ProductFilter struct {
	Category   model.Category
	Search     string
	ActiveOnly bool
}

// List returns copies of matching products, newest first.
func (s *ProductStore) List(f ProductFilter) []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Product, 0, len(s.m))
	needle := strings.ToLower(f.Search)
	for _, p := range s.m {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		if f.ActiveOnly && !p.IsActive {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}
