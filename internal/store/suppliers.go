package store

import (
	"slices"
	"sort"
	"sync"

	"github.com/fairyhunter13/salon-management-service/internal/model"
)

// SupplierStore holds supplier records keyed by id.
type SupplierStore struct {
	mu sync.RWMutex
	m  map[string]*model.Supplier
}

// NewSuppliers creates an empty SupplierStore.
func NewSuppliers() *SupplierStore {
	return &SupplierStore{m: make(map[string]*model.Supplier)}
}

// Create inserts a new supplier record.
func (s *SupplierStore) Create(sp model.Supplier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := sp
	s.m[sp.ID] = &cp
}

// Get returns a copy of the supplier with the given id.
func (s *SupplierStore) Get(id string) (model.Supplier, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sp, ok := s.m[id]
	if !ok {
		return model.Supplier{}, false
	}
	return *sp, true
}

// List returns copies of all suppliers, newest first.
func (s *SupplierStore) List() []model.Supplier {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Supplier, 0, len(s.m))
	for _, sp := range s.m {
		out = append(out, *sp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// ImportOrderStore holds import-order records keyed by id.
type ImportOrderStore struct {
	mu sync.RWMutex
	m  map[string]*model.ImportOrder
}

// NewImportOrders creates an empty ImportOrderStore.
func NewImportOrders() *ImportOrderStore {
	return &ImportOrderStore{m: make(map[string]*model.ImportOrder)}
}

// Create inserts a new import-order record.
func (s *ImportOrderStore) Create(io model.ImportOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := io
	cp.Items = slices.Clone(io.Items)
	s.m[io.ID] = &cp
}

// List returns copies of all import orders, newest first.
func (s *ImportOrderStore) List() []model.ImportOrder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.ImportOrder, 0, len(s.m))
	for _, io := range s.m {
		cp := *io
		cp.Items = slices.Clone(io.Items)
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}
