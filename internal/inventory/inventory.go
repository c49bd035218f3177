// Package inventory implements back-office product management, suppliers,
// import orders, and reporting roll-ups.
package inventory

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fairyhunter13/salon-management-service/internal/events"
	"github.com/fairyhunter13/salon-management-service/internal/ledger"
	"github.com/fairyhunter13/salon-management-service/internal/model"
	"github.com/fairyhunter13/salon-management-service/internal/obs"
	"github.com/fairyhunter13/salon-management-service/internal/store"
)

// ProductRequest carries the writable product fields.
type ProductRequest struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Price       *float64       `json:"price,omitempty"`
	Image       string         `json:"image"`
	Category    model.Category `json:"category"`
	Stock       *int64         `json:"stock,omitempty"`
	IsActive    *bool          `json:"is_active,omitempty"`
}

// ImportRequest records a supplier delivery.
type ImportRequest struct {
	SupplierID string        `json:"supplier_id"`
	Items      []ledger.Line `json:"items"`
}

// Service implements inventory management over the stores and the ledger.
type Service struct {
	products     *store.ProductStore
	orders       *store.OrderStore
	suppliers    *store.SupplierStore
	imports      *store.ImportOrderStore
	stock        *ledger.Ledger
	dispatcher   *events.Dispatcher
	lowStockMark int64
	now          func() time.Time
}

// NewService constructs the inventory Service.
func NewService(
	products *store.ProductStore,
	orders *store.OrderStore,
	suppliers *store.SupplierStore,
	imports *store.ImportOrderStore,
	stock *ledger.Ledger,
	dispatcher *events.Dispatcher,
	lowStockMark int64,
) *Service {
	if lowStockMark <= 0 {
		lowStockMark = 10
	}
	return &Service{
		products:     products,
		orders:       orders,
		suppliers:    suppliers,
		imports:      imports,
		stock:        stock,
		dispatcher:   dispatcher,
		lowStockMark: lowStockMark,
		now:          time.Now,
	}
}

// AddProduct creates a product. Price and stock must be present and
// non-negative; category must be known.
func (s *Service) AddProduct(req ProductRequest) (model.Product, error) {
	if req.Name == "" {
		return model.Product{}, fmt.Errorf("%w: product name is required", model.ErrValidation)
	}
	if req.Price == nil || *req.Price < 0 {
		return model.Product{}, fmt.Errorf("%w: price must be >= 0", model.ErrValidation)
	}
	if req.Stock == nil || *req.Stock < 0 {
		return model.Product{}, fmt.Errorf("%w: stock must be >= 0", model.ErrValidation)
	}
	if !model.ValidCategory(req.Category) {
		return model.Product{}, fmt.Errorf("%w: unknown category %q", model.ErrValidation, req.Category)
	}
	image := req.Image
	if image == "" {
		image = "no-image.jpg"
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	now := s.now().UTC()
	p := model.Product{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Image:       image,
		Category:    req.Category,
		Stock:       *req.Stock,
		IsActive:    active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.products.Put(p)
	obs.Logger.Info("product_added", zap.String("product_id", p.ID), zap.String("name", p.Name))
	return p, nil
}

// UpdateProduct applies a partial product edit. Stock edits here replace the
// quantity outright and are meant for corrections; regular replenishment goes
// through import orders.
func (s *Service) UpdateProduct(id string, req ProductRequest) (model.Product, error) {
	p, err := s.products.Update(id, func(p *model.Product) error {
		if req.Name != "" {
			p.Name = req.Name
		}
		if req.Description != "" {
			p.Description = req.Description
		}
		if req.Price != nil {
			if *req.Price < 0 {
				return fmt.Errorf("%w: price must be >= 0", model.ErrValidation)
			}
			p.Price = *req.Price
		}
		if req.Stock != nil {
			if *req.Stock < 0 {
				return fmt.Errorf("%w: stock must be >= 0", model.ErrValidation)
			}
			p.Stock = *req.Stock
		}
		if req.Image != "" {
			p.Image = req.Image
		}
		if req.Category != "" {
			if !model.ValidCategory(req.Category) {
				return fmt.Errorf("%w: unknown category %q", model.ErrValidation, req.Category)
			}
			p.Category = req.Category
		}
		if req.IsActive != nil {
			p.IsActive = *req.IsActive
		}
		p.UpdatedAt = s.now().UTC()
		return nil
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Product{}, fmt.Errorf("%w: product %s", model.ErrProductNotFound, id)
		}
		return model.Product{}, err
	}
	return p, nil
}

// DeleteProduct removes a product, refusing while any non-terminal order
// still references it.
func (s *Service) DeleteProduct(id string) error {
	if _, ok := s.products.Get(id); !ok {
		return fmt.Errorf("%w: product %s", model.ErrProductNotFound, id)
	}
	if s.orders.HasActiveReference(id) {
		return fmt.Errorf("%w: product %s is referenced by active orders", model.ErrValidation, id)
	}
	s.products.Delete(id)
	obs.Logger.Info("product_deleted", zap.String("product_id", id))
	return nil
}

// GetProduct returns one product.
func (s *Service) GetProduct(id string) (model.Product, error) {
	p, ok := s.products.Get(id)
	if !ok {
		return model.Product{}, fmt.Errorf("%w: product %s", model.ErrProductNotFound, id)
	}
	return p, nil
}

// ListProducts returns products matching the filter, newest first.
func (s *Service) ListProducts(f store.ProductFilter) []model.Product {
	return s.products.List(f)
}

// AddSupplier registers a supplier.
func (s *Service) AddSupplier(name, contact, address string) (model.Supplier, error) {
	if name == "" || contact == "" || address == "" {
		return model.Supplier{}, fmt.Errorf("%w: supplier name, contact, and address are required", model.ErrValidation)
	}
	sp := model.Supplier{
		ID:        uuid.NewString(),
		Name:      name,
		Contact:   contact,
		Address:   address,
		CreatedAt: s.now().UTC(),
	}
	s.suppliers.Create(sp)
	return sp, nil
}

// ListSuppliers returns all suppliers.
func (s *Service) ListSuppliers() []model.Supplier {
	return s.suppliers.List()
}

// AddImportOrder records a supplier delivery and restocks every line through
// the ledger as one batch.
func (s *Service) AddImportOrder(req ImportRequest) (model.ImportOrder, error) {
	if req.SupplierID == "" {
		return model.ImportOrder{}, fmt.Errorf("%w: supplier is required", model.ErrValidation)
	}
	if _, ok := s.suppliers.Get(req.SupplierID); !ok {
		return model.ImportOrder{}, fmt.Errorf("%w: supplier %s", model.ErrNotFound, req.SupplierID)
	}
	if err := s.stock.Restock(req.Items); err != nil {
		return model.ImportOrder{}, err
	}

	items := make([]model.ImportItem, 0, len(req.Items))
	for _, ln := range req.Items {
		items = append(items, model.ImportItem{ProductID: ln.ProductID, Quantity: ln.Quantity})
	}
	io := model.ImportOrder{
		ID:         uuid.NewString(),
		SupplierID: req.SupplierID,
		Items:      items,
		CreatedAt:  s.now().UTC(),
	}
	s.imports.Create(io)

	s.dispatcher.Emit("inventory.restocked", io)
	obs.Logger.Info("import_order_added",
		zap.String("import_order_id", io.ID),
		zap.String("supplier_id", io.SupplierID),
		zap.Int("lines", len(io.Items)),
	)
	return io, nil
}

// ListImportOrders returns all recorded import orders.
func (s *Service) ListImportOrders() []model.ImportOrder {
	return s.imports.List()
}
