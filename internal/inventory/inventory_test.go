package inventory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/salon-management-service/internal/events"
	"github.com/fairyhunter13/salon-management-service/internal/ledger"
	"github.com/fairyhunter13/salon-management-service/internal/model"
	"github.com/fairyhunter13/salon-management-service/internal/store"
)

func ptr[T any](v T) *T { return &v }

type fixture struct {
	svc      *Service
	products *store.ProductStore
	orders   *store.OrderStore
}

func newFixture() fixture {
	products := store.NewProducts()
	orders := store.NewOrders()
	dispatcher := events.NewDispatcher(events.LogPublisher{}, 16, time.Second)
	svc := NewService(products, orders, store.NewSuppliers(), store.NewImportOrders(), ledger.New(products), dispatcher, 10)
	return fixture{svc: svc, products: products, orders: orders}
}

func shampooRequest() ProductRequest {
	return ProductRequest{
		Name:     "Argan Shampoo",
		Price:    ptr(12.5),
		Stock:    ptr(int64(20)),
		Category: model.CategoryShampoo,
	}
}

func TestAddProduct(t *testing.T) {
	f := newFixture()

	p, err := f.svc.AddProduct(shampooRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "no-image.jpg", p.Image, "image defaults when omitted")
	assert.True(t, p.IsActive, "products default to active")

	req := shampooRequest()
	req.Name = ""
	_, err = f.svc.AddProduct(req)
	require.ErrorIs(t, err, model.ErrValidation)

	req = shampooRequest()
	req.Price = ptr(-1.0)
	_, err = f.svc.AddProduct(req)
	require.ErrorIs(t, err, model.ErrValidation)

	req = shampooRequest()
	req.Price = nil
	_, err = f.svc.AddProduct(req)
	require.ErrorIs(t, err, model.ErrValidation)

	req = shampooRequest()
	req.Category = "snacks"
	_, err = f.svc.AddProduct(req)
	require.ErrorIs(t, err, model.ErrValidation)
}

func TestUpdateProductPartial(t *testing.T) {
	f := newFixture()
	p, err := f.svc.AddProduct(shampooRequest())
	require.NoError(t, err)

	got, err := f.svc.UpdateProduct(p.ID, ProductRequest{Price: ptr(15.0), IsActive: ptr(false)})
	require.NoError(t, err)
	assert.Equal(t, 15.0, got.Price)
	assert.False(t, got.IsActive)
	assert.Equal(t, "Argan Shampoo", got.Name, "untouched fields survive")
	assert.Equal(t, int64(20), got.Stock)

	_, err = f.svc.UpdateProduct(p.ID, ProductRequest{Stock: ptr(int64(-5))})
	require.ErrorIs(t, err, model.ErrValidation)

	_, err = f.svc.UpdateProduct("ghost", ProductRequest{Price: ptr(1.0)})
	require.ErrorIs(t, err, model.ErrProductNotFound)
}

func TestDeleteProductRefusedWhileReferenced(t *testing.T) {
	f := newFixture()
	p, err := f.svc.AddProduct(shampooRequest())
	require.NoError(t, err)

	f.orders.Create(model.Order{
		ID:     "o1",
		Status: model.OrderPending,
		Items:  []model.OrderItem{{ProductID: p.ID, Quantity: 1}},
	})

	err = f.svc.DeleteProduct(p.ID)
	require.ErrorIs(t, err, model.ErrValidation)
	_, err = f.svc.GetProduct(p.ID)
	assert.NoError(t, err, "refused delete leaves the product in place")

	// Once the order reaches a terminal status the product can go.
	_, err = f.orders.Update("o1", func(o *model.Order) error {
		o.Status = model.OrderCancelled
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, f.svc.DeleteProduct(p.ID))
	_, err = f.svc.GetProduct(p.ID)
	require.ErrorIs(t, err, model.ErrProductNotFound)

	err = f.svc.DeleteProduct(p.ID)
	require.ErrorIs(t, err, model.ErrProductNotFound)
}

func TestSuppliersAndImports(t *testing.T) {
	f := newFixture()
	p, err := f.svc.AddProduct(shampooRequest())
	require.NoError(t, err)

	_, err = f.svc.AddSupplier("Beauty Wholesale", "", "2 Dock Rd")
	require.ErrorIs(t, err, model.ErrValidation)

	sup, err := f.svc.AddSupplier("Beauty Wholesale", "555-0199", "2 Dock Rd")
	require.NoError(t, err)
	assert.Len(t, f.svc.ListSuppliers(), 1)

	_, err = f.svc.AddImportOrder(ImportRequest{SupplierID: "ghost", Items: []ledger.Line{{ProductID: p.ID, Quantity: 5}}})
	require.ErrorIs(t, err, model.ErrNotFound)

	_, err = f.svc.AddImportOrder(ImportRequest{SupplierID: sup.ID, Items: []ledger.Line{{ProductID: "ghost", Quantity: 5}}})
	require.ErrorIs(t, err, model.ErrProductNotFound)
	assert.Empty(t, f.svc.ListImportOrders(), "failed restock records nothing")

	io, err := f.svc.AddImportOrder(ImportRequest{SupplierID: sup.ID, Items: []ledger.Line{{ProductID: p.ID, Quantity: 30}}})
	require.NoError(t, err)
	assert.Len(t, io.Items, 1)

	got, err := f.svc.GetProduct(p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(50), got.Stock, "import orders replenish stock")
	assert.Len(t, f.svc.ListImportOrders(), 1)
}

func TestStatistics(t *testing.T) {
	f := newFixture()
	_, err := f.svc.AddProduct(shampooRequest())
	require.NoError(t, err)
	low := shampooRequest()
	low.Name = "Clay Wax"
	low.Stock = ptr(int64(3))
	_, err = f.svc.AddProduct(low)
	require.NoError(t, err)

	jan := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	f.orders.Create(model.Order{ID: "o1", Status: model.OrderDelivered, TotalAmount: 100, CreatedAt: jan})
	f.orders.Create(model.Order{ID: "o2", Status: model.OrderDelivered, TotalAmount: 40, CreatedAt: feb})
	f.orders.Create(model.Order{ID: "o3", Status: model.OrderPending, TotalAmount: 25, CreatedAt: feb})
	f.orders.Create(model.Order{ID: "o4", Status: model.OrderCancelled, TotalAmount: 60, CreatedAt: feb})

	stats := f.svc.Statistics(time.Time{}, time.Time{})

	require.Len(t, stats.Orders, 2, "cancelled orders are excluded")
	byStatus := make(map[model.OrderStatus]OrderStats)
	for _, st := range stats.Orders {
		byStatus[st.Status] = st
	}
	assert.Equal(t, 2, byStatus[model.OrderDelivered].Count)
	assert.Equal(t, 140.0, byStatus[model.OrderDelivered].TotalAmount)
	assert.Equal(t, 1, byStatus[model.OrderPending].Count)

	require.Len(t, stats.Revenue, 2)
	assert.Equal(t, 1, stats.Revenue[0].Month)
	assert.Equal(t, 100.0, stats.Revenue[0].Revenue)
	assert.Equal(t, 2, stats.Revenue[1].Month)
	assert.Equal(t, 40.0, stats.Revenue[1].Revenue)

	assert.Equal(t, 2, stats.Products.TotalProducts)
	assert.Equal(t, int64(23), stats.Products.TotalStock)
	assert.Equal(t, 1, stats.Products.LowStock)

	// Range filter keeps only February orders.
	ranged := f.svc.Statistics(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC))
	require.Len(t, ranged.Revenue, 1)
	assert.Equal(t, 2, ranged.Revenue[0].Month)
}
