package httpapi

import (
	"net/http"

	"github.com/fairyhunter13/salon-management-service/internal/inventory"
	"github.com/fairyhunter13/salon-management-service/internal/model"
	"github.com/fairyhunter13/salon-management-service/internal/store"
)

func (a *App) addProductHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireRole(w, r, model.RoleInventory, model.RoleAdmin); !ok {
		return
	}
	var req inventory.ProductRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	p, err := a.Inventory.AddProduct(req)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (a *App) updateProductHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireRole(w, r, model.RoleInventory, model.RoleAdmin); !ok {
		return
	}
	var req inventory.ProductRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	p, err := a.Inventory.UpdateProduct(r.PathValue("id"), req)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (a *App) deleteProductHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireRole(w, r, model.RoleInventory, model.RoleAdmin); !ok {
		return
	}
	if err := a.Inventory.DeleteProduct(r.PathValue("id")); err != nil {
		WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (a *App) listOrdersHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireRole(w, r, model.RoleInventory, model.RoleAdmin)
	if !ok {
		return
	}
	q := r.URL.Query()
	list, err := a.Orders.List(actor, store.OrderFilter{
		Status: model.OrderStatus(q.Get("status")),
		From:   parseDay(q.Get("start_date")),
		To:     parseDay(q.Get("end_date")),
	})
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

type orderStatusRequest struct {
	Status model.OrderStatus `json:"status"`
}

func (a *App) orderStatusHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireRole(w, r, model.RoleInventory, model.RoleAdmin)
	if !ok {
		return
	}
	var req orderStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	o, err := a.Orders.UpdateStatus(r.PathValue("id"), req.Status, actor)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (a *App) statisticsHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireRole(w, r, model.RoleInventory, model.RoleAdmin); !ok {
		return
	}
	q := r.URL.Query()
	writeJSON(w, http.StatusOK, a.Inventory.Statistics(parseDay(q.Get("start_date")), parseDay(q.Get("end_date"))))
}

type supplierRequest struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Address string `json:"address"`
}

func (a *App) addSupplierHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireRole(w, r, model.RoleInventory, model.RoleAdmin); !ok {
		return
	}
	var req supplierRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	sp, err := a.Inventory.AddSupplier(req.Name, req.Contact, req.Address)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sp)
}

func (a *App) listSuppliersHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireRole(w, r, model.RoleInventory, model.RoleAdmin); !ok {
		return
	}
	writeJSON(w, http.StatusOK, a.Inventory.ListSuppliers())
}

func (a *App) addImportOrderHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireRole(w, r, model.RoleInventory, model.RoleAdmin); !ok {
		return
	}
	var req inventory.ImportRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	io, err := a.Inventory.AddImportOrder(req)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, io)
}

func (a *App) listImportOrdersHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireRole(w, r, model.RoleInventory, model.RoleAdmin); !ok {
		return
	}
	writeJSON(w, http.StatusOK, a.Inventory.ListImportOrders())
}
