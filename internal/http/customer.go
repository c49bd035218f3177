package httpapi

import (
	"net/http"
	"time"

	"github.com/fairyhunter13/salon-management-service/internal/booking"
	"github.com/fairyhunter13/salon-management-service/internal/model"
	"github.com/fairyhunter13/salon-management-service/internal/orders"
	"github.com/fairyhunter13/salon-management-service/internal/store"
)

func (a *App) createAppointmentHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireRole(w, r, model.RoleCustomer)
	if !ok {
		return
	}
	var req booking.CreateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	apt, err := a.Booking.Create(actor, req)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, apt)
}

func (a *App) myAppointmentsHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireRole(w, r, model.RoleCustomer)
	if !ok {
		return
	}
	status := model.AppointmentStatus(r.URL.Query().Get("status"))
	writeJSON(w, http.StatusOK, a.Booking.ListForCustomer(actor, status))
}

func (a *App) cancelAppointmentHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	apt, err := a.Booking.Cancel(r.PathValue("id"), actor)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, apt)
}

func (a *App) updateAppointmentHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	var patch booking.Patch
	if !decodeJSON(w, r, &patch) {
		return
	}
	apt, err := a.Booking.Update(r.PathValue("id"), actor, patch)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, apt)
}

type reviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (a *App) reviewAppointmentHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireRole(w, r, model.RoleCustomer)
	if !ok {
		return
	}
	var req reviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	apt, err := a.Booking.SubmitReview(r.PathValue("id"), actor, req.Rating, req.Comment)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, apt)
}

func (a *App) browseProductsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	list := a.Inventory.ListProducts(store.ProductFilter{
		Category:   model.Category(q.Get("category")),
		Search:     q.Get("search"),
		ActiveOnly: true,
	})
	writeJSON(w, http.StatusOK, list)
}

func (a *App) createOrderHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireRole(w, r, model.RoleCustomer)
	if !ok {
		return
	}
	var req orders.CreateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	o, err := a.Orders.Create(actor, req)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

func (a *App) myOrdersHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireRole(w, r, model.RoleCustomer)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, a.Orders.ListForCustomer(actor))
}

func (a *App) getOrderHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	o, err := a.Orders.Get(r.PathValue("id"), actor)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (a *App) cancelOrderHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	o, err := a.Orders.Cancel(r.PathValue("id"), actor)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// parseDay parses a query date in YYYY-MM-DD form, returning the zero time
// when absent.
func parseDay(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}
	}
	return t
}
