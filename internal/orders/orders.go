// Package orders implements the order lifecycle: checkout against the stock
// ledger, status progression, and cancellation with stock release.
package orders

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fairyhunter13/salon-management-service/internal/events"
	"github.com/fairyhunter13/salon-management-service/internal/fsm"
	"github.com/fairyhunter13/salon-management-service/internal/ledger"
	"github.com/fairyhunter13/salon-management-service/internal/model"
	"github.com/fairyhunter13/salon-management-service/internal/obs"
	"github.com/fairyhunter13/salon-management-service/internal/store"
)

// statusFlow is the legal order status progression. Delivered and cancelled
// are terminal.
var statusFlow = fsm.New(map[model.OrderStatus][]model.OrderStatus{
	model.OrderPending:   {model.OrderConfirmed, model.OrderCancelled},
	model.OrderConfirmed: {model.OrderShipped, model.OrderCancelled},
	model.OrderShipped:   {model.OrderDelivered, model.OrderCancelled},
	model.OrderDelivered: {},
	model.OrderCancelled: {},
})

// CreateRequest is a checkout command.
type CreateRequest struct {
	Items           []ledger.Line         `json:"items"`
	ShippingAddress model.ShippingAddress `json:"shipping_address"`
	PaymentMethod   model.PaymentMethod   `json:"payment_method"`
}

// Manager coordinates order state with the stock ledger.
type Manager struct {
	orders     *store.OrderStore
	stock      *ledger.Ledger
	dispatcher *events.Dispatcher
	now        func() time.Time
}

// NewManager constructs a Manager over the given stores.
func NewManager(orders *store.OrderStore, stock *ledger.Ledger, dispatcher *events.Dispatcher) *Manager {
	return &Manager{orders: orders, stock: stock, dispatcher: dispatcher, now: time.Now}
}

// Create validates the checkout command, reserves stock for every line as one
// batch, and persists the order as pending. The reservation snapshots unit
// prices into the line items.
func (m *Manager) Create(actor model.Actor, req CreateRequest) (model.Order, error) {
	if len(req.Items) == 0 {
		return model.Order{}, fmt.Errorf("%w: order must contain at least one item", model.ErrValidation)
	}
	if req.ShippingAddress.Address == "" {
		return model.Order{}, fmt.Errorf("%w: shipping address is required", model.ErrValidation)
	}
	method := req.PaymentMethod
	if method == "" {
		method = model.PaymentCOD
	}
	if method != model.PaymentCOD && method != model.PaymentBanking {
		return model.Order{}, fmt.Errorf("%w: unknown payment method %q", model.ErrValidation, req.PaymentMethod)
	}

	items, err := m.stock.Reserve(req.Items)
	if err != nil {
		return model.Order{}, err
	}

	now := m.now().UTC()
	o := model.Order{
		ID:              uuid.NewString(),
		CustomerID:      actor.ID,
		Items:           items,
		Status:          model.OrderPending,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   method,
		PaymentStatus:   model.PaymentPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	o.RecomputeTotal()
	m.orders.Create(o)

	m.dispatcher.Emit("order.created", o)
	obs.Logger.Info("order_created",
		zap.String("order_id", o.ID),
		zap.String("customer_id", o.CustomerID),
		zap.Float64("total_amount", o.TotalAmount),
	)
	return o, nil
}

// Get returns the order when the actor owns it or holds a back-office role.
func (m *Manager) Get(orderID string, actor model.Actor) (model.Order, error) {
	o, ok := m.orders.Get(orderID)
	if !ok {
		return model.Order{}, fmt.Errorf("%w: order %s", model.ErrNotFound, orderID)
	}
	if o.CustomerID != actor.ID && !actor.Privileged() {
		return model.Order{}, fmt.Errorf("%w: order %s", model.ErrForbidden, orderID)
	}
	return o, nil
}

// ListForCustomer returns the actor's own orders, newest first.
func (m *Manager) ListForCustomer(actor model.Actor) []model.Order {
	return m.orders.List(store.OrderFilter{CustomerID: actor.ID})
}

// List returns orders matching the filter. Back-office roles only.
func (m *Manager) List(actor model.Actor, f store.OrderFilter) ([]model.Order, error) {
	if !actor.Privileged() {
		return nil, fmt.Errorf("%w: order listing requires a back-office role", model.ErrForbidden)
	}
	return m.orders.List(f), nil
}

// Cancel cancels the order and releases its reserved stock. Customers may
// cancel only their own orders; back-office roles may cancel any. Delivered
// and cancelled orders cannot be cancelled again, which also guarantees the
// release runs at most once.
func (m *Manager) Cancel(orderID string, actor model.Actor) (model.Order, error) {
	o, err := m.orders.Update(orderID, func(o *model.Order) error {
		if o.CustomerID != actor.ID && !actor.Privileged() {
			return fmt.Errorf("%w: order %s", model.ErrForbidden, orderID)
		}
		if err := statusFlow.Step(o.Status, model.OrderCancelled); err != nil {
			return err
		}
		o.Status = model.OrderCancelled
		o.PaymentStatus = cancelledPaymentStatus(o.PaymentMethod, o.PaymentStatus)
		o.UpdatedAt = m.now().UTC()
		return nil
	})
	if err != nil {
		return model.Order{}, wrapMissing(err, orderID)
	}

	m.stock.Release(o.Items)
	m.dispatcher.Emit("order.cancelled", o)
	obs.Logger.Info("order_cancelled",
		zap.String("order_id", o.ID),
		zap.String("cancelled_by", actor.ID),
	)
	return o, nil
}

// UpdateStatus advances the order along the status flow. Back-office roles
// only. Transitioning to cancelled applies the same stock-release and
// payment rules as Cancel.
func (m *Manager) UpdateStatus(orderID string, next model.OrderStatus, actor model.Actor) (model.Order, error) {
	if !actor.Privileged() {
		return model.Order{}, fmt.Errorf("%w: status updates require a back-office role", model.ErrForbidden)
	}
	o, err := m.orders.Update(orderID, func(o *model.Order) error {
		if err := statusFlow.Step(o.Status, next); err != nil {
			return err
		}
		o.Status = next
		if next == model.OrderCancelled {
			o.PaymentStatus = cancelledPaymentStatus(o.PaymentMethod, o.PaymentStatus)
		}
		o.UpdatedAt = m.now().UTC()
		return nil
	})
	if err != nil {
		return model.Order{}, wrapMissing(err, orderID)
	}

	if next == model.OrderCancelled {
		m.stock.Release(o.Items)
	}
	m.dispatcher.Emit("order.status_changed", o)
	obs.Logger.Info("order_status_changed",
		zap.String("order_id", o.ID),
		zap.String("status", string(next)),
		zap.String("changed_by", actor.ID),
	)
	return o, nil
}

// cancelledPaymentStatus keeps the refund rule in one place: a paid bank
// transfer is refunded, everything else is simply cancelled.
func cancelledPaymentStatus(method model.PaymentMethod, prior model.PaymentStatus) model.PaymentStatus {
	if method == model.PaymentBanking && prior == model.PaymentPaid {
		return model.PaymentRefunded
	}
	return model.PaymentCancelled
}

func wrapMissing(err error, orderID string) error {
	if errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("%w: order %s", model.ErrNotFound, orderID)
	}
	return err
}
