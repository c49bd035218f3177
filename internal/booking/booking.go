// Package booking implements the appointment lifecycle: booking, the
// two-hour cancellation and edit window, staff status progression, and
// post-completion reviews.
package booking

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fairyhunter13/salon-management-service/internal/events"
	"github.com/fairyhunter13/salon-management-service/internal/fsm"
	"github.com/fairyhunter13/salon-management-service/internal/model"
	"github.com/fairyhunter13/salon-management-service/internal/obs"
	"github.com/fairyhunter13/salon-management-service/internal/store"
)

// CutoffWindow is the minimum time before the appointment that still permits
// customer cancellation or editing.
const CutoffWindow = 2 * time.Hour

// statusFlow is the legal appointment status progression. Completed and
// cancelled are terminal.
var statusFlow = fsm.New(map[model.AppointmentStatus][]model.AppointmentStatus{
	model.AppointmentPending:   {model.AppointmentConfirmed, model.AppointmentCancelled},
	model.AppointmentConfirmed: {model.AppointmentCompleted, model.AppointmentCancelled},
	model.AppointmentCompleted: {},
	model.AppointmentCancelled: {},
})

// CreateRequest is a booking command.
type CreateRequest struct {
	StaffID  string              `json:"staff_id"`
	Date     time.Time           `json:"appointment_date"`
	Services []model.ServiceItem `json:"services"`
	Note     string              `json:"note"`
}

// Patch carries partial appointment edits. Nil fields are left unchanged.
type Patch struct {
	Date     *time.Time          `json:"appointment_date,omitempty"`
	Services []model.ServiceItem `json:"services,omitempty"`
	Note     *string             `json:"note,omitempty"`
}

// Manager coordinates appointment state.
type Manager struct {
	appointments *store.AppointmentStore
	dispatcher   *events.Dispatcher
	now          func() time.Time
}

// NewManager constructs a Manager over the given store.
func NewManager(appointments *store.AppointmentStore, dispatcher *events.Dispatcher) *Manager {
	return &Manager{appointments: appointments, dispatcher: dispatcher, now: time.Now}
}

// Create books an appointment. The date must be strictly in the future.
func (m *Manager) Create(actor model.Actor, req CreateRequest) (model.Appointment, error) {
	if req.StaffID == "" {
		return model.Appointment{}, fmt.Errorf("%w: staff is required", model.ErrValidation)
	}
	now := m.now()
	if !req.Date.After(now) {
		return model.Appointment{}, fmt.Errorf("%w: appointment date must be in the future", model.ErrValidation)
	}
	if len(req.Services) == 0 {
		return model.Appointment{}, fmt.Errorf("%w: at least one service is required", model.ErrValidation)
	}
	for _, svc := range req.Services {
		if svc.Name == "" {
			return model.Appointment{}, fmt.Errorf("%w: service name is required", model.ErrValidation)
		}
		if svc.Price < 0 {
			return model.Appointment{}, fmt.Errorf("%w: service price must be >= 0", model.ErrValidation)
		}
	}

	a := model.Appointment{
		ID:         uuid.NewString(),
		CustomerID: actor.ID,
		StaffID:    req.StaffID,
		Date:       req.Date,
		Services:   req.Services,
		Status:     model.AppointmentPending,
		Note:       req.Note,
		CreatedAt:  now.UTC(),
		UpdatedAt:  now.UTC(),
	}
	a.RecomputeTotal()
	m.appointments.Create(a)

	m.dispatcher.Emit("appointment.booked", a)
	obs.Logger.Info("appointment_booked",
		zap.String("appointment_id", a.ID),
		zap.String("customer_id", a.CustomerID),
		zap.String("staff_id", a.StaffID),
		zap.Time("appointment_date", a.Date),
	)
	return a, nil
}

// ListForCustomer returns the actor's own appointments, optionally filtered
// by status.
func (m *Manager) ListForCustomer(actor model.Actor, status model.AppointmentStatus) []model.Appointment {
	return m.appointments.List(store.AppointmentFilter{CustomerID: actor.ID, Status: status})
}

// ListSchedule returns a staff schedule. Staff members see their own; admins
// may pass any staff id.
func (m *Manager) ListSchedule(actor model.Actor, staffID string, status model.AppointmentStatus, day time.Time) ([]model.Appointment, error) {
	switch actor.Role {
	case model.RoleStaff:
		staffID = actor.ID
	case model.RoleAdmin:
	default:
		return nil, fmt.Errorf("%w: schedule requires a staff or admin role", model.ErrForbidden)
	}
	return m.appointments.List(store.AppointmentFilter{StaffID: staffID, Status: status, Day: day}), nil
}

// History returns a customer's completed appointments, most recent first.
// Customers may only read their own history.
func (m *Manager) History(actor model.Actor, customerID string) ([]model.Appointment, error) {
	if actor.Role == model.RoleCustomer && actor.ID != customerID {
		return nil, fmt.Errorf("%w: customers may only read their own history", model.ErrForbidden)
	}
	list := m.appointments.List(store.AppointmentFilter{CustomerID: customerID, Status: model.AppointmentCompleted})
	slices.Reverse(list) // most recent visit first
	return list, nil
}

// Cancel cancels an appointment. The owning customer may cancel until the
// cutoff window; completed and cancelled appointments stay as they are.
func (m *Manager) Cancel(appointmentID string, actor model.Actor) (model.Appointment, error) {
	a, err := m.appointments.Update(appointmentID, func(a *model.Appointment) error {
		if a.CustomerID != actor.ID && !actor.Privileged() {
			return fmt.Errorf("%w: appointment %s", model.ErrForbidden, appointmentID)
		}
		if err := statusFlow.Step(a.Status, model.AppointmentCancelled); err != nil {
			return err
		}
		if err := m.checkCutoff(a.Date); err != nil {
			return err
		}
		a.Status = model.AppointmentCancelled
		a.UpdatedAt = m.now().UTC()
		return nil
	})
	if err != nil {
		return model.Appointment{}, wrapMissing(err, appointmentID)
	}

	m.dispatcher.Emit("appointment.cancelled", a)
	obs.Logger.Info("appointment_cancelled",
		zap.String("appointment_id", a.ID),
		zap.String("cancelled_by", actor.ID),
	)
	return a, nil
}

// Update applies a partial edit, subject to the same ownership and cutoff
// rules as Cancel. A new date must be in the future; changed services
// recompute the total price.
func (m *Manager) Update(appointmentID string, actor model.Actor, patch Patch) (model.Appointment, error) {
	a, err := m.appointments.Update(appointmentID, func(a *model.Appointment) error {
		if a.CustomerID != actor.ID && !actor.Privileged() {
			return fmt.Errorf("%w: appointment %s", model.ErrForbidden, appointmentID)
		}
		if a.Status == model.AppointmentCompleted || a.Status == model.AppointmentCancelled {
			return fmt.Errorf("%w: cannot edit a %s appointment", model.ErrInvalidTransition, a.Status)
		}
		if err := m.checkCutoff(a.Date); err != nil {
			return err
		}
		if patch.Date != nil {
			if !patch.Date.After(m.now()) {
				return fmt.Errorf("%w: appointment date must be in the future", model.ErrValidation)
			}
			a.Date = *patch.Date
		}
		if patch.Services != nil {
			for _, svc := range patch.Services {
				if svc.Name == "" {
					return fmt.Errorf("%w: service name is required", model.ErrValidation)
				}
				if svc.Price < 0 {
					return fmt.Errorf("%w: service price must be >= 0", model.ErrValidation)
				}
			}
			a.Services = patch.Services
			a.RecomputeTotal()
		}
		if patch.Note != nil {
			a.Note = *patch.Note
		}
		a.UpdatedAt = m.now().UTC()
		return nil
	})
	if err != nil {
		return model.Appointment{}, wrapMissing(err, appointmentID)
	}

	m.dispatcher.Emit("appointment.updated", a)
	return a, nil
}

// TransitionStatus advances the appointment along the status flow. The
// assigned staff member or an admin only.
func (m *Manager) TransitionStatus(appointmentID string, next model.AppointmentStatus, actor model.Actor) (model.Appointment, error) {
	if actor.Role != model.RoleStaff && actor.Role != model.RoleAdmin {
		return model.Appointment{}, fmt.Errorf("%w: status updates require a staff or admin role", model.ErrForbidden)
	}
	a, err := m.appointments.Update(appointmentID, func(a *model.Appointment) error {
		if actor.Role == model.RoleStaff && a.StaffID != actor.ID {
			return fmt.Errorf("%w: appointment %s is assigned to another staff member", model.ErrForbidden, appointmentID)
		}
		if err := statusFlow.Step(a.Status, next); err != nil {
			return err
		}
		a.Status = next
		a.UpdatedAt = m.now().UTC()
		return nil
	})
	if err != nil {
		return model.Appointment{}, wrapMissing(err, appointmentID)
	}

	m.dispatcher.Emit("appointment.status_changed", a)
	obs.Logger.Info("appointment_status_changed",
		zap.String("appointment_id", a.ID),
		zap.String("status", string(next)),
		zap.String("changed_by", actor.ID),
	)
	return a, nil
}

// SubmitReview records customer feedback on a completed appointment.
func (m *Manager) SubmitReview(appointmentID string, actor model.Actor, rating int, comment string) (model.Appointment, error) {
	if rating < 1 || rating > 5 {
		return model.Appointment{}, fmt.Errorf("%w: rating must be between 1 and 5", model.ErrValidation)
	}
	a, err := m.appointments.Update(appointmentID, func(a *model.Appointment) error {
		if a.CustomerID != actor.ID {
			return fmt.Errorf("%w: appointment %s", model.ErrForbidden, appointmentID)
		}
		if a.Status != model.AppointmentCompleted {
			return fmt.Errorf("%w: only completed appointments can be reviewed", model.ErrInvalidTransition)
		}
		a.Review = &model.Review{
			Rating:    rating,
			Comment:   comment,
			CreatedAt: m.now().UTC(),
		}
		a.UpdatedAt = m.now().UTC()
		return nil
	})
	if err != nil {
		return model.Appointment{}, wrapMissing(err, appointmentID)
	}

	m.dispatcher.Emit("appointment.reviewed", a)
	return a, nil
}

// checkCutoff rejects changes inside the cutoff window, including
// appointments whose time already passed.
func (m *Manager) checkCutoff(date time.Time) error {
	if date.Sub(m.now()) < CutoffWindow {
		return fmt.Errorf("%w: appointments cannot be changed within %s of the start time", model.ErrTooLate, CutoffWindow)
	}
	return nil
}

func wrapMissing(err error, appointmentID string) error {
	if errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("%w: appointment %s", model.ErrNotFound, appointmentID)
	}
	return err
}
