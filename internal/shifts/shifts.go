// Package shifts implements the staff shift registry: slot registration with
// the one-per-(staff, date, slot) rule and same-day check-in/check-out.
package shifts

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fairyhunter13/salon-management-service/internal/events"
	"github.com/fairyhunter13/salon-management-service/internal/fsm"
	"github.com/fairyhunter13/salon-management-service/internal/model"
	"github.com/fairyhunter13/salon-management-service/internal/obs"
	"github.com/fairyhunter13/salon-management-service/internal/store"
)

// checkpoint is the attendance sub-state of a shift, derived from its
// check-in and check-out records.
type checkpoint string

const (
	checkpointRegistered checkpoint = "registered"
	checkpointIn         checkpoint = "checked_in"
	checkpointOut        checkpoint = "checked_out"
)

// checkFlow sequences attendance: registered -> checked_in -> checked_out.
var checkFlow = fsm.New(map[checkpoint][]checkpoint{
	checkpointRegistered: {checkpointIn},
	checkpointIn:         {checkpointOut},
	checkpointOut:        {},
})

func checkpointOf(s *model.Shift) checkpoint {
	switch {
	case s.CheckOut != nil:
		return checkpointOut
	case s.CheckIn != nil:
		return checkpointIn
	default:
		return checkpointRegistered
	}
}

// Attendance is the check-in/check-out view of a shift with computed working
// hours.
type Attendance struct {
	ShiftID      string             `json:"shift_id"`
	Date         time.Time          `json:"date"`
	TimeSlot     model.TimeSlot     `json:"time_slot"`
	Status       model.ShiftStatus  `json:"status"`
	CheckIn      *model.CheckRecord `json:"check_in"`
	CheckOut     *model.CheckRecord `json:"check_out"`
	WorkingHours *float64           `json:"working_hours"`
}

// Registry coordinates shift registration and attendance.
type Registry struct {
	shifts     *store.ShiftStore
	dispatcher *events.Dispatcher
	now        func() time.Time
}

// NewRegistry constructs a Registry over the given store.
func NewRegistry(shifts *store.ShiftStore, dispatcher *events.Dispatcher) *Registry {
	return &Registry{shifts: shifts, dispatcher: dispatcher, now: time.Now}
}

// Register books a (date, slot) for the staff actor. Past dates are rejected;
// a second registration of the same slot fails with model.ErrDuplicateShift.
func (r *Registry) Register(actor model.Actor, date time.Time, slot model.TimeSlot, note string) (model.Shift, error) {
	if !model.ValidTimeSlot(slot) {
		return model.Shift{}, fmt.Errorf("%w: unknown time slot %q", model.ErrValidation, slot)
	}
	day := startOfDay(date)
	if day.Before(startOfDay(r.now())) {
		return model.Shift{}, fmt.Errorf("%w: cannot register a shift for a past date", model.ErrValidation)
	}

	now := r.now().UTC()
	sh := model.Shift{
		ID:        uuid.NewString(),
		StaffID:   actor.ID,
		Date:      day,
		TimeSlot:  slot,
		Status:    model.ShiftAvailable,
		Note:      note,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.shifts.Create(sh); err != nil {
		return model.Shift{}, err
	}

	r.dispatcher.Emit("shift.registered", sh)
	obs.Logger.Info("shift_registered",
		zap.String("shift_id", sh.ID),
		zap.String("staff_id", sh.StaffID),
		zap.String("date", day.Format("2006-01-02")),
		zap.String("time_slot", string(slot)),
	)
	return sh, nil
}

// List returns the actor's own shifts within the optional date range.
func (r *Registry) List(actor model.Actor, from, to time.Time) []model.Shift {
	return r.shifts.List(store.ShiftFilter{StaffID: actor.ID, From: from, To: to})
}

// CheckIn records the start of the shift. Only the owning staff member, only
// once, and only on the shift's calendar day.
func (r *Registry) CheckIn(shiftID string, actor model.Actor, location string) (model.Shift, error) {
	sh, err := r.shifts.Update(shiftID, func(s *model.Shift) error {
		if s.StaffID != actor.ID {
			return fmt.Errorf("%w: shift %s", model.ErrForbidden, shiftID)
		}
		if !checkFlow.Can(checkpointOf(s), checkpointIn) {
			return fmt.Errorf("%w: shift %s", model.ErrAlreadyCheckedIn, shiftID)
		}
		if err := r.checkSameDay(s.Date); err != nil {
			return err
		}
		s.CheckIn = &model.CheckRecord{Time: r.now().UTC(), Location: location}
		s.UpdatedAt = r.now().UTC()
		return nil
	})
	if err != nil {
		return model.Shift{}, wrapMissing(err, shiftID)
	}

	r.dispatcher.Emit("shift.checked_in", sh)
	return sh, nil
}

// CheckOut records the end of the shift, marks it completed, and makes the
// elapsed hours available through Attendance. Requires a prior check-in on
// the same calendar day.
func (r *Registry) CheckOut(shiftID string, actor model.Actor, location string) (model.Shift, error) {
	sh, err := r.shifts.Update(shiftID, func(s *model.Shift) error {
		if s.StaffID != actor.ID {
			return fmt.Errorf("%w: shift %s", model.ErrForbidden, shiftID)
		}
		switch checkpointOf(s) {
		case checkpointRegistered:
			return fmt.Errorf("%w: shift %s", model.ErrNotCheckedIn, shiftID)
		case checkpointOut:
			return fmt.Errorf("%w: shift %s", model.ErrAlreadyCheckedOut, shiftID)
		}
		if err := r.checkSameDay(s.Date); err != nil {
			return err
		}
		s.CheckOut = &model.CheckRecord{Time: r.now().UTC(), Location: location}
		s.Status = model.ShiftCompleted
		s.UpdatedAt = r.now().UTC()
		return nil
	})
	if err != nil {
		return model.Shift{}, wrapMissing(err, shiftID)
	}

	r.dispatcher.Emit("shift.completed", sh)
	obs.Logger.Info("shift_completed",
		zap.String("shift_id", sh.ID),
		zap.String("staff_id", sh.StaffID),
	)
	return sh, nil
}

// Attendance returns the check records and worked hours of a shift, visible
// to the owning staff member and admins.
func (r *Registry) Attendance(shiftID string, actor model.Actor) (Attendance, error) {
	sh, ok := r.shifts.Get(shiftID)
	if !ok {
		return Attendance{}, fmt.Errorf("%w: shift %s", model.ErrNotFound, shiftID)
	}
	if sh.StaffID != actor.ID && actor.Role != model.RoleAdmin {
		return Attendance{}, fmt.Errorf("%w: shift %s", model.ErrForbidden, shiftID)
	}
	att := Attendance{
		ShiftID:  sh.ID,
		Date:     sh.Date,
		TimeSlot: sh.TimeSlot,
		Status:   sh.Status,
		CheckIn:  sh.CheckIn,
		CheckOut: sh.CheckOut,
	}
	if sh.CheckIn != nil && sh.CheckOut != nil {
		hours := WorkingHours(sh.CheckIn.Time, sh.CheckOut.Time)
		att.WorkingHours = &hours
	}
	return att, nil
}

// WorkingHours returns the elapsed hours between check-in and check-out,
// rounded to two decimals.
func WorkingHours(in, out time.Time) float64 {
	return math.Round(out.Sub(in).Hours()*100) / 100
}

// checkSameDay restricts attendance actions to the shift's calendar day.
func (r *Registry) checkSameDay(date time.Time) error {
	if !startOfDay(date).Equal(startOfDay(r.now())) {
		return fmt.Errorf("%w: attendance is only possible on the shift date", model.ErrWrongDay)
	}
	return nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func wrapMissing(err error, shiftID string) error {
	if errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("%w: shift %s", model.ErrNotFound, shiftID)
	}
	return err
}
