package httpapi

import (
	"net/http"
	"time"

	"github.com/fairyhunter13/salon-management-service/internal/model"
)

type registerShiftRequest struct {
	Date     string         `json:"date"`
	TimeSlot model.TimeSlot `json:"time_slot"`
	Note     string         `json:"note"`
}

func (a *App) registerShiftHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireRole(w, r, model.RoleStaff)
	if !ok {
		return
	}
	var req registerShiftRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	date, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "validation_error", "date must be YYYY-MM-DD")
		return
	}
	sh, err := a.Shifts.Register(actor, date, req.TimeSlot, req.Note)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sh)
}

func (a *App) myShiftsHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireRole(w, r, model.RoleStaff)
	if !ok {
		return
	}
	q := r.URL.Query()
	writeJSON(w, http.StatusOK, a.Shifts.List(actor, parseDay(q.Get("start_date")), parseDay(q.Get("end_date"))))
}

type checkRequest struct {
	Location string `json:"location"`
}

func (a *App) checkInHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireRole(w, r, model.RoleStaff)
	if !ok {
		return
	}
	var req checkRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	sh, err := a.Shifts.CheckIn(r.PathValue("id"), actor, req.Location)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sh)
}

func (a *App) checkOutHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireRole(w, r, model.RoleStaff)
	if !ok {
		return
	}
	var req checkRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	sh, err := a.Shifts.CheckOut(r.PathValue("id"), actor, req.Location)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sh)
}

func (a *App) shiftAttendanceHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireRole(w, r, model.RoleStaff, model.RoleAdmin)
	if !ok {
		return
	}
	att, err := a.Shifts.Attendance(r.PathValue("id"), actor)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, att)
}

func (a *App) staffAppointmentsHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireRole(w, r, model.RoleStaff, model.RoleAdmin)
	if !ok {
		return
	}
	q := r.URL.Query()
	list, err := a.Booking.ListSchedule(actor, q.Get("staff_id"), model.AppointmentStatus(q.Get("status")), parseDay(q.Get("date")))
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

type appointmentStatusRequest struct {
	Status model.AppointmentStatus `json:"status"`
}

func (a *App) appointmentStatusHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireRole(w, r, model.RoleStaff, model.RoleAdmin)
	if !ok {
		return
	}
	var req appointmentStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	apt, err := a.Booking.TransitionStatus(r.PathValue("id"), req.Status, actor)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, apt)
}

func (a *App) customerHistoryHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	list, err := a.Booking.History(actor, r.PathValue("id"))
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
