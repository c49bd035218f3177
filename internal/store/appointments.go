package store

import (
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/fairyhunter13/salon-management-service/internal/model"
)

// AppointmentStore holds appointment records keyed by id.
type AppointmentStore struct {
	mu sync.RWMutex
	m  map[string]*model.Appointment
}

// NewAppointments creates an empty AppointmentStore.
func NewAppointments() *AppointmentStore {
	return &AppointmentStore{m: make(map[string]*model.Appointment)}
}

func cloneAppointment(a *model.Appointment) model.Appointment {
	cp := *a
	cp.Services = slices.Clone(a.Services)
	if a.Review != nil {
		rv := *a.Review
		cp.Review = &rv
	}
	return cp
}

// Create inserts a new appointment record.
func (s *AppointmentStore) Create(a model.Appointment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := cloneAppointment(&a)
	s.m[a.ID] = &cp
}

// Get returns a copy of the appointment with the given id.
func (s *AppointmentStore) Get(id string) (model.Appointment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.m[id]
	if !ok {
		return model.Appointment{}, false
	}
	return cloneAppointment(a), true
}

// Update applies fn to a working copy under the store lock and commits only
// when fn succeeds.
func (s *AppointmentStore) Update(id string, fn func(*model.Appointment) error) (model.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.m[id]
	if !ok {
		return model.Appointment{}, model.ErrNotFound
	}
	work := cloneAppointment(a)
	if err := fn(&work); err != nil {
		return model.Appointment{}, err
	}
	committed := cloneAppointment(&work)
	s.m[id] = &committed
	return work, nil
}

// AppointmentFilter narrows List results. Zero fields match everything. Day
// matches appointments falling on that calendar day in the day's location.
type AppointmentFilter struct {
	CustomerID string
	StaffID    string
	Status     model.AppointmentStatus
	Day        time.Time
}

// List returns copies of matching appointments ordered by appointment date,
// soonest first.
func (s *AppointmentStore) List(f AppointmentFilter) []model.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Appointment, 0, len(s.m))
	for _, a := range s.m {
		if f.CustomerID != "" && a.CustomerID != f.CustomerID {
			continue
		}
		if f.StaffID != "" && a.StaffID != f.StaffID {
			continue
		}
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		if !f.Day.IsZero() {
			start := time.Date(f.Day.Year(), f.Day.Month(), f.Day.Day(), 0, 0, 0, 0, f.Day.Location())
			end := start.AddDate(0, 0, 1)
			if a.Date.Before(start) || !a.Date.Before(end) {
				continue
			}
		}
		out = append(out, cloneAppointment(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
