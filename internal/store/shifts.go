package store

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/fairyhunter13/salon-management-service/internal/model"
)

// ShiftStore holds shift records keyed by id and enforces the unique index on
// (staff, date, time slot).
type ShiftStore struct {
	mu     sync.RWMutex
	m      map[string]*model.Shift
	bySlot map[string]string // (staff, day, slot) -> shift id
}

// NewShifts creates an empty ShiftStore.
func NewShifts() *ShiftStore {
	return &ShiftStore{
		m:      make(map[string]*model.Shift),
		bySlot: make(map[string]string),
	}
}

func slotKey(staffID string, date time.Time, slot model.TimeSlot) string {
	return fmt.Sprintf("%s|%s|%s", staffID, date.Format("2006-01-02"), slot)
}

func cloneShift(s *model.Shift) model.Shift {
	cp := *s
	if s.CheckIn != nil {
		in := *s.CheckIn
		cp.CheckIn = &in
	}
	if s.CheckOut != nil {
		out := *s.CheckOut
		cp.CheckOut = &out
	}
	return cp
}

// Create inserts a new shift, failing with model.ErrDuplicateShift when the
// staff member already registered the same date and slot.
func (s *ShiftStore) Create(sh model.Shift) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := slotKey(sh.StaffID, sh.Date, sh.TimeSlot)
	if _, taken := s.bySlot[key]; taken {
		return fmt.Errorf("%w: %s %s", model.ErrDuplicateShift, sh.Date.Format("2006-01-02"), sh.TimeSlot)
	}
	cp := cloneShift(&sh)
	s.m[sh.ID] = &cp
	s.bySlot[key] = sh.ID
	return nil
}

// Get returns a copy of the shift with the given id.
func (s *ShiftStore) Get(id string) (model.Shift, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sh, ok := s.m[id]
	if !ok {
		return model.Shift{}, false
	}
	return cloneShift(sh), true
}

// Update applies fn to a working copy under the store lock and commits only
// when fn succeeds. Check-in and check-out of the same shift serialize here.
func (s *ShiftStore) Update(id string, fn func(*model.Shift) error) (model.Shift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sh, ok := s.m[id]
	if !ok {
		return model.Shift{}, model.ErrNotFound
	}
	work := cloneShift(sh)
	if err := fn(&work); err != nil {
		return model.Shift{}, err
	}
	committed := cloneShift(&work)
	s.m[id] = &committed
	return work, nil
}

// ShiftFilter narrows List results. Zero fields match everything.
type ShiftFilter struct {
	StaffID  string
	From, To time.Time
}

// List returns copies of matching shifts ordered by date then slot.
func (s *ShiftStore) List(f ShiftFilter) []model.Shift {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Shift, 0, len(s.m))
	for _, sh := range s.m {
		if f.StaffID != "" && sh.StaffID != f.StaffID {
			continue
		}
		if !f.From.IsZero() && sh.Date.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && sh.Date.After(f.To) {
			continue
		}
		out = append(out, cloneShift(sh))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].TimeSlot < out[j].TimeSlot
	})
	return out
}
