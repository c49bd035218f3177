package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/salon-management-service/internal/model"
)

func TestProductUpdateCommitsOnlyOnSuccess(t *testing.T) {
	s := NewProducts()
	s.Put(model.Product{ID: "p1", Name: "Argan Shampoo", Price: 12.5, Stock: 4})

	_, err := s.Update("p1", func(p *model.Product) error {
		p.Stock = 0
		return model.ErrValidation
	})
	require.Error(t, err)

	got, ok := s.Get("p1")
	require.True(t, ok)
	assert.Equal(t, int64(4), got.Stock, "failed update must not leak changes")

	_, err = s.Update("p1", func(p *model.Product) error {
		p.Stock = 9
		return nil
	})
	require.NoError(t, err)
	got, _ = s.Get("p1")
	assert.Equal(t, int64(9), got.Stock)
}

func TestProductUpdateMissing(t *testing.T) {
	s := NewProducts()
	_, err := s.Update("ghost", func(p *model.Product) error { return nil })
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestProductListFilters(t *testing.T) {
	s := NewProducts()
	s.Put(model.Product{ID: "p1", Name: "Argan Shampoo", Category: model.CategoryShampoo, IsActive: true})
	s.Put(model.Product{ID: "p2", Name: "Clay Wax", Category: model.CategoryStyling, IsActive: true})
	s.Put(model.Product{ID: "p3", Name: "Retired Shampoo", Category: model.CategoryShampoo, IsActive: false})

	byCategory := s.List(ProductFilter{Category: model.CategoryShampoo})
	assert.Len(t, byCategory, 2)

	active := s.List(ProductFilter{Category: model.CategoryShampoo, ActiveOnly: true})
	require.Len(t, active, 1)
	assert.Equal(t, "p1", active[0].ID)

	search := s.List(ProductFilter{Search: "shampoo"})
	assert.Len(t, search, 2, "search is case-insensitive")
}

func TestOrderGetReturnsIsolatedCopy(t *testing.T) {
	s := NewOrders()
	s.Create(model.Order{
		ID:     "o1",
		Items:  []model.OrderItem{{ProductID: "p1", Quantity: 2, Price: 5}},
		Status: model.OrderPending,
	})

	got, ok := s.Get("o1")
	require.True(t, ok)
	got.Items[0].Quantity = 99

	again, _ := s.Get("o1")
	assert.Equal(t, int64(2), again.Items[0].Quantity)
}

func TestOrderHasActiveReference(t *testing.T) {
	s := NewOrders()
	s.Create(model.Order{ID: "o1", Status: model.OrderPending, Items: []model.OrderItem{{ProductID: "p1", Quantity: 1}}})
	s.Create(model.Order{ID: "o2", Status: model.OrderCancelled, Items: []model.OrderItem{{ProductID: "p2", Quantity: 1}}})

	assert.True(t, s.HasActiveReference("p1"))
	assert.False(t, s.HasActiveReference("p2"), "terminal orders do not pin products")
	assert.False(t, s.HasActiveReference("p3"))
}

func TestShiftUniqueIndex(t *testing.T) {
	s := NewShifts()
	day := time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.Create(model.Shift{ID: "s1", StaffID: "staff-1", Date: day, TimeSlot: model.SlotMorning}))
	err := s.Create(model.Shift{ID: "s2", StaffID: "staff-1", Date: day, TimeSlot: model.SlotMorning})
	require.ErrorIs(t, err, model.ErrDuplicateShift)

	// Different slot, staff, or day is fine.
	require.NoError(t, s.Create(model.Shift{ID: "s3", StaffID: "staff-1", Date: day, TimeSlot: model.SlotEvening}))
	require.NoError(t, s.Create(model.Shift{ID: "s4", StaffID: "staff-2", Date: day, TimeSlot: model.SlotMorning}))
	require.NoError(t, s.Create(model.Shift{ID: "s5", StaffID: "staff-1", Date: day.AddDate(0, 0, 1), TimeSlot: model.SlotMorning}))
}

func TestAppointmentListByDay(t *testing.T) {
	s := NewAppointments()
	s.Create(model.Appointment{ID: "a1", StaffID: "st1", Date: time.Date(2026, 9, 3, 10, 0, 0, 0, time.UTC)})
	s.Create(model.Appointment{ID: "a2", StaffID: "st1", Date: time.Date(2026, 9, 3, 16, 30, 0, 0, time.UTC)})
	s.Create(model.Appointment{ID: "a3", StaffID: "st1", Date: time.Date(2026, 9, 4, 9, 0, 0, 0, time.UTC)})

	day := time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC)
	got := s.List(AppointmentFilter{StaffID: "st1", Day: day})
	require.Len(t, got, 2)
	assert.Equal(t, "a1", got[0].ID, "sorted by appointment time")
	assert.Equal(t, "a2", got[1].ID)
}
