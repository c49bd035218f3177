// Package model defines domain types used by the service.
package model

import "time"

// Role identifies the kind of authenticated caller. Roles are asserted by the
// upstream identity gateway; the service only enforces ownership and role
// rules against them.
type Role string

const (
	RoleCustomer  Role = "customer"
	RoleStaff     Role = "staff"
	RoleInventory Role = "inventory"
	RoleAdmin     Role = "admin"
)

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

// Privileged reports whether the actor holds any back-office role.
func (a Actor) Privileged() bool {
	switch a.Role {
	case RoleStaff, RoleInventory, RoleAdmin:
		return true
	}
	return false
}

// Category classifies a product.
type Category string

const (
	CategoryShampoo     Category = "shampoo"
	CategoryConditioner Category = "conditioner"
	CategoryStyling     Category = "styling"
	CategoryTreatment   Category = "treatment"
	CategoryOther       Category = "other"
)

// ValidCategory reports whether c is a known product category.
func ValidCategory(c Category) bool {
	switch c {
	case CategoryShampoo, CategoryConditioner, CategoryStyling, CategoryTreatment, CategoryOther:
		return true
	}
	return false
}

// Product is a sellable item with finite stock. Stock is mutated only through
// the ledger; it never goes negative.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Image       string    `json:"image"`
	Category    Category  `json:"category"`
	Stock       int64     `json:"stock"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// PaymentMethod is how the customer pays for an order.
type PaymentMethod string

const (
	PaymentCOD     PaymentMethod = "cod"
	PaymentBanking PaymentMethod = "banking"
)

// PaymentStatus tracks payment progress; payment is recorded, not processed.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPaid      PaymentStatus = "paid"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
	PaymentCancelled PaymentStatus = "cancelled"
)

// OrderItem is one line of an order. Price is the unit price snapshotted at
// reservation time and is immune to later product price changes.
type OrderItem struct {
	ProductID string  `json:"product_id"`
	Quantity  int64   `json:"quantity"`
	Price     float64 `json:"price"`
}

// ShippingAddress is the delivery destination of an order.
type ShippingAddress struct {
	Address string `json:"address"`
	City    string `json:"city,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// Order is a customer purchase of products. TotalAmount always equals the sum
// over items of price times quantity.
type Order struct {
	ID              string          `json:"id"`
	CustomerID      string          `json:"customer_id"`
	Items           []OrderItem     `json:"items"`
	TotalAmount     float64         `json:"total_amount"`
	Status          OrderStatus     `json:"status"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
	PaymentMethod   PaymentMethod   `json:"payment_method"`
	PaymentStatus   PaymentStatus   `json:"payment_status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// RecomputeTotal restores the total-amount invariant after items change.
func (o *Order) RecomputeTotal() {
	var total float64
	for _, it := range o.Items {
		total += it.Price * float64(it.Quantity)
	}
	o.TotalAmount = total
}

// AppointmentStatus is the lifecycle state of an appointment.
type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

// ServiceItem is one requested salon service on an appointment.
type ServiceItem struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Review is customer feedback, settable only on completed appointments.
type Review struct {
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Appointment is a customer booking with a staff member. TotalPrice always
// equals the sum of service prices.
type Appointment struct {
	ID         string            `json:"id"`
	CustomerID string            `json:"customer_id"`
	StaffID    string            `json:"staff_id"`
	Date       time.Time         `json:"appointment_date"`
	Services   []ServiceItem     `json:"services"`
	TotalPrice float64           `json:"total_price"`
	Status     AppointmentStatus `json:"status"`
	Note       string            `json:"note,omitempty"`
	Review     *Review           `json:"review,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// RecomputeTotal restores the total-price invariant after services change.
func (a *Appointment) RecomputeTotal() {
	var total float64
	for _, svc := range a.Services {
		total += svc.Price
	}
	a.TotalPrice = total
}

// TimeSlot divides a working day into registrable shift slots.
type TimeSlot string

const (
	SlotMorning   TimeSlot = "morning"
	SlotAfternoon TimeSlot = "afternoon"
	SlotEvening   TimeSlot = "evening"
)

// ValidTimeSlot reports whether s is a known time slot.
func ValidTimeSlot(s TimeSlot) bool {
	switch s {
	case SlotMorning, SlotAfternoon, SlotEvening:
		return true
	}
	return false
}

// ShiftStatus is the lifecycle state of a staff shift.
type ShiftStatus string

const (
	ShiftAvailable ShiftStatus = "available"
	ShiftBooked    ShiftStatus = "booked"
	ShiftCompleted ShiftStatus = "completed"
	ShiftCancelled ShiftStatus = "cancelled"
)

// CheckRecord is a timestamped check-in or check-out with an optional
// reported location.
type CheckRecord struct {
	Time     time.Time `json:"time"`
	Location string    `json:"location,omitempty"`
}

// Shift is a staff work registration for one (date, slot). A staff member
// cannot hold two shifts for the same date and slot.
type Shift struct {
	ID        string       `json:"id"`
	StaffID   string       `json:"staff_id"`
	Date      time.Time    `json:"date"`
	TimeSlot  TimeSlot     `json:"time_slot"`
	Status    ShiftStatus  `json:"status"`
	Note      string       `json:"note,omitempty"`
	CheckIn   *CheckRecord `json:"check_in,omitempty"`
	CheckOut  *CheckRecord `json:"check_out,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// Supplier is an external product source for import orders.
type Supplier struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

// ImportItem is one restocked line of an import order.
type ImportItem struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// ImportOrder records a supplier delivery that restocked the ledger.
type ImportOrder struct {
	ID         string       `json:"id"`
	SupplierID string       `json:"supplier_id"`
	Items      []ImportItem `json:"items"`
	CreatedAt  time.Time    `json:"created_at"`
}
