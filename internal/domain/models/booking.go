package models

import "time"

const (
	BookingStatusPending  = "pending"
	BookingStatusAccepted = "accepted"
	BookingStatusRejected = "rejected"

	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
)

// Booking is a user's reservation against a ticket. The display fields are a
// snapshot of the ticket at booking time and never change afterwards.
type Booking struct {
	ID            int64      `json:"id"`
	TicketID      int64      `json:"ticket_id"`
	Title         string     `json:"title"`
	Image         string     `json:"image"`
	Origin        string     `json:"origin"`
	Destination   string     `json:"destination"`
	DepartureAt   *time.Time `json:"departure_at"`
	Price         int64      `json:"price"`
	VendorEmail   string     `json:"vendor_email"`
	UserEmail     string     `json:"user_email"`
	UserName      string     `json:"user_name"`
	Quantity      int        `json:"quantity"`
	Status        string     `json:"status"`
	PaymentStatus string     `json:"payment_status"`
	CreatedAt     time.Time  `json:"created_at"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
}
