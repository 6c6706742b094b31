package models

import "time"

const (
	TicketStatusPending  = "pending"
	TicketStatusApproved = "approved"
	TicketStatusRejected = "rejected"
	TicketStatusHidden   = "hidden"
)

// AdvertisedLimit caps how many tickets may carry the advertised flag at
// the same time, across all vendors.
const AdvertisedLimit = 6

// Ticket is a vendor listing. Status transitions are admin-only; quantity is
// mutated only by the booking workflow.
type Ticket struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Image       string     `json:"image"`
	Origin      string     `json:"origin"`
	Destination string     `json:"destination"`
	DepartureAt *time.Time `json:"departure_at"`
	Price       int64      `json:"price"`
	Quantity    int        `json:"quantity"`
	VendorName  string     `json:"vendor_name"`
	VendorEmail string     `json:"vendor_email"`
	Status      string     `json:"status"`
	Advertised  bool       `json:"advertised"`
	Hidden      bool       `json:"hidden"`
	CreatedAt   time.Time  `json:"created_at"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
	RejectedAt  *time.Time `json:"rejected_at,omitempty"`
}
