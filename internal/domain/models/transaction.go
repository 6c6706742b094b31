package models

import "time"

// Transaction is the durable proof of a completed external payment. Rows are
// insert-only; session_id is unique per checkout session.
type Transaction struct {
	ID            int64     `json:"id"`
	BookingID     int64     `json:"booking_id"`
	UserEmail     string    `json:"user_email"`
	VendorEmail   string    `json:"vendor_email"`
	Title         string    `json:"title"`
	Amount        int64     `json:"amount"`
	SessionID     string    `json:"session_id"`
	TransactionID string    `json:"transaction_id"`
	Status        string    `json:"status"`
	PaidAt        time.Time `json:"paid_at"`
}
