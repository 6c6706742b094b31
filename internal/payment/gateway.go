package payment

import "context"

// StatusPaid is the gateway-side payment status of a settled session.
const StatusPaid = "paid"

// CheckoutParams describes the single line item a booking turns into.
// UnitPrice is in major units; the gateway converts to minor units.
type CheckoutParams struct {
	BookingID   int64
	Title       string
	UnitPrice   int64
	Quantity    int
	UserEmail   string
	VendorEmail string
}

// Session is the gateway-neutral view of an external checkout session.
type Session struct {
	ID            string
	URL           string
	PaymentStatus string
	AmountTotal   int64
	TransactionID string
	Metadata      map[string]string
}

// Gateway is the external payment capability: create a hosted checkout
// session, and read one back during reconciliation. Implementations make a
// single attempt per call; retries are the caller's problem and nobody's
// policy here.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, p CheckoutParams) (*Session, error)
	GetCheckoutSession(ctx context.Context, sessionID string) (*Session, error)
}
