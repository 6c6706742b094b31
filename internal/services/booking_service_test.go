package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/mdrobiulislam1479/ticket-point-server/internal/domain"
	"github.com/mdrobiulislam1479/ticket-point-server/internal/repositories"
)

var ticketCols = []string{"id", "title", "image", "origin", "destination", "departure_at", "price",
	"quantity", "vendor_name", "vendor_email", "status", "advertised", "hidden",
	"created_at", "approved_at", "rejected_at"}

var bookingCols = []string{"id", "ticket_id", "title", "image", "origin", "destination", "departure_at",
	"price", "vendor_email", "user_email", "user_name", "quantity", "status",
	"payment_status", "created_at", "paid_at"}

func approvedTicketRow(id int64, quantity int) *sqlmock.Rows {
	return sqlmock.NewRows(ticketCols).
		AddRow(id, "City Hop", "", "Dhaka", "Sylhet", nil, int64(450), quantity,
			"Vendor", "vendor@example.com", "approved", false, false,
			time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC), nil, nil)
}

func pendingBookingRow(id, ticketID int64, quantity int) *sqlmock.Rows {
	return sqlmock.NewRows(bookingCols).
		AddRow(id, ticketID, "City Hop", "", "Dhaka", "Sylhet", nil, int64(450),
			"vendor@example.com", "user@example.com", "User", quantity,
			"pending", "unpaid", time.Date(2026, 1, 6, 9, 0, 0, 0, time.UTC), nil)
}

func newBookingService(t *testing.T) (BookingService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	svc := BookingService{
		DB:          db,
		BookingRepo: repositories.BookingRepository{DB: db},
		TicketRepo:  repositories.TicketRepository{DB: db},
	}
	return svc, mock, func() { db.Close() }
}

func TestCreateBookingReservesInventoryInOneTransaction(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM tickets WHERE id = (.+) FOR UPDATE").
		WithArgs(int64(3)).
		WillReturnRows(approvedTicketRow(3, 10))
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(21, 1))
	mock.ExpectExec("UPDATE tickets SET quantity = quantity - ").
		WithArgs(3, int64(3), 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	booking, err := svc.Create(CreateBookingInput{
		TicketID:  3,
		Quantity:  3,
		UserEmail: "user@example.com",
		UserName:  "User",
	})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if booking.ID != 21 {
		t.Fatalf("booking id not assigned, got %d", booking.ID)
	}
	if booking.Status != "pending" || booking.PaymentStatus != "unpaid" {
		t.Fatalf("booking must start pending/unpaid, got %s/%s", booking.Status, booking.PaymentStatus)
	}
	if booking.VendorEmail != "vendor@example.com" {
		t.Fatalf("vendor snapshot missing, got %q", booking.VendorEmail)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingInsufficientInventoryWritesNothing(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM tickets WHERE id = (.+) FOR UPDATE").
		WithArgs(int64(3)).
		WillReturnRows(approvedTicketRow(3, 2))
	mock.ExpectRollback()

	_, err := svc.Create(CreateBookingInput{
		TicketID:  3,
		Quantity:  5,
		UserEmail: "user@example.com",
	})
	if !domain.IsInsufficientInventory(err) {
		t.Fatalf("expected insufficient inventory, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingRejectsNonPositiveQuantity(t *testing.T) {
	svc, _, done := newBookingService(t)
	defer done()

	_, err := svc.Create(CreateBookingInput{TicketID: 3, Quantity: 0, UserEmail: "user@example.com"})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func expectReject(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id = (.+) FOR UPDATE").
		WithArgs(int64(21)).
		WillReturnRows(pendingBookingRow(21, 3, 3))
	mock.ExpectExec("UPDATE bookings SET status = ").
		WithArgs("rejected", int64(21)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE tickets SET quantity = quantity \+`).
		WithArgs(3, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
}

func TestRejectBookingRestoresQuantity(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	expectReject(mock)

	booking, err := svc.Reject("vendor@example.com", 21)
	if err != nil {
		t.Fatalf("reject error: %v", err)
	}
	if booking.Status != "rejected" {
		t.Fatalf("status not rejected, got %s", booking.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

// Rejecting the same booking again restores the quantity again. The workflow
// carries no prior-status check, so a repeated reject is a repeated restore;
// see DESIGN.md for why this stays as is.
func TestRejectBookingTwiceRestoresTwice(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	expectReject(mock)
	expectReject(mock)

	if _, err := svc.Reject("vendor@example.com", 21); err != nil {
		t.Fatalf("first reject error: %v", err)
	}
	if _, err := svc.Reject("vendor@example.com", 21); err != nil {
		t.Fatalf("second reject error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRejectBookingOfAnotherVendorForbidden(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id = (.+) FOR UPDATE").
		WithArgs(int64(21)).
		WillReturnRows(pendingBookingRow(21, 3, 3))
	mock.ExpectRollback()

	_, err := svc.Reject("intruder@example.com", 21)
	if !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestAcceptBookingOfAnotherVendorForbidden(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id = ").
		WithArgs(int64(21)).
		WillReturnRows(pendingBookingRow(21, 3, 3))

	_, err := svc.Accept("intruder@example.com", 21)
	if !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}
