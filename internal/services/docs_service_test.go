package services

import (
	"bytes"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/mdrobiulislam1479/ticket-point-server/internal/domain"
	"github.com/mdrobiulislam1479/ticket-point-server/internal/repositories"
)

func paidBookingRow(id int64) *sqlmock.Rows {
	departure := time.Date(2026, 3, 15, 8, 30, 0, 0, time.UTC)
	paidAt := time.Date(2026, 1, 7, 10, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(bookingCols).
		AddRow(id, int64(3), "City Hop", "", "Dhaka", "Sylhet", departure, int64(450),
			"vendor@example.com", "user@example.com", "User", 2,
			"accepted", "paid", time.Date(2026, 1, 6, 9, 0, 0, 0, time.UTC), paidAt)
}

func TestGenerateETicketForPaidBooking(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id = ").
		WithArgs(int64(21)).
		WillReturnRows(paidBookingRow(21))

	svc := DocsService{BookingRepo: repositories.BookingRepository{DB: db}}
	pdf, filename, err := svc.GenerateETicket("user@example.com", 21)
	if err != nil {
		t.Fatalf("GenerateETicket returned error: %v", err)
	}
	if len(pdf) == 0 || filename == "" {
		t.Fatalf("GenerateETicket returned empty data")
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("output is not a PDF document")
	}
}

func TestGenerateETicketUnpaidBookingRefused(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id = ").
		WithArgs(int64(21)).
		WillReturnRows(pendingBookingRow(21, 3, 2))

	svc := DocsService{BookingRepo: repositories.BookingRepository{DB: db}}
	_, _, err = svc.GenerateETicket("user@example.com", 21)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGenerateETicketForeignBookingForbidden(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id = ").
		WithArgs(int64(21)).
		WillReturnRows(paidBookingRow(21))

	svc := DocsService{BookingRepo: repositories.BookingRepository{DB: db}}
	_, _, err = svc.GenerateETicket("intruder@example.com", 21)
	if !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}
