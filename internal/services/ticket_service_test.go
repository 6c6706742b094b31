package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/mdrobiulislam1479/ticket-point-server/internal/domain"
	"github.com/mdrobiulislam1479/ticket-point-server/internal/domain/models"
	"github.com/mdrobiulislam1479/ticket-point-server/internal/repositories"
)

func newTicketService(t *testing.T) (TicketService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	svc := TicketService{
		DB:         db,
		TicketRepo: repositories.TicketRepository{DB: db},
		UserRepo:   repositories.UserRepository{DB: db},
	}
	return svc, mock, func() { db.Close() }
}

func TestCreateTicketForcesModerationDefaults(t *testing.T) {
	svc, mock, done := newTicketService(t)
	defer done()

	mock.ExpectExec("INSERT INTO tickets").
		WillReturnResult(sqlmock.NewResult(11, 1))

	vendor := models.User{Email: "vendor@example.com", Name: "Vendor", Role: models.RoleVendor}
	ticket, err := svc.Create(vendor, TicketInput{Title: "City Hop", Price: 450, Quantity: 20})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if ticket.Status != models.TicketStatusPending {
		t.Fatalf("new ticket must start pending, got %s", ticket.Status)
	}
	if ticket.Advertised || ticket.Hidden {
		t.Fatalf("new ticket must start unadvertised and visible")
	}
	if ticket.VendorEmail != vendor.Email || ticket.VendorName != vendor.Name {
		t.Fatalf("vendor identity must come from the account, got %s/%s", ticket.VendorEmail, ticket.VendorName)
	}
}

func TestCreateTicketByFraudVendorStartsHidden(t *testing.T) {
	svc, mock, done := newTicketService(t)
	defer done()

	mock.ExpectExec("INSERT INTO tickets").
		WillReturnResult(sqlmock.NewResult(12, 1))

	vendor := models.User{Email: "vendor@example.com", Role: models.RoleVendor, IsFraud: true}
	ticket, err := svc.Create(vendor, TicketInput{Title: "City Hop"})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if !ticket.Hidden {
		t.Fatalf("fraud vendor listings must be born hidden")
	}
}

func TestUpdateTicketOfAnotherVendorForbidden(t *testing.T) {
	svc, mock, done := newTicketService(t)
	defer done()

	mock.ExpectQuery("SELECT (.+) FROM tickets WHERE id = ").
		WithArgs(int64(11)).
		WillReturnRows(approvedTicketRow(11, 20))

	_, err := svc.Update("intruder@example.com", 11, TicketInput{Title: "Hijack"})
	if !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestToggleAdvertiseAtCapReportsLimit(t *testing.T) {
	svc, mock, done := newTicketService(t)
	defer done()

	mock.ExpectQuery("SELECT (.+) FROM tickets WHERE id = ").
		WithArgs(int64(11)).
		WillReturnRows(approvedTicketRow(11, 20))
	mock.ExpectExec("SET advertised = 1").
		WithArgs(int64(11), models.AdvertisedLimit).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := svc.ToggleAdvertise(11)
	if !domain.IsLimitExceeded(err) {
		t.Fatalf("expected limit exceeded, got %v", err)
	}
}

func TestMarkFraudCascadesInOneTransaction(t *testing.T) {
	svc, mock, done := newTicketService(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE users SET is_fraud").
		WithArgs(true, "vendor@example.com").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE tickets SET status = (.+), hidden = 1").
		WithArgs(models.TicketStatusHidden, "vendor@example.com").
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectCommit()

	if err := svc.MarkFraud("vendor@example.com"); err != nil {
		t.Fatalf("mark fraud error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMarkFraudUnknownVendorRollsBack(t *testing.T) {
	svc, mock, done := newTicketService(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE users SET is_fraud").
		WithArgs(true, "ghost@example.com").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT id FROM users").
		WithArgs("ghost@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	err := svc.MarkFraud("ghost@example.com")
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
