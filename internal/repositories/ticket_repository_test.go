package repositories

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/mdrobiulislam1479/ticket-point-server/internal/domain"
)

func TestAdvertiseOnStopsAtCap(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// pool full: the conditional update matches nothing
	mock.ExpectExec("SET advertised = 1").
		WithArgs(int64(7), 6).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := TicketRepository{DB: db}
	ok, err := repo.AdvertiseOn(7, 6)
	if err != nil {
		t.Fatalf("advertise error: %v", err)
	}
	if ok {
		t.Fatalf("advertise should be refused when the pool is full")
	}

	mock.ExpectExec("SET advertised = 1").
		WithArgs(int64(7), 6).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err = repo.AdvertiseOn(7, 6)
	if err != nil {
		t.Fatalf("advertise error: %v", err)
	}
	if !ok {
		t.Fatalf("advertise should succeed below the cap")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDecrementQuantityGuardedByAvailability(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE tickets SET quantity = quantity - ").
		WithArgs(5, int64(3), 5).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := TicketRepository{DB: db}
	ok, err := repo.DecrementQuantity(db, 3, 5)
	if err != nil {
		t.Fatalf("decrement error: %v", err)
	}
	if ok {
		t.Fatalf("decrement must report false when quantity is short")
	}
}

func TestSetStatusStampsModerationTime(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("approved_at = NOW").
		WithArgs("approved", int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := TicketRepository{DB: db}
	if err := repo.SetStatus(9, "approved"); err != nil {
		t.Fatalf("set status error: %v", err)
	}
}

func TestSetStatusRejectsUnknownStatus(t *testing.T) {
	repo := TicketRepository{}
	err := repo.SetStatus(9, "vanished")
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDeleteMissingTicketIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("DELETE FROM tickets").
		WithArgs(int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := TicketRepository{DB: db}
	if err := repo.Delete(404); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
