package repositories

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/mdrobiulislam1479/ticket-point-server/internal/domain"
	"github.com/mdrobiulislam1479/ticket-point-server/internal/domain/models"
)

func TestUpsertUsesDuplicateKeyUpdate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	now := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	mock.ExpectExec("INSERT INTO users").
		WithArgs("alice@example.com", "Alice", models.RoleUser, now, now).
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := UserRepository{DB: db}
	if err := repo.Upsert("alice@example.com", "Alice", now); err != nil {
		t.Fatalf("upsert error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpsertRejectsEmptyEmail(t *testing.T) {
	repo := UserRepository{}
	err := repo.Upsert("", "Nobody", time.Now())
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetByEmailMissingIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT id, email, name, role, is_fraud").
		WithArgs("ghost@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "role", "is_fraud", "created_at", "last_logged_in"}))

	repo := UserRepository{DB: db}
	_, err = repo.GetByEmail("ghost@example.com")
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSetFraudMissingUserIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE users SET is_fraud").
		WithArgs(true, "ghost@example.com").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT id FROM users").
		WithArgs("ghost@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := UserRepository{DB: db}
	err = repo.SetFraud(db, "ghost@example.com", true)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
