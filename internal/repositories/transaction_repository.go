package repositories

import (
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	intconfig "github.com/mdrobiulislam1479/ticket-point-server/internal/config"
	"github.com/mdrobiulislam1479/ticket-point-server/internal/domain"
	"github.com/mdrobiulislam1479/ticket-point-server/internal/domain/models"
)

const mysqlErrDuplicateEntry = 1062

type TransactionRepository struct {
	DB *sql.DB
}

func (r TransactionRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Insert writes a payment record. A second insert for the same session_id
// trips the unique index and comes back as a ConflictError, which the
// reconciliation flow treats as "already recorded".
func (r TransactionRepository) Insert(ex Execer, t *models.Transaction) error {
	res, err := ex.Exec(`
		INSERT INTO transactions (booking_id, user_email, vendor_email, title, amount,
			session_id, transaction_id, status, paid_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, t.BookingID, t.UserEmail, t.VendorEmail, t.Title, t.Amount,
		t.SessionID, t.TransactionID, t.Status, t.PaidAt)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrDuplicateEntry {
			return domain.ConflictError{Resource: "transaction", Msg: "session already recorded", Err: err}
		}
		return err
	}
	t.ID, err = res.LastInsertId()
	return err
}

func (r TransactionRepository) GetBySessionID(sessionID string) (models.Transaction, error) {
	var t models.Transaction
	err := r.db().QueryRow(`
		SELECT id, booking_id, user_email, vendor_email, title, amount,
			session_id, transaction_id, status, paid_at
		FROM transactions
		WHERE session_id = ?
		LIMIT 1
	`, sessionID).Scan(&t.ID, &t.BookingID, &t.UserEmail, &t.VendorEmail, &t.Title,
		&t.Amount, &t.SessionID, &t.TransactionID, &t.Status, &t.PaidAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Transaction{}, domain.NotFoundError{Resource: "transaction", Err: err}
		}
		return models.Transaction{}, err
	}
	return t, nil
}

func (r TransactionRepository) ListByUser(email string) ([]models.Transaction, error) {
	rows, err := r.db().Query(`
		SELECT id, booking_id, user_email, vendor_email, title, amount,
			session_id, transaction_id, status, paid_at
		FROM transactions
		WHERE user_email = ?
		ORDER BY paid_at DESC
	`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	txs := make([]models.Transaction, 0)
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.BookingID, &t.UserEmail, &t.VendorEmail, &t.Title,
			&t.Amount, &t.SessionID, &t.TransactionID, &t.Status, &t.PaidAt); err != nil {
			return nil, err
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}
