package repositories

import (
	"database/sql"
	"errors"

	intconfig "github.com/mdrobiulislam1479/ticket-point-server/internal/config"
	"github.com/mdrobiulislam1479/ticket-point-server/internal/domain"
	"github.com/mdrobiulislam1479/ticket-point-server/internal/domain/models"
)

type BookingRepository struct {
	DB *sql.DB
}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const bookingColumns = `id, ticket_id, title, image, origin, destination, departure_at, price,
	vendor_email, user_email, user_name, quantity, status, payment_status, created_at, paid_at`

func scanBooking(row interface{ Scan(dest ...any) error }) (models.Booking, error) {
	var (
		b         models.Booking
		departure sql.NullTime
		paidAt    sql.NullTime
	)
	err := row.Scan(&b.ID, &b.TicketID, &b.Title, &b.Image, &b.Origin, &b.Destination,
		&departure, &b.Price, &b.VendorEmail, &b.UserEmail, &b.UserName, &b.Quantity,
		&b.Status, &b.PaymentStatus, &b.CreatedAt, &paidAt)
	if err != nil {
		return models.Booking{}, err
	}
	b.DepartureAt = timePtr(departure)
	b.PaidAt = timePtr(paidAt)
	return b, nil
}

// Insert writes the booking snapshot. It takes an Execer so creation can
// share a transaction with the inventory decrement.
func (r BookingRepository) Insert(ex Execer, b *models.Booking) error {
	res, err := ex.Exec(`
		INSERT INTO bookings (ticket_id, title, image, origin, destination, departure_at, price,
			vendor_email, user_email, user_name, quantity, status, payment_status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, b.TicketID, b.Title, b.Image, b.Origin, b.Destination, nullableTime(b.DepartureAt), b.Price,
		b.VendorEmail, b.UserEmail, b.UserName, b.Quantity, b.Status, b.PaymentStatus, b.CreatedAt)
	if err != nil {
		return err
	}
	b.ID, err = res.LastInsertId()
	return err
}

func (r BookingRepository) GetByID(id int64) (models.Booking, error) {
	return r.get(r.db(), id, false)
}

func (r BookingRepository) GetByIDForUpdate(ex Execer, id int64) (models.Booking, error) {
	return r.get(ex, id, true)
}

func (r BookingRepository) get(ex Execer, id int64, forUpdate bool) (models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ? LIMIT 1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	b, err := scanBooking(ex.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "booking", Err: err}
		}
		return models.Booking{}, err
	}
	return b, nil
}

func (r BookingRepository) UpdateStatus(ex Execer, id int64, status string) error {
	res, err := ex.Exec(`UPDATE bookings SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	_, err = res.RowsAffected()
	return err
}

// MarkPaid flips payment_status exactly once; a replay finds zero matching
// rows and reports false without touching paid_at.
func (r BookingRepository) MarkPaid(ex Execer, id int64) (bool, error) {
	res, err := ex.Exec(`
		UPDATE bookings SET payment_status = ?, paid_at = NOW()
		WHERE id = ? AND payment_status = ?
	`, models.PaymentStatusPaid, id, models.PaymentStatusUnpaid)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r BookingRepository) ListByUser(email string) ([]models.Booking, error) {
	return r.list(`SELECT `+bookingColumns+` FROM bookings WHERE user_email = ? ORDER BY created_at DESC`, email)
}

func (r BookingRepository) ListByVendor(email string) ([]models.Booking, error) {
	return r.list(`SELECT `+bookingColumns+` FROM bookings WHERE vendor_email = ? ORDER BY created_at DESC`, email)
}

func (r BookingRepository) list(query string, args ...any) ([]models.Booking, error) {
	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]models.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
