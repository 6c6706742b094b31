package repositories

import (
	"database/sql"
	"errors"

	intconfig "github.com/mdrobiulislam1479/ticket-point-server/internal/config"
	"github.com/mdrobiulislam1479/ticket-point-server/internal/domain"
	"github.com/mdrobiulislam1479/ticket-point-server/internal/domain/models"
)

type TicketRepository struct {
	DB *sql.DB
}

func (r TicketRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const ticketColumns = `id, title, image, origin, destination, departure_at, price, quantity,
	vendor_name, vendor_email, status, advertised, hidden, created_at, approved_at, rejected_at`

func scanTicket(row interface{ Scan(dest ...any) error }) (models.Ticket, error) {
	var (
		t          models.Ticket
		departure  sql.NullTime
		approvedAt sql.NullTime
		rejectedAt sql.NullTime
	)
	err := row.Scan(&t.ID, &t.Title, &t.Image, &t.Origin, &t.Destination, &departure,
		&t.Price, &t.Quantity, &t.VendorName, &t.VendorEmail, &t.Status,
		&t.Advertised, &t.Hidden, &t.CreatedAt, &approvedAt, &rejectedAt)
	if err != nil {
		return models.Ticket{}, err
	}
	t.DepartureAt = timePtr(departure)
	t.ApprovedAt = timePtr(approvedAt)
	t.RejectedAt = timePtr(rejectedAt)
	return t, nil
}

func (r TicketRepository) Insert(t *models.Ticket) error {
	res, err := r.db().Exec(`
		INSERT INTO tickets (title, image, origin, destination, departure_at, price, quantity,
			vendor_name, vendor_email, status, advertised, hidden, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, t.Title, t.Image, t.Origin, t.Destination, nullableTime(t.DepartureAt), t.Price, t.Quantity,
		t.VendorName, t.VendorEmail, t.Status, t.Advertised, t.Hidden, t.CreatedAt)
	if err != nil {
		return err
	}
	t.ID, err = res.LastInsertId()
	return err
}

func (r TicketRepository) GetByID(id int64) (models.Ticket, error) {
	return r.get(r.db(), id, false)
}

// GetByIDForUpdate locks the ticket row for the rest of the transaction.
func (r TicketRepository) GetByIDForUpdate(ex Execer, id int64) (models.Ticket, error) {
	return r.get(ex, id, true)
}

func (r TicketRepository) get(ex Execer, id int64, forUpdate bool) (models.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id = ? LIMIT 1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	t, err := scanTicket(ex.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Ticket{}, domain.NotFoundError{Resource: "ticket", Err: err}
		}
		return models.Ticket{}, err
	}
	return t, nil
}

// Update rewrites the vendor-editable display fields. Quantity, status and
// the moderation flags are intentionally out of reach here.
func (r TicketRepository) Update(t models.Ticket) error {
	res, err := r.db().Exec(`
		UPDATE tickets
		SET title = ?, image = ?, origin = ?, destination = ?, departure_at = ?, price = ?
		WHERE id = ?
	`, t.Title, t.Image, t.Origin, t.Destination, nullableTime(t.DepartureAt), t.Price, t.ID)
	if err != nil {
		return err
	}
	_, err = res.RowsAffected()
	return err
}

func (r TicketRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM tickets WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NotFoundError{Resource: "ticket"}
	}
	return nil
}

func (r TicketRepository) ListByVendor(email string) ([]models.Ticket, error) {
	return r.list(`SELECT `+ticketColumns+` FROM tickets WHERE vendor_email = ? ORDER BY created_at DESC`, email)
}

// ListLatestApproved returns the newest approved tickets for public discovery.
func (r TicketRepository) ListLatestApproved(limit int) ([]models.Ticket, error) {
	return r.list(`SELECT `+ticketColumns+` FROM tickets WHERE status = ? ORDER BY created_at DESC LIMIT ?`,
		models.TicketStatusApproved, limit)
}

func (r TicketRepository) ListAll() ([]models.Ticket, error) {
	return r.list(`SELECT ` + ticketColumns + ` FROM tickets ORDER BY created_at DESC`)
}

func (r TicketRepository) ListApproved() ([]models.Ticket, error) {
	return r.list(`SELECT `+ticketColumns+` FROM tickets WHERE status = ? ORDER BY created_at DESC`,
		models.TicketStatusApproved)
}

func (r TicketRepository) list(query string, args ...any) ([]models.Ticket, error) {
	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]models.Ticket, 0)
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

// SetStatus moves a ticket to approved/rejected and stamps the matching
// timestamp column.
func (r TicketRepository) SetStatus(id int64, status string) error {
	var stamp string
	switch status {
	case models.TicketStatusApproved:
		stamp = "approved_at"
	case models.TicketStatusRejected:
		stamp = "rejected_at"
	default:
		return domain.ValidationError{Field: "status", Msg: "unsupported status " + status}
	}
	res, err := r.db().Exec(`UPDATE tickets SET status = ?, `+stamp+` = NOW() WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NotFoundError{Resource: "ticket"}
	}
	return nil
}

// AdvertiseOn sets the flag only while fewer than limit tickets are
// advertised. The count lives in a derived table so the conditional update is
// a single atomic statement; no check-then-set window.
func (r TicketRepository) AdvertiseOn(id int64, limit int) (bool, error) {
	res, err := r.db().Exec(`
		UPDATE tickets
		SET advertised = 1
		WHERE id = ?
		  AND advertised = 0
		  AND ? > (SELECT c FROM (SELECT COUNT(*) AS c FROM tickets WHERE advertised = 1) AS adv)
	`, id, limit)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r TicketRepository) AdvertiseOff(id int64) error {
	_, err := r.db().Exec(`UPDATE tickets SET advertised = 0 WHERE id = ?`, id)
	return err
}

// DecrementQuantity reserves inventory for a booking. The quantity guard in
// the WHERE clause is what keeps quantity from ever going negative under
// concurrent bookings.
func (r TicketRepository) DecrementQuantity(ex Execer, id int64, qty int) (bool, error) {
	res, err := ex.Exec(`UPDATE tickets SET quantity = quantity - ? WHERE id = ? AND quantity >= ?`, qty, id, qty)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// RestoreQuantity returns previously reserved inventory to the ticket.
func (r TicketRepository) RestoreQuantity(ex Execer, id int64, qty int) error {
	_, err := ex.Exec(`UPDATE tickets SET quantity = quantity + ? WHERE id = ?`, qty, id)
	return err
}

// HideAllByVendor is the fraud cascade: one bulk update moving every listing
// owned by the vendor to hidden.
func (r TicketRepository) HideAllByVendor(ex Execer, vendorEmail string) error {
	_, err := ex.Exec(`UPDATE tickets SET status = ?, hidden = 1 WHERE vendor_email = ?`,
		models.TicketStatusHidden, vendorEmail)
	return err
}
