package repositories

import (
	"database/sql"
	"errors"
	"time"

	intconfig "github.com/mdrobiulislam1479/ticket-point-server/internal/config"
	"github.com/mdrobiulislam1479/ticket-point-server/internal/domain"
	"github.com/mdrobiulislam1479/ticket-point-server/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Upsert creates the account on first login or refreshes last_logged_in on a
// repeat login. Role, fraud flag and created_at are never touched for an
// existing row.
func (r UserRepository) Upsert(email, name string, now time.Time) error {
	if email == "" {
		return domain.ValidationError{Field: "email", Msg: "email is required"}
	}
	_, err := r.db().Exec(`
		INSERT INTO users (email, name, role, is_fraud, created_at, last_logged_in)
		VALUES (?, ?, ?, 0, ?, ?)
		ON DUPLICATE KEY UPDATE last_logged_in = VALUES(last_logged_in)
	`, email, name, models.RoleUser, now, now)
	return err
}

func (r UserRepository) GetByEmail(email string) (models.User, error) {
	var u models.User
	err := r.db().QueryRow(`
		SELECT id, email, name, role, is_fraud, created_at, last_logged_in
		FROM users
		WHERE email = ?
		LIMIT 1
	`, email).Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.IsFraud, &u.CreatedAt, &u.LastLoggedIn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, domain.NotFoundError{Resource: "user", Err: err}
		}
		return models.User{}, err
	}
	return u, nil
}

func (r UserRepository) List() ([]models.User, error) {
	rows, err := r.db().Query(`
		SELECT id, email, name, role, is_fraud, created_at, last_logged_in
		FROM users
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.IsFraud, &u.CreatedAt, &u.LastLoggedIn); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r UserRepository) UpdateRole(email, role string) error {
	res, err := r.db().Exec(`UPDATE users SET role = ? WHERE email = ?`, role, email)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// rows==0 can also mean the role already matched; treat a missing
		// account as the only failure worth reporting
		if _, err := r.GetByEmail(email); err != nil {
			return err
		}
	}
	return nil
}

// SetFraud flips the fraud flag. It takes an Execer so the ticket cascade can
// run in the same transaction.
func (r UserRepository) SetFraud(ex Execer, email string, fraud bool) error {
	res, err := ex.Exec(`UPDATE users SET is_fraud = ? WHERE email = ?`, fraud, email)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		var id int64
		if err := ex.QueryRow(`SELECT id FROM users WHERE email = ? LIMIT 1`, email).Scan(&id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.NotFoundError{Resource: "user", Err: err}
			}
			return err
		}
	}
	return nil
}
