package db

import "database/sql"

// EnsureSchema creates the tables the service needs when they are missing.
// The unique index on transactions.session_id backs the one-payment-record-
// per-checkout-session guarantee even under concurrent reconciliation.
func EnsureSchema(conn *sql.DB) error {
	stmts := map[string]string{
		"users": `CREATE TABLE IF NOT EXISTS users (
			id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			email VARCHAR(255) NOT NULL,
			name VARCHAR(255) NOT NULL DEFAULT '',
			role VARCHAR(32) NOT NULL DEFAULT 'user',
			is_fraud TINYINT(1) NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL,
			last_logged_in DATETIME NOT NULL,
			UNIQUE KEY uq_users_email (email)
		)`,
		"tickets": `CREATE TABLE IF NOT EXISTS tickets (
			id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			image VARCHAR(1024) NOT NULL DEFAULT '',
			origin VARCHAR(255) NOT NULL DEFAULT '',
			destination VARCHAR(255) NOT NULL DEFAULT '',
			departure_at DATETIME NULL,
			price BIGINT NOT NULL DEFAULT 0,
			quantity INT NOT NULL DEFAULT 0,
			vendor_name VARCHAR(255) NOT NULL DEFAULT '',
			vendor_email VARCHAR(255) NOT NULL,
			status VARCHAR(32) NOT NULL DEFAULT 'pending',
			advertised TINYINT(1) NOT NULL DEFAULT 0,
			hidden TINYINT(1) NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL,
			approved_at DATETIME NULL,
			rejected_at DATETIME NULL,
			KEY idx_tickets_vendor_email (vendor_email),
			KEY idx_tickets_status_created (status, created_at)
		)`,
		"bookings": `CREATE TABLE IF NOT EXISTS bookings (
			id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			ticket_id BIGINT NOT NULL,
			title VARCHAR(255) NOT NULL,
			image VARCHAR(1024) NOT NULL DEFAULT '',
			origin VARCHAR(255) NOT NULL DEFAULT '',
			destination VARCHAR(255) NOT NULL DEFAULT '',
			departure_at DATETIME NULL,
			price BIGINT NOT NULL DEFAULT 0,
			vendor_email VARCHAR(255) NOT NULL,
			user_email VARCHAR(255) NOT NULL,
			user_name VARCHAR(255) NOT NULL DEFAULT '',
			quantity INT NOT NULL,
			status VARCHAR(32) NOT NULL DEFAULT 'pending',
			payment_status VARCHAR(32) NOT NULL DEFAULT 'unpaid',
			created_at DATETIME NOT NULL,
			paid_at DATETIME NULL,
			KEY idx_bookings_user_email (user_email),
			KEY idx_bookings_vendor_email (vendor_email)
		)`,
		"transactions": `CREATE TABLE IF NOT EXISTS transactions (
			id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			booking_id BIGINT NOT NULL,
			user_email VARCHAR(255) NOT NULL,
			vendor_email VARCHAR(255) NOT NULL,
			title VARCHAR(255) NOT NULL DEFAULT '',
			amount BIGINT NOT NULL,
			session_id VARCHAR(255) NOT NULL,
			transaction_id VARCHAR(255) NOT NULL DEFAULT '',
			status VARCHAR(32) NOT NULL DEFAULT 'paid',
			paid_at DATETIME NOT NULL,
			UNIQUE KEY uq_transactions_session (session_id),
			KEY idx_transactions_user_email (user_email)
		)`,
	}

	for table, stmt := range stmts {
		if HasTable(conn, table) {
			continue
		}
		if _, err := conn.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
