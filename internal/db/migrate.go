package db

import (
	"database/sql"
	"log"
)

// Migrate creates the schema when missing. Statements are idempotent so the
// server can run them on every start.
func Migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS trains (
			train_no BIGINT PRIMARY KEY,
			start_city VARCHAR(100) NOT NULL,
			end_city VARCHAR(100) NOT NULL,
			start_time VARCHAR(20) NOT NULL DEFAULT '',
			total_seats INT NOT NULL,
			available_seats INT NOT NULL,
			fare BIGINT NOT NULL DEFAULT 0,
			CONSTRAINT chk_available CHECK (available_seats >= 0 AND available_seats <= total_seats)
		)`,
		`CREATE TABLE IF NOT EXISTS waitlist (
			train_no BIGINT PRIMARY KEY,
			waiting_count INT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS bookings (
			pnr BIGINT PRIMARY KEY,
			train_no BIGINT NOT NULL,
			holder VARCHAR(100) NOT NULL,
			status VARCHAR(30) NOT NULL,
			waitlist_start INT NULL,
			waitlist_end INT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			KEY idx_bookings_train_wl (train_no, waitlist_start)
		)`,
		`CREATE TABLE IF NOT EXISTS passengers (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			pnr BIGINT NOT NULL,
			name VARCHAR(100) NOT NULL,
			age INT NOT NULL,
			gender VARCHAR(20) NOT NULL DEFAULT '',
			status VARCHAR(30) NOT NULL,
			KEY idx_passengers_pnr (pnr)
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(100) NOT NULL DEFAULT '',
			username VARCHAR(100) NOT NULL UNIQUE,
			email VARCHAR(190) NOT NULL UNIQUE,
			phone VARCHAR(30) NOT NULL DEFAULT '',
			password_hash VARCHAR(100) NOT NULL,
			role VARCHAR(30) NOT NULL DEFAULT 'passenger',
			status VARCHAR(30) NOT NULL DEFAULT 'active'
		)`,
		`CREATE TABLE IF NOT EXISTS wallets (
			account_id VARCHAR(100) PRIMARY KEY,
			balance BIGINT NOT NULL DEFAULT 0
		)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Seed inserts a few demo trains and wallets for local development.
func Seed(db *sql.DB) {
	seeds := []string{
		`INSERT IGNORE INTO trains (train_no, start_city, end_city, start_time, total_seats, available_seats, fare)
			VALUES (12001, 'Chennai', 'Bengaluru', '06:00', 120, 120, 750)`,
		`INSERT IGNORE INTO trains (train_no, start_city, end_city, start_time, total_seats, available_seats, fare)
			VALUES (12657, 'Bengaluru', 'Chennai', '22:40', 96, 96, 620)`,
		`INSERT IGNORE INTO wallets (account_id, balance) VALUES ('demo@upi', 100000)`,
	}
	for _, stmt := range seeds {
		if _, err := db.Exec(stmt); err != nil {
			log.Printf("seed warning: %v", err)
		}
	}
}
