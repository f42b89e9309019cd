package db

import (
	"database/sql"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS bookings (
		id SERIAL PRIMARY KEY,
		start_date DATE NOT NULL,
		start_time TEXT NOT NULL,
		end_date DATE NOT NULL,
		end_time TEXT NOT NULL,
		duration_minutes INTEGER NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS recurring_groups (
		id SERIAL PRIMARY KEY,
		weekdays TEXT NOT NULL,
		range_start DATE NOT NULL,
		range_end DATE NOT NULL,
		daily_start TEXT NOT NULL,
		daily_end TEXT NOT NULL,
		duration_minutes INTEGER NOT NULL,
		booking_ids TEXT NOT NULL DEFAULT '[]',
		created_at TIMESTAMP NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS schedules (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		weekdays TEXT NOT NULL,
		range_start DATE NOT NULL,
		range_end DATE NOT NULL,
		daily_start TEXT NOT NULL,
		daily_end TEXT NOT NULL,
		duration_minutes INTEGER NOT NULL,
		booking_ids TEXT NOT NULL DEFAULT '[]',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS operators (
		id SERIAL PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL
	)`,
}

// EnsureSchema creates the tables the stores need if they do not exist yet.
func EnsureSchema(db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("applying schema: %w", err)
		}
	}
	return nil
}
