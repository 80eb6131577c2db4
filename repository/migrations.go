package repository

import (
	"fmt"
	"log"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		name TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('user', 'admin')),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS stations (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		city TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS trains (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		source_station_id BIGINT NOT NULL REFERENCES stations(id),
		destination_station_id BIGINT NOT NULL REFERENCES stations(id),
		departure_time TIMESTAMPTZ NOT NULL,
		arrival_time TIMESTAMPTZ NOT NULL,
		total_seats INT NOT NULL CHECK (total_seats >= 1)
	)`,
	`CREATE TABLE IF NOT EXISTS train_seats (
		train_id BIGINT NOT NULL REFERENCES trains(id),
		travel_date DATE NOT NULL,
		available_seats INT NOT NULL,
		total_seats INT NOT NULL,
		PRIMARY KEY (train_id, travel_date),
		CHECK (available_seats >= 0 AND available_seats <= total_seats)
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id BIGSERIAL PRIMARY KEY,
		booking_ref TEXT NOT NULL UNIQUE,
		user_id BIGINT NOT NULL REFERENCES users(id),
		train_id BIGINT NOT NULL REFERENCES trains(id),
		travel_date DATE NOT NULL,
		num_seats INT NOT NULL CHECK (num_seats > 0),
		total_amount NUMERIC(12,2) NOT NULL,
		status TEXT NOT NULL CHECK (status IN ('confirmed', 'cancelled')),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_user_created
		ON bookings (user_id, created_at DESC)`,
}

// Migrate ensures all required tables exist
func Migrate(db *DB) error {
	log.Println("Checking database schema...")

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}

	log.Println("Database schema is up to date")
	return nil
}
