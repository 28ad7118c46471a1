package database

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/lib/pq" // PostgreSQL driver
)

var DB *sql.DB

const schema = `
CREATE TABLE IF NOT EXISTS clients (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	phone TEXT,
	email TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS facilities (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	type TEXT NOT NULL,
	capacity INTEGER
);

CREATE TABLE IF NOT EXISTS memberships (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	duration INTEGER NOT NULL,
	price NUMERIC(10,2) NOT NULL,
	description TEXT,
	facility_id BIGINT
);

CREATE TABLE IF NOT EXISTS payments (
	id BIGSERIAL PRIMARY KEY,
	client_id BIGINT NOT NULL,
	membership_id BIGINT NOT NULL,
	amount NUMERIC(10,2) NOT NULL,
	payment_date TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS bookings (
	id BIGSERIAL PRIMARY KEY,
	client_id BIGINT NOT NULL,
	facility_id BIGINT NOT NULL,
	start_time TIMESTAMPTZ NOT NULL,
	end_time TIMESTAMPTZ NOT NULL,
	status TEXT NOT NULL DEFAULT 'pending'
);

CREATE INDEX IF NOT EXISTS idx_bookings_facility_time ON bookings (facility_id, start_time, end_time);

CREATE TABLE IF NOT EXISTS schedule_entries (
	id BIGSERIAL PRIMARY KEY,
	client_id BIGINT,
	facility_id BIGINT NOT NULL,
	date TEXT NOT NULL,
	start_time TEXT NOT NULL,
	end_time TEXT NOT NULL,
	activity_name TEXT NOT NULL,
	trainer TEXT
);

CREATE INDEX IF NOT EXISTS idx_schedule_facility_date ON schedule_entries (facility_id, date);
`

// Deliberately no foreign key constraints on bookings/payments: deleting a
// client or facility leaves historical rows dangling, matching the tolerance
// the rest of the system has for orphaned references.

// InitDB initializes the database connection, applies the schema and seeds
// the default facilities on first startup.
func InitDB(host, port, user, password, dbname, sslmode string) {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)

	var err error
	DB, err = sql.Open("postgres", connStr)
	if err != nil {
		log.Fatalf("Error opening database: %q", err)
	}

	if err = DB.Ping(); err != nil {
		log.Fatalf("Error connecting to database: %q", err)
	}

	if err = applySchema(DB); err != nil {
		log.Fatalf("Error applying database schema: %q", err)
	}
	if err = seedDefaultFacilities(DB); err != nil {
		log.Fatalf("Error seeding default facilities: %q", err)
	}
}

func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("could not execute schema script: %w", err)
	}
	return nil
}

// seedDefaultFacilities inserts the three default facilities when the table
// is empty, so a fresh installation is bookable out of the box.
func seedDefaultFacilities(db *sql.DB) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM facilities`).Scan(&count); err != nil {
		return fmt.Errorf("could not count facilities: %w", err)
	}
	if count > 0 {
		return nil
	}

	defaults := []struct {
		name     string
		kind     string
		capacity int
	}{
		{"Main Gym", "gym", 50},
		{"Swimming Pool", "pool", 30},
		{"Yoga Room", "yoga", 20},
	}
	for _, f := range defaults {
		if _, err := db.Exec(`INSERT INTO facilities (name, type, capacity) VALUES ($1, $2, $3)`,
			f.name, f.kind, f.capacity); err != nil {
			return fmt.Errorf("could not insert default facility %q: %w", f.name, err)
		}
	}
	return nil
}

// GetDB returns the database connection pool.
func GetDB() *sql.DB {
	return DB
}
