package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"inquiry-service/internal/models"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Sentinel errors for the inquiry lifecycle. Callers match them with
// errors.Is; the API layer maps them onto HTTP status codes.
var (
	ErrNotFound      = errors.New("inquiry not found")
	ErrInvalidStatus = errors.New("invalid status")
	ErrValidation    = errors.New("validation failed")
)

const schema = `
CREATE TABLE IF NOT EXISTS inquiries (
	id BIGSERIAL PRIMARY KEY,
	car_id BIGINT NOT NULL,
	buyer_id BIGINT NOT NULL,
	seller_id BIGINT NOT NULL,
	message TEXT NOT NULL,
	preferred_time TIMESTAMP,
	contact_phone VARCHAR(32) NOT NULL DEFAULT '',
	status VARCHAR(16) NOT NULL DEFAULT 'new',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_inquiries_buyer ON inquiries (buyer_id, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_inquiries_seller ON inquiries (seller_id, created_at DESC);
CREATE TABLE IF NOT EXISTS processed_events (
	event_id VARCHAR(64) PRIMARY KEY,
	event_type VARCHAR(64) NOT NULL,
	processed_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

type Store struct {
	db *sqlx.DB
}

// NewStore connects to the database, retrying because the service
// usually starts alongside the database container.
func NewStore(databaseURL string, attempts int, delay time.Duration) (*Store, error) {
	if attempts < 1 {
		attempts = 1
	}

	var db *sqlx.DB
	var err error
	for i := 1; i <= attempts; i++ {
		db, err = sqlx.Connect("postgres", databaseURL)
		if err == nil {
			break
		}
		log.Printf("postgres connect attempt %d/%d failed: %v", i, attempts, err)
		if i < attempts {
			time.Sleep(delay)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", attempts, err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &Store{db: db}, nil
}

// Migrate creates the tables this service owns. The cars and users
// tables belong to the dealership app and are never created here.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// Ping checks database liveness for the readiness probe.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// GetCarByID resolves a catalog listing. Used at creation time to
// resolve the addressed seller and to verify the car exists.
func (s *Store) GetCarByID(ctx context.Context, id int64) (*models.Car, error) {
	var car models.Car
	err := s.db.GetContext(ctx, &car,
		"SELECT id, seller_id, brand, model, year, COALESCE(vin, '') AS vin FROM cars WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: car %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &car, nil
}

// FindAdminID returns the id of the first administrator, or 0 if none
// exists. Used as the seller fallback for listings with no seller.
func (s *Store) FindAdminID(ctx context.Context) (int64, error) {
	var id int64
	err := s.db.GetContext(ctx, &id,
		"SELECT id FROM users WHERE role = $1 ORDER BY id LIMIT 1", models.RoleAdmin)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

// IsEventProcessed checks if an event has already been handled
func (s *Store) IsEventProcessed(ctx context.Context, eventID string) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists,
		"SELECT EXISTS(SELECT 1 FROM processed_events WHERE event_id = $1)", eventID)
	return exists, err
}

// MarkEventProcessed records an event id for dedup
func (s *Store) MarkEventProcessed(ctx context.Context, eventID, eventType string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO processed_events (event_id, event_type) VALUES ($1, $2) ON CONFLICT (event_id) DO NOTHING",
		eventID, eventType)
	return err
}
