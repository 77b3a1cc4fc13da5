package cinder

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/ssc-cloud/ssc-billing-logger/pkg/models"
)

// Store reads volume rows from the Cinder database.
type Store interface {
	// DeletedSince returns volumes with deleted = 1 and deleted_at newer than
	// the cutoff. Row order is whatever the query planner returns; callers
	// must not rely on it.
	DeletedSince(ctx context.Context, cutoff time.Time) ([]models.DeletedVolume, error)
	// Ping verifies the database connection.
	Ping(ctx context.Context) error
	// Close releases the connection.
	Close() error
}

// SQLStore implements Store over a database/sql connection.
type SQLStore struct {
	db *sql.DB
}

// Open connects to the Cinder MySQL database with the given DSN.
func Open(dsn string) (*SQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open cinder db: %w", err)
	}
	return &SQLStore{db: db}, nil
}

// NewWithDB wraps an existing connection. Tests use this to run the store
// against an embedded database.
func NewWithDB(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// DeletedSince returns volumes deleted after the cutoff. The comparison with
// deleted_at excludes NULL rows, and the window arithmetic stays in Go so the
// statement runs unchanged on MySQL and on the embedded test database.
func (s *SQLStore) DeletedSince(ctx context.Context, cutoff time.Time) ([]models.DeletedVolume, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, deleted_at FROM volumes WHERE deleted = 1 AND deleted_at > ?`,
		cutoff,
	)
	if err != nil {
		return nil, fmt.Errorf("query deleted volumes: %w", err)
	}
	defer rows.Close()

	var vols []models.DeletedVolume
	for rows.Next() {
		var v models.DeletedVolume
		if err := rows.Scan(&v.ID, &v.DeletedAt); err != nil {
			return nil, fmt.Errorf("scan volume row: %w", err)
		}
		vols = append(vols, v)
	}
	return vols, rows.Err()
}

// Ping verifies the database connection.
func (s *SQLStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping cinder db: %w", err)
	}
	return nil
}

// Close releases the database connection.
func (s *SQLStore) Close() error {
	return s.db.Close()
}
