package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lanlyastar/reservation-backend/internal/models"
)

// ClerkRepository handles database operations for the clerks table
type ClerkRepository struct {
	db DB
}

// NewClerkRepository creates a new ClerkRepository
func NewClerkRepository(db DB) *ClerkRepository {
	return &ClerkRepository{db: db}
}

// EnsureSchema creates the clerks table if it does not exist.
func (r *ClerkRepository) EnsureSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS clerks (
			id UUID PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			full_name TEXT NOT NULL DEFAULT '',
			role TEXT NOT NULL DEFAULT 'clerk',
			status TEXT NOT NULL DEFAULT 'active',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := r.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create clerks table: %w", err)
	}
	return nil
}

// Create inserts a new clerk account
func (r *ClerkRepository) Create(clerk *models.Clerk) error {
	if clerk.ID == uuid.Nil {
		clerk.ID = uuid.New()
	}
	if clerk.Role == "" {
		clerk.Role = "clerk"
	}
	if clerk.Status == "" {
		clerk.Status = models.ClerkStatusActive
	}

	query := `
		INSERT INTO clerks (id, username, password_hash, full_name, role, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(
		query,
		clerk.ID, clerk.Username, clerk.PasswordHash, clerk.FullName, clerk.Role, clerk.Status,
	).Scan(&clerk.CreatedAt, &clerk.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create clerk: %w", err)
	}

	return nil
}

// GetByUsername retrieves a clerk by username
func (r *ClerkRepository) GetByUsername(username string) (*models.Clerk, error) {
	query := `
		SELECT id, username, password_hash, full_name, role, status, created_at, updated_at
		FROM clerks
		WHERE username = $1
	`

	var clerk models.Clerk
	err := r.db.Get(&clerk, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("clerk not found: %s", username)
		}
		return nil, fmt.Errorf("failed to fetch clerk: %w", err)
	}

	return &clerk, nil
}

// Count returns the number of clerk accounts
func (r *ClerkRepository) Count() (int, error) {
	var count int
	if err := r.db.Get(&count, `SELECT COUNT(*) FROM clerks`); err != nil {
		return 0, fmt.Errorf("failed to count clerks: %w", err)
	}
	return count, nil
}
