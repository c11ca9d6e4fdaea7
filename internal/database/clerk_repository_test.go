package database

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lanlyastar/reservation-backend/internal/models"
)

func TestCreateClerk(t *testing.T) {
	mockDB, mock := newMockDB(t)
	repo := NewClerkRepository(mockDB)

	t.Run("Success", func(t *testing.T) {
		now := time.Now()

		mock.ExpectQuery(`INSERT INTO clerks`).
			WithArgs(sqlmock.AnyArg(), "frontdesk1", sqlmock.AnyArg(), "Night Shift", "clerk", models.ClerkStatusActive).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		clerk := &models.Clerk{
			Username:     "frontdesk1",
			PasswordHash: "$2a$12$hash",
			FullName:     "Night Shift",
		}
		err := repo.Create(clerk)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, clerk.ID)
		assert.Equal(t, "clerk", clerk.Role)
		assert.Equal(t, models.ClerkStatusActive, clerk.Status)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Duplicate Username", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO clerks`).
			WithArgs(sqlmock.AnyArg(), "frontdesk1", sqlmock.AnyArg(), "", "clerk", models.ClerkStatusActive).
			WillReturnError(fmt.Errorf("duplicate key value violates unique constraint"))

		err := repo.Create(&models.Clerk{Username: "frontdesk1", PasswordHash: "x"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create clerk")

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetClerkByUsername(t *testing.T) {
	mockDB, mock := newMockDB(t)
	repo := NewClerkRepository(mockDB)

	t.Run("Success", func(t *testing.T) {
		clerkID := uuid.New()
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM clerks WHERE username`).
			WithArgs("frontdesk1").
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "username", "password_hash", "full_name", "role", "status", "created_at", "updated_at",
			}).AddRow(clerkID, "frontdesk1", "$2a$12$hash", "Night Shift", "clerk", "active", now, now))

		clerk, err := repo.GetByUsername("frontdesk1")
		require.NoError(t, err)
		assert.Equal(t, clerkID, clerk.ID)
		assert.Equal(t, "frontdesk1", clerk.Username)
		assert.True(t, clerk.IsActive())

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM clerks WHERE username`).
			WithArgs("ghost").
			WillReturnError(sql.ErrNoRows)

		clerk, err := repo.GetByUsername("ghost")
		assert.Error(t, err)
		assert.Nil(t, clerk)
		assert.Contains(t, err.Error(), "clerk not found")

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCountClerks(t *testing.T) {
	mockDB, mock := newMockDB(t)
	repo := NewClerkRepository(mockDB)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM clerks`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	assert.NoError(t, mock.ExpectationsWereMet())
}
