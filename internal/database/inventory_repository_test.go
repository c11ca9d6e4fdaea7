package database

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lanlyastar/reservation-backend/internal/models"
)

func newMockDB(t *testing.T) (*mockDatabase, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &mockDatabase{db: sqlx.NewDb(db, "sqlmock")}, mock
}

func TestInventoryReset(t *testing.T) {
	mockDB, mock := newMockDB(t)
	repo := NewInventoryRepository(mockDB)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS room_inventory`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`TRUNCATE room_inventory`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	seeds := []struct {
		name  string
		count int
	}{
		{"Standard", 5}, {"Deluxe", 4}, {"Quadruple", 5}, {"Family", 3}, {"Suite", 2},
	}
	for _, s := range seeds {
		mock.ExpectExec(`INSERT INTO room_inventory`).
			WithArgs(s.name, s.count).
			WillReturnResult(sqlmock.NewResult(1, 1))
	}

	err := repo.Reset()
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountAvailable(t *testing.T) {
	mockDB, mock := newMockDB(t)
	repo := NewInventoryRepository(mockDB)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`SELECT available FROM room_inventory WHERE room_type`).
			WithArgs("Deluxe").
			WillReturnRows(sqlmock.NewRows([]string{"available"}).AddRow(4))

		available, err := repo.CountAvailable(models.RoomDeluxe)
		require.NoError(t, err)
		assert.Equal(t, 4, available)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing Row", func(t *testing.T) {
		mock.ExpectQuery(`SELECT available FROM room_inventory WHERE room_type`).
			WithArgs("Suite").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.CountAvailable(models.RoomSuite)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "inventory row missing")

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestListAvailability(t *testing.T) {
	mockDB, mock := newMockDB(t)
	repo := NewInventoryRepository(mockDB)

	// rows deliberately out of catalog order
	mock.ExpectQuery(`SELECT room_type, available FROM room_inventory`).
		WillReturnRows(sqlmock.NewRows([]string{"room_type", "available"}).
			AddRow("Suite", 2).
			AddRow("Standard", 5).
			AddRow("Quadruple", 5).
			AddRow("Deluxe", 4).
			AddRow("Family", 3))

	rows, err := repo.ListAvailability()
	require.NoError(t, err)
	require.Len(t, rows, 5)

	assert.Equal(t, "Standard", rows[0].RoomType)
	assert.Equal(t, 5, rows[0].Available)
	assert.Equal(t, "Suite", rows[4].RoomType)
	assert.Equal(t, 2, rows[4].Available)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDecrementTx(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockDB, mock := newMockDB(t)
		repo := NewInventoryRepository(mockDB)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE room_inventory SET available = available - 1`).
			WithArgs("Family").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		tx, err := mockDB.Beginx()
		require.NoError(t, err)

		err = repo.DecrementTx(tx, models.RoomFamily)
		require.NoError(t, err)
		require.NoError(t, tx.Commit())

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Exhausted", func(t *testing.T) {
		mockDB, mock := newMockDB(t)
		repo := NewInventoryRepository(mockDB)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE room_inventory SET available = available - 1`).
			WithArgs("Suite").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		tx, err := mockDB.Beginx()
		require.NoError(t, err)

		err = repo.DecrementTx(tx, models.RoomSuite)
		assert.ErrorIs(t, err, ErrNoRoomsAvailable)
		require.NoError(t, tx.Rollback())

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		mockDB, mock := newMockDB(t)
		repo := NewInventoryRepository(mockDB)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE room_inventory SET available = available - 1`).
			WithArgs("Deluxe").
			WillReturnError(fmt.Errorf("database error"))
		mock.ExpectRollback()

		tx, err := mockDB.Beginx()
		require.NoError(t, err)

		err = repo.DecrementTx(tx, models.RoomDeluxe)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decrement inventory")
		require.NoError(t, tx.Rollback())

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

// mockDatabase adapts a sqlmock-backed sqlx.DB to the DB interface
type mockDatabase struct {
	db *sqlx.DB
}

func (m *mockDatabase) Get(dest interface{}, query string, args ...interface{}) error {
	return m.db.Get(dest, query, args...)
}

func (m *mockDatabase) Select(dest interface{}, query string, args ...interface{}) error {
	return m.db.Select(dest, query, args...)
}

func (m *mockDatabase) Exec(query string, args ...interface{}) (sql.Result, error) {
	return m.db.Exec(query, args...)
}

func (m *mockDatabase) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return m.db.Query(query, args...)
}

func (m *mockDatabase) QueryRow(query string, args ...interface{}) *sql.Row {
	return m.db.QueryRow(query, args...)
}

func (m *mockDatabase) Beginx() (*sqlx.Tx, error) {
	return m.db.Beginx()
}

func (m *mockDatabase) Ping() error {
	return m.db.Ping()
}

func (m *mockDatabase) Close() error {
	return m.db.Close()
}
