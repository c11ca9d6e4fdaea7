package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lanlyastar/reservation-backend/internal/models"
)

// ErrNoRoomsAvailable indicates the inventory for a room type is exhausted
var ErrNoRoomsAvailable = errors.New("no rooms available for this type")

// InventoryRepository handles database operations for the room_inventory
// table. The table is reseeded at startup so inventory never survives a run.
type InventoryRepository struct {
	db DB
}

// NewInventoryRepository creates a new InventoryRepository
func NewInventoryRepository(db DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// RoomAvailability is one row of the inventory table
type RoomAvailability struct {
	RoomType  string `json:"room_type" db:"room_type"`
	Available int    `json:"available" db:"available"`
}

// Reset creates the inventory table if needed and reseeds it from the
// catalog's opening counts, discarding whatever a previous run left behind.
func (r *InventoryRepository) Reset() error {
	schema := `
		CREATE TABLE IF NOT EXISTS room_inventory (
			room_type TEXT PRIMARY KEY,
			available INTEGER NOT NULL CHECK (available >= 0)
		)
	`
	if _, err := r.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create inventory table: %w", err)
	}

	if _, err := r.db.Exec(`TRUNCATE room_inventory`); err != nil {
		return fmt.Errorf("failed to clear inventory: %w", err)
	}

	for _, rt := range models.Catalog() {
		_, err := r.db.Exec(
			`INSERT INTO room_inventory (room_type, available) VALUES ($1, $2)`,
			rt.Name, rt.SeedCount,
		)
		if err != nil {
			return fmt.Errorf("failed to seed inventory for %s: %w", rt.Name, err)
		}
	}

	return nil
}

// CountAvailable returns the remaining count for a room type.
func (r *InventoryRepository) CountAvailable(roomType models.RoomTypeID) (int, error) {
	rt, err := models.RoomTypeByID(roomType)
	if err != nil {
		return 0, err
	}

	var available int
	err = r.db.Get(&available, `SELECT available FROM room_inventory WHERE room_type = $1`, rt.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("inventory row missing for %s", rt.Name)
		}
		return 0, fmt.Errorf("failed to read inventory: %w", err)
	}

	return available, nil
}

// ListAvailability returns all inventory rows in catalog order.
func (r *InventoryRepository) ListAvailability() ([]RoomAvailability, error) {
	var rows []RoomAvailability
	err := r.db.Select(&rows, `SELECT room_type, available FROM room_inventory`)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}

	// return in catalog order regardless of table order
	byName := make(map[string]int, len(rows))
	for _, row := range rows {
		byName[row.RoomType] = row.Available
	}
	ordered := make([]RoomAvailability, 0, len(models.Catalog()))
	for _, rt := range models.Catalog() {
		ordered = append(ordered, RoomAvailability{RoomType: rt.Name, Available: byName[rt.Name]})
	}
	return ordered, nil
}

// AvailableForUpdateTx reads the remaining count for a room type inside a
// transaction, locking the row until commit or rollback.
func (r *InventoryRepository) AvailableForUpdateTx(tx *sqlx.Tx, roomType models.RoomTypeID) (int, error) {
	rt, err := models.RoomTypeByID(roomType)
	if err != nil {
		return 0, err
	}

	var available int
	err = tx.Get(&available, `SELECT available FROM room_inventory WHERE room_type = $1 FOR UPDATE`, rt.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("inventory row missing for %s", rt.Name)
		}
		return 0, fmt.Errorf("failed to read inventory: %w", err)
	}

	return available, nil
}

// DecrementTx takes one unit of a room type inside a transaction. The
// compare-and-decrement guard keeps the count from going negative even under
// concurrent bookings.
func (r *InventoryRepository) DecrementTx(tx *sqlx.Tx, roomType models.RoomTypeID) error {
	rt, err := models.RoomTypeByID(roomType)
	if err != nil {
		return err
	}

	result, err := tx.Exec(
		`UPDATE room_inventory SET available = available - 1 WHERE room_type = $1 AND available > 0`,
		rt.Name,
	)
	if err != nil {
		return fmt.Errorf("failed to decrement inventory for %s: %w", rt.Name, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read decrement result: %w", err)
	}
	if affected == 0 {
		return ErrNoRoomsAvailable
	}

	return nil
}
