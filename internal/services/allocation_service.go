package services

import (
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/lanlyastar/reservation-backend/internal/database"
	"github.com/lanlyastar/reservation-backend/internal/models"
)

var (
	// ErrNoViableCombination indicates no room type can seat the party in the
	// requested room count
	ErrNoViableCombination = errors.New("no room combination can accommodate the guests")

	// ErrNoFittingRoomType indicates one room's share of guests exceeds every
	// catalog capacity
	ErrNoFittingRoomType = errors.New("no room type fits the guests assigned to one room")

	// ErrInvalidInstancePick indicates the chosen instance position is out of
	// range for the current availability
	ErrInvalidInstancePick = errors.New("instance pick is out of range")
)

// AllocationService suggests room types for a party and binds chosen types to
// specific numbered rooms against the live inventory.
type AllocationService struct {
	inventory *database.InventoryRepository
	logger    *logrus.Logger
}

// NewAllocationService creates a new AllocationService
func NewAllocationService(inventory *database.InventoryRepository, logger *logrus.Logger) *AllocationService {
	return &AllocationService{inventory: inventory, logger: logger}
}

// EffectiveCounts applies the age rule: a child aged 12 or older occupies an
// adult slot for allocation and capacity. Every person is counted once; the
// amenity pricing class of such a child is unchanged.
func (s *AllocationService) EffectiveCounts(adults int, childAges []int) (effectiveAdults, effectiveChildren, totalGuests int) {
	effectiveAdults = adults
	for _, age := range childAges {
		if age >= 12 {
			effectiveAdults++
		} else {
			effectiveChildren++
		}
	}
	return effectiveAdults, effectiveChildren, adults + len(childAges)
}

// MinimumViableType scans the catalog in preference order and returns the
// first type whose capacity times numRooms seats the whole party.
func (s *AllocationService) MinimumViableType(totalGuests, numRooms int) (models.RoomType, error) {
	for _, rt := range models.Catalog() {
		if totalGuests <= numRooms*rt.Capacity {
			return rt, nil
		}
	}
	return models.RoomType{}, fmt.Errorf("%w: %d guests in %d room(s)", ErrNoViableCombination, totalGuests, numRooms)
}

// SuggestRooms distributes the party evenly across the rooms and picks the
// smallest-capacity type that fits each room's share. The first
// totalGuests%numRooms rooms take one extra guest. A share no type can seat
// is an explicit error, never a silent substitution.
func (s *AllocationService) SuggestRooms(totalGuests, numRooms int) ([]models.RoomType, error) {
	q := totalGuests / numRooms
	m := totalGuests % numRooms

	suggested := make([]models.RoomType, numRooms)
	for r := 0; r < numRooms; r++ {
		guests := q
		if r < m {
			guests++
		}

		found := false
		for _, rt := range models.Catalog() {
			if rt.Capacity >= guests {
				if !found || rt.Capacity < suggested[r].Capacity {
					suggested[r] = rt
					found = true
				}
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: %d guests", ErrNoFittingRoomType, guests)
		}
	}
	return suggested, nil
}

// BuildAllocationLines produces one informational line per room: each room
// takes up to maxAdultsPerRoom adults, then children fill the remaining beds,
// until both are exhausted. A party of only infants yields a single line.
// The narrative does not feed back into pricing.
func (s *AllocationService) BuildAllocationLines(adults, children, infants, bedsPerRoom, maxAdultsPerRoom int) []string {
	var lines []string
	for adults > 0 || children > 0 {
		adultsInRoom := adults
		if adultsInRoom > maxAdultsPerRoom {
			adultsInRoom = maxAdultsPerRoom
		}
		adults -= adultsInRoom

		space := bedsPerRoom - adultsInRoom
		childrenInRoom := children
		if childrenInRoom > space {
			childrenInRoom = space
		}
		if childrenInRoom < 0 {
			childrenInRoom = 0
		}
		children -= childrenInRoom

		lines = append(lines, fmt.Sprintf("Adults: %d, Children (need bed): %d", adultsInRoom, childrenInRoom))
	}
	if len(lines) == 0 && infants > 0 {
		lines = append(lines, "Adults: 0, Children (need bed): 0 (infants only)")
	}
	return lines
}

// AvailableInstances lists the deterministic labels of the currently
// available instances of a room type, in picking order.
func (s *AllocationService) AvailableInstances(roomType models.RoomTypeID) ([]string, error) {
	available, err := s.inventory.CountAvailable(roomType)
	if err != nil {
		return nil, err
	}

	rt, err := models.RoomTypeByID(roomType)
	if err != nil {
		return nil, err
	}

	labels := make([]string, available)
	for i := 0; i < available; i++ {
		labels[i] = rt.InstanceLabel(i + 1)
	}
	return labels, nil
}

// AssignInstanceTx binds one specific room instance inside a transaction:
// it locks the inventory row, validates the 1-based pick against the current
// availability, decrements the count and returns the instance label. The
// decrement becomes durable only when the caller commits.
func (s *AllocationService) AssignInstanceTx(tx *sqlx.Tx, roomType models.RoomTypeID, pick int) (string, error) {
	available, err := s.inventory.AvailableForUpdateTx(tx, roomType)
	if err != nil {
		return "", err
	}
	if available <= 0 {
		return "", database.ErrNoRoomsAvailable
	}
	if pick < 1 || pick > available {
		return "", fmt.Errorf("%w: pick %d of %d available", ErrInvalidInstancePick, pick, available)
	}

	rt, err := models.RoomTypeByID(roomType)
	if err != nil {
		return "", err
	}

	if err := s.inventory.DecrementTx(tx, roomType); err != nil {
		return "", err
	}

	label := rt.InstanceLabel(pick)
	s.logger.WithFields(logrus.Fields{
		"room_type": rt.Name,
		"instance":  label,
		"remaining": available - 1,
	}).Debug("Room instance assigned")

	return label, nil
}
