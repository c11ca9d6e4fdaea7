package models

import (
	"errors"
	"fmt"
)

// AmenityKind identifies a bookable add-on
type AmenityKind int

const (
	AmenityExtraBed AmenityKind = iota
	AmenityBlanket
	AmenityPillow
	AmenityToiletries
)

// AmenityKindCount is the number of add-on kinds in the catalog
const AmenityKindCount = 4

// ErrUnknownAmenity indicates an amenity name outside the catalog
var ErrUnknownAmenity = errors.New("unknown amenity")

var amenityNames = [AmenityKindCount]string{"Extra bed", "Blanket", "Pillow", "Toiletries"}

// amenityUnitPrices are flat per-person-per-day prices
var amenityUnitPrices = [AmenityKindCount]Centavos{PHP(650), PHP(250), PHP(100), PHP(200)}

// String returns the display name of the amenity kind.
func (k AmenityKind) String() string {
	if k < 0 || int(k) >= AmenityKindCount {
		return fmt.Sprintf("AmenityKind(%d)", int(k))
	}
	return amenityNames[k]
}

// UnitPrice returns the per-person-per-day price of the amenity kind.
func (k AmenityKind) UnitPrice() Centavos {
	return amenityUnitPrices[k]
}

// AmenityKindByName resolves a display name back to its kind.
func AmenityKindByName(name string) (AmenityKind, error) {
	for i, n := range amenityNames {
		if n == name {
			return AmenityKind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAmenity, name)
}

// AmenitySelection is one amenity request for one room: how many persons
// avail it, how many of them qualify for the PWD/senior discount, and for how
// many days.
type AmenitySelection struct {
	Kind    string `json:"kind" binding:"required"`
	Persons int    `json:"persons" binding:"min=0"`
	PWD     int    `json:"pwd" binding:"min=0"`
	Days    int    `json:"days" binding:"min=0"`
}

// Validate checks an amenity selection against the room capacity and the
// length of the stay.
func (a *AmenitySelection) Validate(roomCapacity, nights int) error {
	kind, err := AmenityKindByName(a.Kind)
	if err != nil {
		return err
	}
	_ = kind

	if a.Persons < 0 || a.Persons > roomCapacity {
		return fmt.Errorf("%s: persons must be between 0 and %d", a.Kind, roomCapacity)
	}
	if a.Persons == 0 {
		if a.PWD != 0 || a.Days != 0 {
			return fmt.Errorf("%s: pwd and days must be 0 when no persons avail", a.Kind)
		}
		return nil
	}
	if a.PWD < 0 || a.PWD > a.Persons {
		return fmt.Errorf("%s: pwd count must be between 0 and %d", a.Kind, a.Persons)
	}
	if a.Days < 1 || a.Days > nights {
		return fmt.Errorf("%s: days must be between 1 and %d", a.Kind, nights)
	}
	return nil
}
