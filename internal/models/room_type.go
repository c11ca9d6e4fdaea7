package models

import (
	"errors"
	"fmt"
)

// RoomTypeID identifies a catalog room type. The numeric order is the
// catalog's ascending-capacity preference order: allocation and suggestion
// scan types in this order and take the first fit.
type RoomTypeID int

const (
	RoomStandard RoomTypeID = iota
	RoomDeluxe
	RoomQuadruple
	RoomFamily
	RoomSuite
)

// ErrUnknownRoomType indicates a name that is not in the catalog
var ErrUnknownRoomType = errors.New("unknown room type")

// RoomType is an immutable catalog entry. LocalRates and IntlRates are
// indexed by Season (LEAN, HIGH, PEAK, SUPER_PEAK).
type RoomType struct {
	ID                RoomTypeID  `json:"-"`
	Name              string      `json:"name"`
	Capacity          int         `json:"capacity"`
	ExtraBedsAllowed  int         `json:"extra_beds_allowed"`
	LocalRates        [4]Centavos `json:"-"`
	IntlRates         [4]Centavos `json:"-"`
	Description       string      `json:"description"`
	IncludedAmenities []string    `json:"included_amenities"`
	BaseNumber        int         `json:"-"` // room numbering base, floor = BaseNumber/100
	SeedCount         int         `json:"-"` // opening inventory per run
}

// roomCatalog is the fixed room catalog. Order matters.
var roomCatalog = []RoomType{
	{
		ID: RoomStandard, Name: "Standard", Capacity: 1, ExtraBedsAllowed: 1,
		LocalRates:        [4]Centavos{PHP(2000), PHP(4000), PHP(6000), PHP(9000)},
		IntlRates:         [4]Centavos{PHP(2500), PHP(4500), PHP(6500), PHP(10000)},
		Description:       "Cozy single room with queen bed. Ideal for solo travelers.",
		IncludedAmenities: []string{"Free Wi-Fi", "Complimentary water", "Basic toiletries"},
		BaseNumber:        100, SeedCount: 5,
	},
	{
		ID: RoomDeluxe, Name: "Deluxe", Capacity: 2, ExtraBedsAllowed: 1,
		LocalRates:        [4]Centavos{PHP(3000), PHP(5000), PHP(8000), PHP(12000)},
		IntlRates:         [4]Centavos{PHP(5000), PHP(7000), PHP(9000), PHP(13000)},
		Description:       "Spacious room with king bed or two singles. Great for couples.",
		IncludedAmenities: []string{"Free Wi-Fi", "Mini-fridge", "Breakfast voucher"},
		BaseNumber:        200, SeedCount: 4,
	},
	{
		ID: RoomQuadruple, Name: "Quadruple", Capacity: 4, ExtraBedsAllowed: 1,
		LocalRates:        [4]Centavos{PHP(4000), PHP(7000), PHP(10000), PHP(15000)},
		IntlRates:         [4]Centavos{PHP(7500), PHP(9500), PHP(11500), PHP(16000)},
		Description:       "Four-bed room. Good for groups of friends.",
		IncludedAmenities: []string{"Free Wi-Fi", "Shared lounge access", "Extra storage"},
		BaseNumber:        300, SeedCount: 5,
	},
	{
		ID: RoomFamily, Name: "Family", Capacity: 6, ExtraBedsAllowed: 1,
		LocalRates:        [4]Centavos{PHP(5000), PHP(9000), PHP(12000), PHP(18000)},
		IntlRates:         [4]Centavos{PHP(10000), PHP(12000), PHP(14000), PHP(19000)},
		Description:       "Large family room with flexible bed setup and play area.",
		IncludedAmenities: []string{"Free Wi-Fi", "Family dining set", "Kids amenities"},
		BaseNumber:        400, SeedCount: 3,
	},
	{
		ID: RoomSuite, Name: "Suite", Capacity: 4, ExtraBedsAllowed: 1,
		LocalRates:        [4]Centavos{PHP(6000), PHP(11000), PHP(14000), PHP(21000)},
		IntlRates:         [4]Centavos{PHP(12500), PHP(14500), PHP(16500), PHP(22000)},
		Description:       "Executive suite with separate living area and premium services.",
		IncludedAmenities: []string{"Free Wi-Fi", "Mini-bar", "Welcome fruit basket", "Priority check-in"},
		BaseNumber:        500, SeedCount: 2,
	},
}

// Catalog returns the room catalog in preference order. Callers must not
// modify the returned entries.
func Catalog() []RoomType {
	return roomCatalog
}

// RoomTypeByID looks up a catalog entry by identifier.
func RoomTypeByID(id RoomTypeID) (RoomType, error) {
	if int(id) < 0 || int(id) >= len(roomCatalog) {
		return RoomType{}, fmt.Errorf("%w: id %d", ErrUnknownRoomType, id)
	}
	return roomCatalog[id], nil
}

// RoomTypeByName looks up a catalog entry by its canonical name.
func RoomTypeByName(name string) (RoomType, error) {
	for _, rt := range roomCatalog {
		if rt.Name == name {
			return rt, nil
		}
	}
	return RoomType{}, fmt.Errorf("%w: %q", ErrUnknownRoomType, name)
}

// PriceFor returns the nightly rate for the given season and market.
func (rt RoomType) PriceFor(season Season, market Market) Centavos {
	if market == MarketInternational {
		return rt.IntlRates[season]
	}
	return rt.LocalRates[season]
}

// InstanceLabel returns the deterministic label of the Nth available instance
// (1-indexed) of this type, e.g. "Room 203 (Floor 2)".
func (rt RoomType) InstanceLabel(n int) string {
	return fmt.Sprintf("Room %d (Floor %d)", rt.BaseNumber+n, rt.BaseNumber/100)
}
