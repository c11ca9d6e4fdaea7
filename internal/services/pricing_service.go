package services

import (
	"fmt"

	"github.com/lanlyastar/reservation-backend/internal/models"
)

// pwdDiscountPct is the flat PWD/senior discount on amenity unit prices
const pwdDiscountPct = 20

// RoomBooking is one reserved room handed to the pricing engine
type RoomBooking struct {
	Type      models.RoomType
	Instance  string
	Amenities []models.AmenitySelection
}

// PricedAmenity is one amenity line after pricing
type PricedAmenity struct {
	Kind     models.AmenityKind
	Persons  int
	PWD      int
	Days     int
	Total    models.Centavos
	Discount models.Centavos
}

// PricedRoom is one room line after pricing
type PricedRoom struct {
	Type      models.RoomType
	Instance  string
	Nightly   models.Centavos
	StayTotal models.Centavos
	Amenities []PricedAmenity
}

// AmenityAggregateEntry is the per-kind roll-up across rooms. Days holds the
// maximum across rooms, so the derived subtotal is representative only.
type AmenityAggregateEntry struct {
	Kind    models.AmenityKind
	Persons int
	PWD     int
	Days    int
}

// Subtotal derives the representative aggregate amount shown in the summary.
func (a AmenityAggregateEntry) Subtotal() models.Centavos {
	days := a.Days
	if days < 1 {
		days = 1
	}
	return a.Kind.UnitPrice().Mul(int64(a.Persons)).Mul(int64(days))
}

// PricingResult is the full priced reservation
type PricingResult struct {
	Rooms           []PricedRoom
	RoomSubtotal    models.Centavos
	Aggregates      []AmenityAggregateEntry
	AmenitySubtotal models.Centavos
	AmenityDiscount models.Centavos
	AmenityFinal    models.Centavos
	GrandTotal      models.Centavos
}

// PricingService computes room and amenity charges. All methods are pure and
// all arithmetic is in centavos.
type PricingService struct{}

// NewPricingService creates a new PricingService
func NewPricingService() *PricingService {
	return &PricingService{}
}

// NightlyPrice looks up the per-night rate for a room type under the given
// season and market.
func (s *PricingService) NightlyPrice(rt models.RoomType, season models.Season, market models.Market) models.Centavos {
	return rt.PriceFor(season, market)
}

// AmenityLine prices one amenity selection: persons pay the full unit price
// for the days availed, and the PWD/senior subset earns back 20% of the unit
// price for the same days.
func (s *PricingService) AmenityLine(kind models.AmenityKind, persons, pwd, days int) (total, discount models.Centavos) {
	unit := kind.UnitPrice()
	total = unit.Mul(int64(persons)).Mul(int64(days))
	discount = unit.Percent(pwdDiscountPct).Mul(int64(pwd)).Mul(int64(days))
	return total, discount
}

// PriceReservation prices every room and amenity of a stay and aggregates to
// the grand total.
func (s *PricingService) PriceReservation(rooms []RoomBooking, season models.Season, market models.Market, nights int) (*PricingResult, error) {
	result := &PricingResult{
		Rooms:      make([]PricedRoom, 0, len(rooms)),
		Aggregates: make([]AmenityAggregateEntry, models.AmenityKindCount),
	}
	for k := range result.Aggregates {
		result.Aggregates[k].Kind = models.AmenityKind(k)
	}

	for _, room := range rooms {
		nightly := s.NightlyPrice(room.Type, season, market)
		priced := PricedRoom{
			Type:      room.Type,
			Instance:  room.Instance,
			Nightly:   nightly,
			StayTotal: nightly.Mul(int64(nights)),
		}
		result.RoomSubtotal += priced.StayTotal

		for _, sel := range room.Amenities {
			if sel.Persons == 0 {
				continue
			}
			kind, err := models.AmenityKindByName(sel.Kind)
			if err != nil {
				return nil, fmt.Errorf("room %s: %w", room.Instance, err)
			}

			total, discount := s.AmenityLine(kind, sel.Persons, sel.PWD, sel.Days)
			priced.Amenities = append(priced.Amenities, PricedAmenity{
				Kind:     kind,
				Persons:  sel.Persons,
				PWD:      sel.PWD,
				Days:     sel.Days,
				Total:    total,
				Discount: discount,
			})
			result.AmenitySubtotal += total
			result.AmenityDiscount += discount

			agg := &result.Aggregates[kind]
			agg.Persons += sel.Persons
			agg.PWD += sel.PWD
			if sel.Days > agg.Days {
				agg.Days = sel.Days
			}
		}

		result.Rooms = append(result.Rooms, priced)
	}

	result.AmenityFinal = result.AmenitySubtotal - result.AmenityDiscount
	result.GrandTotal = result.RoomSubtotal + result.AmenityFinal
	return result, nil
}
