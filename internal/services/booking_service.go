package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/lanlyastar/reservation-backend/internal/database"
	"github.com/lanlyastar/reservation-backend/internal/models"
	"github.com/lanlyastar/reservation-backend/pkg/calendar"
)

var (
	// ErrBookerUnderage indicates the booker is younger than 18
	ErrBookerUnderage = errors.New("booker must be at least 18 years old")

	// ErrCheckInPast indicates check-in falls before today
	ErrCheckInPast = errors.New("check-in date is in the past")

	// ErrCheckOutNotAfter indicates a stay of zero or negative length
	ErrCheckOutNotAfter = errors.New("check-out must be after check-in")

	// ErrNoGuests indicates a party with no adults or children
	ErrNoGuests = errors.New("at least one guest is required")

	// ErrCapacityExceeded indicates the party does not fit the selected rooms
	ErrCapacityExceeded = errors.New("guests exceed the capacity of the selected rooms")

	// ErrExtraBedsExceeded indicates more extra beds than the rooms allow
	ErrExtraBedsExceeded = errors.New("extra beds exceed the allowed maximum")
)

// BookingService orchestrates the full reservation pipeline: date
// validation, season resolution, allocation, pricing and settlement. All
// inventory mutation happens inside one database transaction committed only
// after settlement succeeds, so an aborted booking leaves no trace.
type BookingService struct {
	db         database.DB
	seasons    *SeasonService
	allocation *AllocationService
	pricing    *PricingService
	settlement *SettlementService
	logger     *logrus.Logger
}

// NewBookingService creates a new BookingService
func NewBookingService(
	db database.DB,
	seasons *SeasonService,
	allocation *AllocationService,
	pricing *PricingService,
	settlement *SettlementService,
	logger *logrus.Logger,
) *BookingService {
	return &BookingService{
		db:         db,
		seasons:    seasons,
		allocation: allocation,
		pricing:    pricing,
		settlement: settlement,
		logger:     logger,
	}
}

// stay is the validated date/market portion of a request
type stay struct {
	checkIn  calendar.Date
	checkOut calendar.Date
	nights   int
	market   models.Market
	season   models.Season
}

// resolveStay validates the dates and destination of a request and resolves
// the season. Today defaults to the server date when the client omits it.
func (s *BookingService) resolveStay(req *models.StayRequest) (*stay, error) {
	market, err := models.MarketForDestination(req.Destination)
	if err != nil {
		return nil, err
	}

	today, err := s.resolveToday(req.Today)
	if err != nil {
		return nil, err
	}

	checkIn, err := calendar.Parse(req.CheckIn)
	if err != nil {
		return nil, fmt.Errorf("check_in: %w", err)
	}
	checkOut, err := calendar.Parse(req.CheckOut)
	if err != nil {
		return nil, fmt.Errorf("check_out: %w", err)
	}

	if checkIn.Before(today) {
		return nil, ErrCheckInPast
	}
	nights := checkIn.DaysUntil(checkOut)
	if nights <= 0 {
		return nil, ErrCheckOutNotAfter
	}

	return &stay{
		checkIn:  checkIn,
		checkOut: checkOut,
		nights:   int(nights),
		market:   market,
		season:   s.seasons.SeasonOfStay(checkIn, checkOut),
	}, nil
}

func (s *BookingService) resolveToday(supplied *string) (calendar.Date, error) {
	if supplied != nil && *supplied != "" {
		d, err := calendar.Parse(*supplied)
		if err != nil {
			return calendar.Date{}, fmt.Errorf("today: %w", err)
		}
		return d, nil
	}
	now := time.Now()
	return calendar.Date{Year: now.Year(), Month: int(now.Month()), Day: now.Day()}, nil
}

// Quote computes the preview for a stay: season, feasibility, suggested room
// types with their available instances, and the allocation narrative.
// Nothing is committed.
func (s *BookingService) Quote(req *models.QuoteRequest) (*models.QuoteResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	st, err := s.resolveStay(&req.StayRequest)
	if err != nil {
		return nil, err
	}

	effAdults, effChildren, totalGuests := s.allocation.EffectiveCounts(req.Adults, req.ChildAges)
	if totalGuests == 0 {
		return nil, ErrNoGuests
	}

	minViable, err := s.allocation.MinimumViableType(totalGuests, req.NumRooms)
	if err != nil {
		return nil, err
	}

	suggested, err := s.allocation.SuggestRooms(totalGuests, req.NumRooms)
	if err != nil {
		return nil, err
	}

	suggestions := make([]models.RoomSuggestion, 0, len(suggested))
	for i, rt := range suggested {
		instances, err := s.allocation.AvailableInstances(rt.ID)
		if err != nil {
			return nil, err
		}
		suggestions = append(suggestions, models.RoomSuggestion{
			RoomNumber:         i + 1,
			RoomType:           rt.Name,
			Capacity:           rt.Capacity,
			Description:        rt.Description,
			AvailableInstances: instances,
		})
	}

	return &models.QuoteResponse{
		CheckIn:           st.checkIn.String(),
		CheckOut:          st.checkOut.String(),
		Nights:            st.nights,
		Destination:       req.Destination,
		Market:            st.market,
		Season:            st.season,
		TotalGuests:       totalGuests,
		MinimumViableType: minViable.Name,
		Suggestions:       suggestions,
		AllocationLines:   s.allocation.BuildAllocationLines(effAdults, effChildren, req.Infants, minViable.Capacity, effAdults),
	}, nil
}

// CreateReservation runs the whole pipeline and returns the booking summary.
// On any error the transaction rolls back and inventory is untouched.
func (s *BookingService) CreateReservation(req *models.CreateReservationRequest) (*models.BookingSummary, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.Booker.Age < 18 {
		return nil, ErrBookerUnderage
	}

	st, err := s.resolveStay(&req.StayRequest)
	if err != nil {
		return nil, err
	}

	_, _, totalGuests := s.allocation.EffectiveCounts(req.Adults, req.ChildAges)
	if totalGuests == 0 {
		return nil, ErrNoGuests
	}

	if _, err := s.allocation.MinimumViableType(totalGuests, req.NumRooms); err != nil {
		return nil, err
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	bookings := make([]RoomBooking, 0, len(req.Rooms))
	totalCapacity := 0
	maxExtraBeds := 0
	for i, sel := range req.Rooms {
		rt, err := models.RoomTypeByName(sel.RoomType)
		if err != nil {
			return nil, fmt.Errorf("room %d: %w", i+1, err)
		}

		for _, amen := range sel.Amenities {
			if err := amen.Validate(rt.Capacity, st.nights); err != nil {
				return nil, fmt.Errorf("room %d: %w", i+1, err)
			}
		}

		instance, err := s.allocation.AssignInstanceTx(tx, rt.ID, sel.InstancePick)
		if err != nil {
			return nil, fmt.Errorf("room %d (%s): %w", i+1, rt.Name, err)
		}

		totalCapacity += rt.Capacity
		maxExtraBeds += rt.ExtraBedsAllowed
		bookings = append(bookings, RoomBooking{Type: rt, Instance: instance, Amenities: sel.Amenities})
	}

	if req.ExtraBeds > maxExtraBeds {
		return nil, fmt.Errorf("%w: requested %d, max %d", ErrExtraBedsExceeded, req.ExtraBeds, maxExtraBeds)
	}
	if totalGuests > totalCapacity+req.ExtraBeds {
		return nil, fmt.Errorf("%w: %d guests, capacity %d", ErrCapacityExceeded, totalGuests, totalCapacity+req.ExtraBeds)
	}

	priced, err := s.pricing.PriceReservation(bookings, st.season, st.market, st.nights)
	if err != nil {
		return nil, err
	}

	settled, err := s.settlement.Settle(req.Payment, priced.GrandTotal)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit reservation: %w", err)
	}

	summary := s.buildSummary(req, st, priced, settled)

	s.logger.WithFields(logrus.Fields{
		"reference":   summary.Reference,
		"destination": req.Destination,
		"season":      st.season.String(),
		"rooms":       len(req.Rooms),
		"grand_total": priced.GrandTotal.String(),
		"method":      settled.Method,
	}).Info("Reservation completed")

	return summary, nil
}

func (s *BookingService) buildSummary(
	req *models.CreateReservationRequest,
	st *stay,
	priced *PricingResult,
	settled *SettlementResult,
) *models.BookingSummary {
	rooms := make([]models.ReservedRoomLine, 0, len(priced.Rooms))
	for i, pr := range priced.Rooms {
		line := models.ReservedRoomLine{
			RoomNumber:   i + 1,
			RoomType:     pr.Type.Name,
			Instance:     pr.Instance,
			Description:  pr.Type.Description,
			NightlyPrice: pr.Nightly.Format(),
			TotalForStay: pr.StayTotal.Format(),
			Amenities:    make([]models.AmenityLine, 0, len(pr.Amenities)),
			NoAmenities:  len(pr.Amenities) == 0,
		}
		for _, pa := range pr.Amenities {
			line.Amenities = append(line.Amenities, models.AmenityLine{
				Kind:      pa.Kind.String(),
				Persons:   pa.Persons,
				PWD:       pa.PWD,
				Days:      pa.Days,
				UnitPrice: pa.Kind.UnitPrice().Format(),
				Subtotal:  pa.Total.Format(),
				Discount:  pa.Discount.Format(),
			})
		}
		rooms = append(rooms, line)
	}

	aggregates := make([]models.AmenityAggregate, 0, len(priced.Aggregates))
	for _, agg := range priced.Aggregates {
		if agg.Persons == 0 {
			continue
		}
		aggregates = append(aggregates, models.AmenityAggregate{
			Kind:               agg.Kind.String(),
			Persons:            agg.Persons,
			PWD:                agg.PWD,
			RepresentativeDays: agg.Days,
			UnitPrice:          agg.Kind.UnitPrice().Format(),
			Subtotal:           agg.Subtotal().Format(),
		})
	}

	summary := &models.BookingSummary{
		Reference:         newBookingReference(),
		Booker:            req.Booker,
		CheckIn:           st.checkIn.String(),
		CheckOut:          st.checkOut.String(),
		Nights:            st.nights,
		Destination:       req.Destination,
		Market:            st.market,
		Season:            st.season,
		Rooms:             rooms,
		RoomSubtotal:      priced.RoomSubtotal.Format(),
		AmenityAggregates: aggregates,
		AmenitiesSubtotal: priced.AmenitySubtotal.Format(),
		AmenitiesDiscount: priced.AmenityDiscount.Format(),
		AmenitiesTotal:    priced.AmenityFinal.Format(),
		GrandTotal:        priced.GrandTotal.Format(),
		PaymentMethod:     settled.Method,
	}

	if settled.Method == models.PaymentCash && settled.Change > 0 {
		change := settled.Change.Format()
		summary.ChangeDue = &change
	}

	return summary
}

// newBookingReference generates a short human-readable reference
func newBookingReference() string {
	return "LSH-" + strings.ToUpper(uuid.New().String()[:8])
}
