package models

import (
	"errors"
	"fmt"
)

// PaymentMethod is how the booker settles the bill
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
)

// Booker identifies the person making the reservation
type Booker struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Contact string `json:"contact" binding:"required"`
	Age     int    `json:"age" binding:"required,min=0"`
}

// StayRequest is the common stay portion shared by quote and create requests.
// Today is optional; when absent the server date is used for the past-date
// check.
type StayRequest struct {
	Today       *string `json:"today,omitempty"`
	CheckIn     string  `json:"check_in" binding:"required"`
	CheckOut    string  `json:"check_out" binding:"required"`
	Destination string  `json:"destination" binding:"required"`
	NumRooms    int     `json:"num_rooms" binding:"required,min=1"`
	Adults      int     `json:"adults" binding:"min=0"`
	ChildAges   []int   `json:"child_ages,omitempty"`
	Infants     int     `json:"infants" binding:"min=0"`
}

// Validate performs structural validation of the stay portion.
func (r *StayRequest) Validate() error {
	if r.NumRooms < 1 {
		return errors.New("num_rooms must be at least 1")
	}
	if r.Adults < 0 {
		return errors.New("adults cannot be negative")
	}
	if r.Infants < 0 {
		return errors.New("infants cannot be negative")
	}
	for i, age := range r.ChildAges {
		if age < 0 || age > 17 {
			return fmt.Errorf("child %d: age must be between 0 and 17", i+1)
		}
	}
	return nil
}

// QuoteRequest asks for season classification, room suggestion and
// allocation preview for a stay. No inventory is committed.
type QuoteRequest struct {
	StayRequest
}

// RoomSuggestion is one suggested room in a quote
type RoomSuggestion struct {
	RoomNumber         int      `json:"room_number"` // 1-based position within the reservation
	RoomType           string   `json:"room_type"`
	Capacity           int      `json:"capacity"`
	Description        string   `json:"description"`
	AvailableInstances []string `json:"available_instances"`
}

// QuoteResponse is the computed preview for a stay
type QuoteResponse struct {
	CheckIn           string           `json:"check_in"`
	CheckOut          string           `json:"check_out"`
	Nights            int              `json:"nights"`
	Destination       string           `json:"destination"`
	Market            Market           `json:"market"`
	Season            Season           `json:"season"`
	TotalGuests       int              `json:"total_guests"`
	MinimumViableType string           `json:"minimum_viable_type"`
	Suggestions       []RoomSuggestion `json:"suggestions"`
	AllocationLines   []string         `json:"allocation_lines"`
}

// RoomSelection is the booker's choice for one reserved room. InstancePick is
// the 1-based position within the currently available instances of the type.
type RoomSelection struct {
	RoomType     string             `json:"room_type" binding:"required"`
	InstancePick int                `json:"instance_pick" binding:"required,min=1"`
	Amenities    []AmenitySelection `json:"amenities,omitempty"`
}

// PaymentDetails carries the settlement input. CashAmount is a decimal
// string; card fields are used for the card method only.
type PaymentDetails struct {
	Method     PaymentMethod `json:"method" binding:"required"`
	CashAmount string        `json:"cash_amount,omitempty"`
	CardNumber string        `json:"card_number,omitempty"`
	CVV        string        `json:"cvv,omitempty"`
}

// CreateReservationRequest is the full booking pipeline input
type CreateReservationRequest struct {
	StayRequest
	Booker    Booker          `json:"booker" binding:"required"`
	Rooms     []RoomSelection `json:"rooms" binding:"required"`
	ExtraBeds int             `json:"extra_beds" binding:"min=0"`
	Payment   PaymentDetails  `json:"payment" binding:"required"`
}

// Validate performs structural validation of the reservation request.
func (r *CreateReservationRequest) Validate() error {
	if err := r.StayRequest.Validate(); err != nil {
		return err
	}
	if r.Booker.Name == "" || r.Booker.Email == "" || r.Booker.Contact == "" {
		return errors.New("booker name, email and contact are required")
	}
	if len(r.Rooms) != r.NumRooms {
		return fmt.Errorf("rooms must contain exactly %d selections, got %d", r.NumRooms, len(r.Rooms))
	}
	if r.ExtraBeds < 0 {
		return errors.New("extra_beds cannot be negative")
	}
	switch r.Payment.Method {
	case PaymentCash:
		if r.Payment.CashAmount == "" {
			return errors.New("cash_amount is required for cash payment")
		}
	case PaymentCard:
		if r.Payment.CardNumber == "" || r.Payment.CVV == "" {
			return errors.New("card_number and cvv are required for card payment")
		}
	default:
		return fmt.Errorf("unknown payment method: %q", r.Payment.Method)
	}
	return nil
}

// AmenityLine is a priced amenity entry for one room
type AmenityLine struct {
	Kind      string `json:"kind"`
	Persons   int    `json:"persons"`
	PWD       int    `json:"pwd"`
	Days      int    `json:"days"`
	UnitPrice string `json:"unit_price"`
	Subtotal  string `json:"subtotal"`
	Discount  string `json:"discount"`
}

// ReservedRoomLine is one booked room in the summary
type ReservedRoomLine struct {
	RoomNumber   int           `json:"room_number"` // 1-based position within the reservation
	RoomType     string        `json:"room_type"`
	Instance     string        `json:"instance"`
	Description  string        `json:"description"`
	NightlyPrice string        `json:"nightly_price"`
	TotalForStay string        `json:"total_for_stay"`
	Amenities    []AmenityLine `json:"amenities"`
	NoAmenities  bool          `json:"no_amenities"`
}

// AmenityAggregate is the per-kind roll-up across rooms shown at the bottom
// of the summary. RepresentativeDays is the maximum days across rooms, not a
// sum, so the aggregate subtotal is representative rather than a true total;
// the per-room lines carry the authoritative figures.
type AmenityAggregate struct {
	Kind               string `json:"kind"`
	Persons            int    `json:"persons"`
	PWD                int    `json:"pwd"`
	RepresentativeDays int    `json:"representative_days"`
	UnitPrice          string `json:"unit_price"`
	Subtotal           string `json:"subtotal"`
}

// BookingSummary is the output contract consumed by the display layer. Field
// order matches the printed summary.
type BookingSummary struct {
	Reference         string             `json:"reference"`
	Booker            Booker             `json:"booker"`
	CheckIn           string             `json:"check_in"`
	CheckOut          string             `json:"check_out"`
	Nights            int                `json:"nights"`
	Destination       string             `json:"destination"`
	Market            Market             `json:"market"`
	Season            Season             `json:"season"`
	Rooms             []ReservedRoomLine `json:"rooms"`
	RoomSubtotal      string             `json:"room_subtotal"`
	AmenityAggregates []AmenityAggregate `json:"amenity_aggregates"`
	AmenitiesSubtotal string             `json:"amenities_subtotal"`
	AmenitiesDiscount string             `json:"amenities_discount"`
	AmenitiesTotal    string             `json:"amenities_total"`
	GrandTotal        string             `json:"grand_total"`
	PaymentMethod     PaymentMethod      `json:"payment_method"`
	ChangeDue         *string            `json:"change_due,omitempty"`
}
