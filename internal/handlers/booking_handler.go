package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/lanlyastar/reservation-backend/internal/database"
	"github.com/lanlyastar/reservation-backend/internal/models"
	"github.com/lanlyastar/reservation-backend/internal/services"
	"github.com/lanlyastar/reservation-backend/pkg/validator"
)

// BookingHandler handles quote and reservation HTTP requests
type BookingHandler struct {
	bookingService *services.BookingService
	logger         *logrus.Logger
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingService *services.BookingService, logger *logrus.Logger) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		logger:         logger,
	}
}

// Quote computes the stay preview without committing inventory
// @Summary Quote a stay
// @Description Resolve season, feasibility and suggested rooms for a stay
// @Tags Booking
// @Accept json
// @Produce json
// @Param quoteRequest body models.QuoteRequest true "Stay parameters"
// @Success 200 {object} models.QuoteResponse
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings/quote [post]
func (h *BookingHandler) Quote(c *gin.Context) {
	var req models.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	quote, err := h.bookingService.Quote(&req)
	if err != nil {
		h.respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, quote)
}

// CreateReservation runs the full booking pipeline
// @Summary Create a reservation
// @Description Assign rooms, price the stay, settle payment and return the booking summary
// @Tags Booking
// @Accept json
// @Produce json
// @Param reservationRequest body models.CreateReservationRequest true "Reservation details"
// @Success 201 {object} models.BookingSummary
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) CreateReservation(c *gin.Context) {
	var req models.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	summary, err := h.bookingService.CreateReservation(&req)
	if err != nil {
		h.respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, summary)
}

// respondBookingError maps pipeline errors onto HTTP statuses: exhausted
// inventory conflicts, correctable payment input is a plain bad request, and
// everything that invalidates the booking itself is unprocessable.
func (h *BookingHandler) respondBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, database.ErrNoRoomsAvailable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "retryable": false})

	case errors.Is(err, services.ErrInsufficientCash),
		errors.Is(err, models.ErrInvalidAmount),
		errors.Is(err, services.ErrInvalidInstancePick),
		errors.Is(err, validator.ErrEmptyCardNumber),
		errors.Is(err, validator.ErrInvalidCardLength),
		errors.Is(err, validator.ErrInvalidCardFormat),
		errors.Is(err, validator.ErrInvalidCVVLength),
		errors.Is(err, validator.ErrInvalidCVVFormat):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "retryable": true})

	case errors.Is(err, services.ErrBookerUnderage),
		errors.Is(err, services.ErrCheckInPast),
		errors.Is(err, services.ErrCheckOutNotAfter),
		errors.Is(err, services.ErrNoGuests),
		errors.Is(err, services.ErrCapacityExceeded),
		errors.Is(err, services.ErrExtraBedsExceeded),
		errors.Is(err, services.ErrNoViableCombination),
		errors.Is(err, services.ErrNoFittingRoomType),
		errors.Is(err, models.ErrUnknownDestination),
		errors.Is(err, models.ErrUnknownRoomType),
		errors.Is(err, models.ErrUnknownAmenity):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "retryable": false})

	default:
		h.logger.WithError(err).Error("Booking request failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}
