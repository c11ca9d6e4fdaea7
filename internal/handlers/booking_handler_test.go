package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lanlyastar/reservation-backend/internal/database"
	"github.com/lanlyastar/reservation-backend/internal/models"
	"github.com/lanlyastar/reservation-backend/internal/services"
	"github.com/lanlyastar/reservation-backend/pkg/validator"
)

func newBookingRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	mockDB := &mockDatabase{db: sqlx.NewDb(db, "sqlmock")}
	inventory := database.NewInventoryRepository(mockDB)
	bookingService := services.NewBookingService(
		mockDB,
		services.NewSeasonService(),
		services.NewAllocationService(inventory, logger),
		services.NewPricingService(),
		services.NewSettlementService(validator.NewCardValidator(), logger),
		logger,
	)

	handler := NewBookingHandler(bookingService, logger)
	router := gin.New()
	router.POST("/bookings/quote", handler.Quote)
	router.POST("/bookings", handler.CreateReservation)
	return router, mock
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func quoteBody() map[string]interface{} {
	return map[string]interface{}{
		"today":       "2025-06-01",
		"check_in":    "2025-06-10",
		"check_out":   "2025-06-12",
		"destination": "Boracay",
		"num_rooms":   1,
		"adults":      2,
	}
}

func reservationBody() map[string]interface{} {
	return map[string]interface{}{
		"today":       "2025-03-01",
		"check_in":    "2025-03-10",
		"check_out":   "2025-03-12",
		"destination": "Baguio",
		"num_rooms":   1,
		"adults":      2,
		"booker": map[string]interface{}{
			"name":    "Maria Santos",
			"email":   "maria@example.com",
			"contact": "09171234567",
			"age":     34,
		},
		"rooms": []map[string]interface{}{
			{"room_type": "Deluxe", "instance_pick": 1},
		},
		"payment": map[string]interface{}{
			"method":      "cash",
			"cash_amount": "6000",
		},
	}
}

func TestBookingHandler_Quote(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		router, mock := newBookingRouter(t)

		mock.ExpectQuery(`SELECT available FROM room_inventory WHERE room_type`).
			WithArgs("Deluxe").
			WillReturnRows(sqlmock.NewRows([]string{"available"}).AddRow(3))

		w := postJSON(t, router, "/bookings/quote", quoteBody())

		assert.Equal(t, http.StatusOK, w.Code)

		var quote models.QuoteResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &quote))
		assert.Equal(t, models.SeasonHigh, quote.Season)
		assert.Equal(t, "Deluxe", quote.MinimumViableType)
		require.Len(t, quote.Suggestions, 1)
		assert.Len(t, quote.Suggestions[0].AvailableInstances, 3)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Malformed Body", func(t *testing.T) {
		router, _ := newBookingRouter(t)

		req := httptest.NewRequest("POST", "/bookings/quote", bytes.NewReader([]byte("{not json")))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Unknown Destination", func(t *testing.T) {
		router, _ := newBookingRouter(t)

		body := quoteBody()
		body["destination"] = "Atlantis"
		w := postJSON(t, router, "/bookings/quote", body)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "unknown destination")
	})

	t.Run("Party Too Large", func(t *testing.T) {
		router, _ := newBookingRouter(t)

		body := quoteBody()
		body["adults"] = 7
		w := postJSON(t, router, "/bookings/quote", body)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestBookingHandler_CreateReservation(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		router, mock := newBookingRouter(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT available FROM room_inventory WHERE room_type = \$1 FOR UPDATE`).
			WithArgs("Deluxe").
			WillReturnRows(sqlmock.NewRows([]string{"available"}).AddRow(4))
		mock.ExpectExec(`UPDATE room_inventory SET available = available - 1`).
			WithArgs("Deluxe").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		w := postJSON(t, router, "/bookings", reservationBody())

		assert.Equal(t, http.StatusCreated, w.Code)

		var summary models.BookingSummary
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
		assert.Equal(t, "PHP 6000.00", summary.GrandTotal)
		assert.Equal(t, models.PaymentCash, summary.PaymentMethod)
		assert.Nil(t, summary.ChangeDue)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Insufficient Cash Is Retryable", func(t *testing.T) {
		router, mock := newBookingRouter(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT available FROM room_inventory WHERE room_type = \$1 FOR UPDATE`).
			WithArgs("Deluxe").
			WillReturnRows(sqlmock.NewRows([]string{"available"}).AddRow(4))
		mock.ExpectExec(`UPDATE room_inventory SET available = available - 1`).
			WithArgs("Deluxe").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectRollback()

		body := reservationBody()
		body["payment"] = map[string]interface{}{
			"method":      "cash",
			"cash_amount": "100",
		}
		w := postJSON(t, router, "/bookings", body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"retryable":true`)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Inventory Exhausted Conflicts", func(t *testing.T) {
		router, mock := newBookingRouter(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT available FROM room_inventory WHERE room_type = \$1 FOR UPDATE`).
			WithArgs("Deluxe").
			WillReturnRows(sqlmock.NewRows([]string{"available"}).AddRow(0))
		mock.ExpectRollback()

		w := postJSON(t, router, "/bookings", reservationBody())

		assert.Equal(t, http.StatusConflict, w.Code)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Underage Booker Is Fatal", func(t *testing.T) {
		router, _ := newBookingRouter(t)

		body := reservationBody()
		body["booker"] = map[string]interface{}{
			"name":    "Junior Santos",
			"email":   "junior@example.com",
			"contact": "09170000000",
			"age":     17,
		}
		w := postJSON(t, router, "/bookings", body)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), `"retryable":false`)
	})
}

// mockDatabase adapts a sqlmock-backed sqlx.DB to the database.DB interface
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
