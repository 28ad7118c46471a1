package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"sports_complex_backend/internal/models"
	"sports_complex_backend/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeBookingService returns a canned result for CreateBooking so the handler
// error mapping can be exercised without a database.
type fakeBookingService struct {
	createErr error
}

func (f *fakeBookingService) CreateBooking(ctx context.Context, req services.CreateBookingRequest) (*models.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &models.Booking{ID: 1, ClientID: req.ClientID, FacilityID: req.FacilityID, Status: models.BookingStatusPending}, nil
}

func (f *fakeBookingService) GetBookingByID(bookingID int64) (*models.Booking, error) {
	return nil, services.ErrBookingNotFound
}

func (f *fakeBookingService) GetBookings(filters models.BookingFilters) ([]models.Booking, int, error) {
	return []models.Booking{}, 0, nil
}

func (f *fakeBookingService) UpdateBooking(ctx context.Context, bookingID int64, req services.UpdateBookingRequest) (*models.Booking, error) {
	return nil, services.ErrBookingNotFound
}

func (f *fakeBookingService) DeleteBooking(bookingID int64) error {
	return services.ErrBookingNotFound
}

func newBookingTestRouter(svc services.BookingService) *gin.Engine {
	engine := gin.New()
	handler := NewBookingHandler(svc)
	engine.POST("/bookings", handler.CreateBooking)
	engine.GET("/bookings/:id", handler.GetBookingByID)
	engine.DELETE("/bookings/:id", handler.DeleteBooking)
	return engine
}

func postBooking(t *testing.T, engine *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/bookings", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)
	return recorder
}

func decodeErrorCode(t *testing.T, recorder *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding error body %q: %v", recorder.Body.String(), err)
	}
	return body.Error.Code
}

const validBookingPayload = `{"client_id":1,"facility_id":2,"start_time":"2024-06-01T10:00:00Z","end_time":"2024-06-01T11:00:00Z"}`

func TestCreateBookingHandler_Success(t *testing.T) {
	engine := newBookingTestRouter(&fakeBookingService{})

	recorder := postBooking(t, engine, validBookingPayload)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d; body %s", recorder.Code, http.StatusCreated, recorder.Body.String())
	}

	var booking models.Booking
	if err := json.Unmarshal(recorder.Body.Bytes(), &booking); err != nil {
		t.Fatalf("decoding booking: %v", err)
	}
	if booking.Status != models.BookingStatusPending {
		t.Errorf("status = %q, want %q", booking.Status, models.BookingStatusPending)
	}
}

func TestCreateBookingHandler_EngineErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
		wantCode   string
	}{
		{"no membership", services.ErrNoActiveMembership, http.StatusBadRequest, "NO_MEMBERSHIP"},
		{"expired membership", services.ErrMembershipExpired, http.StatusBadRequest, "MEMBERSHIP_EXPIRED"},
		{"facility mismatch", services.ErrFacilityMismatch, http.StatusBadRequest, "FACILITY_MISMATCH"},
		{"slot taken", services.ErrSlotTaken, http.StatusBadRequest, "SLOT_TAKEN"},
		{"invalid interval", services.ErrInvalidBookingTime, http.StatusBadRequest, "VALIDATION_FAILED"},
		{"bad time format", services.ErrTimeFormat, http.StatusBadRequest, "VALIDATION_FAILED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newBookingTestRouter(&fakeBookingService{createErr: tt.serviceErr})

			recorder := postBooking(t, engine, validBookingPayload)
			if recorder.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d; body %s", recorder.Code, tt.wantStatus, recorder.Body.String())
			}
			if code := decodeErrorCode(t, recorder); code != tt.wantCode {
				t.Errorf("error code = %q, want %q", code, tt.wantCode)
			}
		})
	}
}

func TestCreateBookingHandler_MissingFields(t *testing.T) {
	engine := newBookingTestRouter(&fakeBookingService{})

	recorder := postBooking(t, engine, `{"client_id":1}`)
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", recorder.Code, http.StatusBadRequest)
	}
	if code := decodeErrorCode(t, recorder); code != "VALIDATION_FAILED" {
		t.Errorf("error code = %q, want VALIDATION_FAILED", code)
	}
}

func TestGetBookingHandler_NotFound(t *testing.T) {
	engine := newBookingTestRouter(&fakeBookingService{})

	req := httptest.NewRequest(http.MethodGet, "/bookings/99", nil)
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", recorder.Code, http.StatusNotFound)
	}
	if code := decodeErrorCode(t, recorder); code != "NOT_FOUND" {
		t.Errorf("error code = %q, want NOT_FOUND", code)
	}
}

func TestDeleteBookingHandler_NotFound(t *testing.T) {
	engine := newBookingTestRouter(&fakeBookingService{})

	req := httptest.NewRequest(http.MethodDelete, "/bookings/99", nil)
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", recorder.Code, http.StatusNotFound)
	}
}
