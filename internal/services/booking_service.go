package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"sports_complex_backend/internal/models"
	"sports_complex_backend/internal/repositories"
)

// --- Custom Service Errors for Booking ---
var (
	ErrBookingNotFound    = errors.New("booking not found")
	ErrSlotTaken          = errors.New("the requested time slot is already taken")
	ErrInvalidBookingTime = errors.New("invalid booking time")
	ErrTimeFormat         = errors.New("invalid time format, please use RFC3339 or YYYY-MM-DDTHH:MM")
)

// --- Booking DTOs ---
type CreateBookingRequest struct {
	ClientID   int64  `json:"client_id" binding:"required"`
	FacilityID int64  `json:"facility_id" binding:"required"`
	StartTime  string `json:"start_time" binding:"required"`
	EndTime    string `json:"end_time" binding:"required"`
}

type UpdateBookingRequest struct {
	FacilityID *int64  `json:"facility_id"`
	StartTime  *string `json:"start_time"`
	EndTime    *string `json:"end_time"`
}

// BookingService creates facility reservations. Creation runs three steps in
// strict order: the eligibility check (membership exists, window covers the
// start, facility binding matches), then the overlap check, then the write.
// The last two execute atomically in the repository so concurrent requests
// for the same slot cannot both succeed.
type BookingService interface {
	CreateBooking(ctx context.Context, req CreateBookingRequest) (*models.Booking, error)
	GetBookingByID(bookingID int64) (*models.Booking, error)
	GetBookings(filters models.BookingFilters) ([]models.Booking, int, error)
	UpdateBooking(ctx context.Context, bookingID int64, req UpdateBookingRequest) (*models.Booking, error)
	DeleteBooking(bookingID int64) error
}

type bookingService struct {
	bookingRepo       repositories.BookingRepository
	membershipService MembershipService
	db                *sql.DB
}

// NewBookingService creates a new instance of BookingService.
func NewBookingService(br repositories.BookingRepository, ms MembershipService, db *sql.DB) BookingService {
	return &bookingService{
		bookingRepo:       br,
		membershipService: ms,
		db:                db,
	}
}

// parseDateTime accepts RFC3339 timestamps as well as the timezone-less
// variants that HTML datetime-local inputs produce.
func parseDateTime(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrTimeFormat
}

func parseBookingInterval(startStr, endStr string) (time.Time, time.Time, error) {
	startTime, err := parseDateTime(startStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("start_time: %w", err)
	}
	endTime, err := parseDateTime(endStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("end_time: %w", err)
	}
	if !endTime.After(startTime) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end time must be after start time", ErrInvalidBookingTime)
	}
	return startTime, endTime, nil
}

func (s *bookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*models.Booking, error) {
	startTime, endTime, err := parseBookingInterval(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	// Eligibility runs fully, and fails fast, before any overlap I/O.
	if err := s.membershipService.CheckEligibility(req.ClientID, req.FacilityID, startTime); err != nil {
		return nil, err
	}

	booking := &models.Booking{
		ClientID:   req.ClientID,
		FacilityID: req.FacilityID,
		StartTime:  startTime,
		EndTime:    endTime,
		Status:     models.BookingStatusPending,
	}

	if _, err := s.bookingRepo.CreateBookingExclusive(ctx, booking); err != nil {
		if errors.Is(err, repositories.ErrSlotConflict) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}
	return booking, nil
}

func (s *bookingService) GetBookingByID(bookingID int64) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetBookingByID(bookingID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking by ID: %w", err)
	}
	return booking, nil
}

func (s *bookingService) GetBookings(filters models.BookingFilters) ([]models.Booking, int, error) {
	if filters.Page <= 0 {
		filters.Page = 1
	}
	if filters.PageSize <= 0 {
		filters.PageSize = 50
	}

	bookings, totalCount, err := s.bookingRepo.GetBookings(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get bookings: %w", err)
	}
	return bookings, totalCount, nil
}

func (s *bookingService) UpdateBooking(ctx context.Context, bookingID int64, req UpdateBookingRequest) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetBookingByID(bookingID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to find booking for update: %w", err)
	}

	if req.FacilityID != nil {
		booking.FacilityID = *req.FacilityID
	}
	if req.StartTime != nil || req.EndTime != nil {
		startStr := booking.StartTime.Format(time.RFC3339)
		endStr := booking.EndTime.Format(time.RFC3339)
		if req.StartTime != nil {
			startStr = *req.StartTime
		}
		if req.EndTime != nil {
			endStr = *req.EndTime
		}
		startTime, endTime, parseErr := parseBookingInterval(startStr, endStr)
		if parseErr != nil {
			return nil, parseErr
		}
		booking.StartTime = startTime
		booking.EndTime = endTime
	}

	// Moving a booking re-runs the full engine: eligibility first, then the
	// overlap check (excluding this row) atomically with the update.
	if err := s.membershipService.CheckEligibility(booking.ClientID, booking.FacilityID, booking.StartTime); err != nil {
		return nil, err
	}

	if err := s.bookingRepo.UpdateBookingExclusive(ctx, booking); err != nil {
		if errors.Is(err, repositories.ErrSlotConflict) {
			return nil, ErrSlotTaken
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}
	return booking, nil
}

func (s *bookingService) DeleteBooking(bookingID int64) error {
	if err := s.bookingRepo.DeleteBooking(s.db, bookingID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrBookingNotFound
		}
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	return nil
}
