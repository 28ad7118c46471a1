package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"sports_complex_backend/internal/models"
	"sports_complex_backend/internal/repositories"
)

// --- Custom Service Errors for Schedule ---
var (
	ErrScheduleEntryNotFound = errors.New("schedule entry not found")
	ErrScheduleValidation    = errors.New("schedule entry data validation error")
	ErrScheduleDateFormat    = errors.New("invalid date format, please use YYYY-MM-DD")
	ErrScheduleTimeFormat    = errors.New("invalid time format, please use HH:MM")
)

// --- Schedule DTOs ---
type CreateScheduleEntryRequest struct {
	ClientID     int64   `json:"client_id" binding:"required"`
	FacilityID   int64   `json:"facility_id" binding:"required"`
	Date         string  `json:"date" binding:"required"`
	StartTime    string  `json:"start_time" binding:"required"`
	EndTime      string  `json:"end_time" binding:"required"`
	ActivityName string  `json:"activity_name" binding:"required"`
	Trainer      *string `json:"trainer"`
}

type UpdateScheduleEntryRequest struct {
	FacilityID   *int64  `json:"facility_id"`
	Date         *string `json:"date"`
	StartTime    *string `json:"start_time"`
	EndTime      *string `json:"end_time"`
	ActivityName *string `json:"activity_name"`
	Trainer      *string `json:"trainer"`
}

// ScheduleService manages recurring-activity entries. An entry is a booking
// pinned to a single calendar date, so creation runs the same engine:
// eligibility first, then the overlap check scoped to facility and date,
// then the write, with the last two atomic in the repository.
type ScheduleService interface {
	CreateEntry(ctx context.Context, req CreateScheduleEntryRequest) (*models.ScheduleEntry, error)
	GetEntryByID(entryID int64) (*models.ScheduleEntry, error)
	GetEntries(filters models.ScheduleFilters) ([]models.ScheduleEntry, error)
	UpdateEntry(ctx context.Context, entryID int64, req UpdateScheduleEntryRequest) (*models.ScheduleEntry, error)
	DeleteEntry(entryID int64) error
}

type scheduleService struct {
	scheduleRepo      repositories.ScheduleRepository
	membershipService MembershipService
	db                *sql.DB
}

// NewScheduleService creates a new instance of ScheduleService.
func NewScheduleService(sr repositories.ScheduleRepository, ms MembershipService, db *sql.DB) ScheduleService {
	return &scheduleService{
		scheduleRepo:      sr,
		membershipService: ms,
		db:                db,
	}
}

const (
	scheduleDateLayout = "2006-01-02"
	scheduleTimeLayout = "15:04"
)

// validateScheduleSlot checks the date and the [start, end) wall-clock range
// and returns the absolute start instant used for the eligibility check.
func validateScheduleSlot(date, startTime, endTime string) (time.Time, error) {
	day, err := time.ParseInLocation(scheduleDateLayout, date, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("date: %w", ErrScheduleDateFormat)
	}
	start, err := time.Parse(scheduleTimeLayout, startTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("start_time: %w", ErrScheduleTimeFormat)
	}
	end, err := time.Parse(scheduleTimeLayout, endTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("end_time: %w", ErrScheduleTimeFormat)
	}
	if !end.After(start) {
		return time.Time{}, fmt.Errorf("%w: end time must be after start time", ErrScheduleValidation)
	}

	return day.Add(time.Duration(start.Hour())*time.Hour + time.Duration(start.Minute())*time.Minute), nil
}

func (s *scheduleService) CreateEntry(ctx context.Context, req CreateScheduleEntryRequest) (*models.ScheduleEntry, error) {
	if strings.TrimSpace(req.ActivityName) == "" {
		return nil, fmt.Errorf("%w: activity name cannot be empty", ErrScheduleValidation)
	}

	startInstant, err := validateScheduleSlot(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	// Eligibility runs fully, and fails fast, before any overlap I/O.
	if err := s.membershipService.CheckEligibility(req.ClientID, req.FacilityID, startInstant); err != nil {
		return nil, err
	}

	entry := &models.ScheduleEntry{
		ClientID:     &req.ClientID,
		FacilityID:   req.FacilityID,
		Date:         req.Date,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		ActivityName: strings.TrimSpace(req.ActivityName),
		Trainer:      req.Trainer,
	}

	if _, err := s.scheduleRepo.CreateEntryExclusive(ctx, entry); err != nil {
		if errors.Is(err, repositories.ErrSlotConflict) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("failed to create schedule entry: %w", err)
	}
	return entry, nil
}

func (s *scheduleService) GetEntryByID(entryID int64) (*models.ScheduleEntry, error) {
	entry, err := s.scheduleRepo.GetEntryByID(entryID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrScheduleEntryNotFound
		}
		return nil, fmt.Errorf("failed to get schedule entry by ID: %w", err)
	}
	return entry, nil
}

func (s *scheduleService) GetEntries(filters models.ScheduleFilters) ([]models.ScheduleEntry, error) {
	entries, err := s.scheduleRepo.GetEntries(filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule entries: %w", err)
	}
	return entries, nil
}

func (s *scheduleService) UpdateEntry(ctx context.Context, entryID int64, req UpdateScheduleEntryRequest) (*models.ScheduleEntry, error) {
	entry, err := s.scheduleRepo.GetEntryByID(entryID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrScheduleEntryNotFound
		}
		return nil, fmt.Errorf("failed to find schedule entry for update: %w", err)
	}

	if req.FacilityID != nil {
		entry.FacilityID = *req.FacilityID
	}
	if req.Date != nil {
		entry.Date = *req.Date
	}
	if req.StartTime != nil {
		entry.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		entry.EndTime = *req.EndTime
	}
	if req.ActivityName != nil {
		if strings.TrimSpace(*req.ActivityName) == "" {
			return nil, fmt.Errorf("%w: activity name cannot be empty", ErrScheduleValidation)
		}
		entry.ActivityName = strings.TrimSpace(*req.ActivityName)
	}
	if req.Trainer != nil {
		entry.Trainer = req.Trainer
	}

	startInstant, err := validateScheduleSlot(entry.Date, entry.StartTime, entry.EndTime)
	if err != nil {
		return nil, err
	}

	if entry.ClientID != nil {
		if err := s.membershipService.CheckEligibility(*entry.ClientID, entry.FacilityID, startInstant); err != nil {
			return nil, err
		}
	}

	if err := s.scheduleRepo.UpdateEntryExclusive(ctx, entry); err != nil {
		if errors.Is(err, repositories.ErrSlotConflict) {
			return nil, ErrSlotTaken
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrScheduleEntryNotFound
		}
		return nil, fmt.Errorf("failed to update schedule entry: %w", err)
	}
	return entry, nil
}

func (s *scheduleService) DeleteEntry(entryID int64) error {
	if err := s.scheduleRepo.DeleteEntry(s.db, entryID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrScheduleEntryNotFound
		}
		return fmt.Errorf("failed to delete schedule entry: %w", err)
	}
	return nil
}
