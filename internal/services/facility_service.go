package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"sports_complex_backend/internal/models"
	"sports_complex_backend/internal/repositories"
)

// --- Custom Service Errors for Facility ---
var (
	ErrFacilityNotFound   = errors.New("facility not found")
	ErrFacilityValidation = errors.New("facility data validation error")
)

// --- Facility DTOs ---
type CreateFacilityRequest struct {
	Name     string `json:"name" binding:"required"`
	Type     string `json:"type" binding:"required"`
	Capacity *int   `json:"capacity"`
}

type UpdateFacilityRequest struct {
	Name     *string `json:"name"`
	Type     *string `json:"type"`
	Capacity *int    `json:"capacity"`
}

// FacilityService manages the facility reference data.
type FacilityService interface {
	CreateFacility(req CreateFacilityRequest) (*models.Facility, error)
	GetFacilityByID(facilityID int64) (*models.Facility, error)
	GetFacilities() ([]models.Facility, error)
	UpdateFacility(facilityID int64, req UpdateFacilityRequest) (*models.Facility, error)
	DeleteFacility(facilityID int64) error
}

type facilityService struct {
	facilityRepo repositories.FacilityRepository
	db           *sql.DB
}

// NewFacilityService creates a new instance of FacilityService.
func NewFacilityService(repo repositories.FacilityRepository, db *sql.DB) FacilityService {
	return &facilityService{
		facilityRepo: repo,
		db:           db,
	}
}

func validateFacilityData(name, facilityType string, capacity *int) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrFacilityValidation)
	}
	if strings.TrimSpace(facilityType) == "" {
		return fmt.Errorf("%w: type cannot be empty", ErrFacilityValidation)
	}
	if capacity != nil && *capacity < 0 {
		return fmt.Errorf("%w: capacity cannot be negative", ErrFacilityValidation)
	}
	return nil
}

func (s *facilityService) CreateFacility(req CreateFacilityRequest) (*models.Facility, error) {
	if err := validateFacilityData(req.Name, req.Type, req.Capacity); err != nil {
		return nil, err
	}

	facility := &models.Facility{
		Name:     strings.TrimSpace(req.Name),
		Type:     strings.TrimSpace(req.Type),
		Capacity: req.Capacity,
	}
	if _, err := s.facilityRepo.CreateFacility(s.db, facility); err != nil {
		return nil, fmt.Errorf("failed to create facility: %w", err)
	}
	return facility, nil
}

func (s *facilityService) GetFacilityByID(facilityID int64) (*models.Facility, error) {
	facility, err := s.facilityRepo.GetFacilityByID(facilityID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrFacilityNotFound
		}
		return nil, fmt.Errorf("failed to get facility by ID: %w", err)
	}
	return facility, nil
}

func (s *facilityService) GetFacilities() ([]models.Facility, error) {
	facilities, err := s.facilityRepo.GetFacilities()
	if err != nil {
		return nil, fmt.Errorf("failed to get facilities: %w", err)
	}
	return facilities, nil
}

func (s *facilityService) UpdateFacility(facilityID int64, req UpdateFacilityRequest) (*models.Facility, error) {
	facility, err := s.facilityRepo.GetFacilityByID(facilityID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrFacilityNotFound
		}
		return nil, fmt.Errorf("failed to find facility for update: %w", err)
	}

	if req.Name != nil {
		facility.Name = strings.TrimSpace(*req.Name)
	}
	if req.Type != nil {
		facility.Type = strings.TrimSpace(*req.Type)
	}
	if req.Capacity != nil {
		facility.Capacity = req.Capacity
	}

	if err := validateFacilityData(facility.Name, facility.Type, facility.Capacity); err != nil {
		return nil, err
	}

	if err := s.facilityRepo.UpdateFacility(s.db, facility); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrFacilityNotFound
		}
		return nil, fmt.Errorf("failed to update facility: %w", err)
	}
	return facility, nil
}

func (s *facilityService) DeleteFacility(facilityID int64) error {
	if err := s.facilityRepo.DeleteFacility(s.db, facilityID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrFacilityNotFound
		}
		return fmt.Errorf("failed to delete facility: %w", err)
	}
	return nil
}
