package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"sports_complex_backend/internal/models"
	"sports_complex_backend/internal/repositories"
)

// --- Custom Service Errors for Memberships ---
var (
	ErrPlanNotFound       = errors.New("membership plan not found")
	ErrPlanValidation     = errors.New("membership plan data validation error")
	ErrFacilityForPlan    = errors.New("facility specified for membership plan not found")
	ErrNoActiveMembership = errors.New("no active membership")
	ErrMembershipExpired  = errors.New("membership expired")
	ErrFacilityMismatch   = errors.New("membership is valid for a different facility")
)

// --- Membership Plan DTOs ---
type CreateMembershipPlanRequest struct {
	Name        string  `json:"name" binding:"required"`
	Duration    int     `json:"duration" binding:"required"`
	Price       float64 `json:"price" binding:"required"`
	Description *string `json:"description"`
	FacilityID  *int64  `json:"facility_id"`
}

type UpdateMembershipPlanRequest struct {
	Name        *string  `json:"name"`
	Duration    *int     `json:"duration"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
	FacilityID  *int64   `json:"facility_id"`
}

// MembershipService manages membership plans and derives the active
// membership of a client from their payment history.
type MembershipService interface {
	CreatePlan(req CreateMembershipPlanRequest) (*models.MembershipPlan, error)
	GetPlans() ([]models.MembershipPlan, error)
	GetPlanByID(planID int64) (*models.MembershipPlan, error)
	UpdatePlan(planID int64, req UpdateMembershipPlanRequest) (*models.MembershipPlan, error)
	DeletePlan(planID int64) error

	// GetActiveMembership derives the client's current membership from their
	// most recent payment. Returns ErrNoActiveMembership when the client has
	// no payment history.
	GetActiveMembership(clientID int64) (*models.ActiveMembership, error)

	// CheckEligibility verifies that the client may reserve the facility at
	// startTime: an active membership must exist, its validity window must
	// cover startTime, and its facility binding (if any) must match. It fails
	// fast so no overlap I/O happens for an ineligible client.
	CheckEligibility(clientID, facilityID int64, startTime time.Time) error
}

type membershipService struct {
	membershipRepo repositories.MembershipRepository
	paymentRepo    repositories.PaymentRepository
	facilityRepo   repositories.FacilityRepository
	db             *sql.DB
}

// NewMembershipService creates a new instance of MembershipService.
func NewMembershipService(
	mr repositories.MembershipRepository,
	pr repositories.PaymentRepository,
	fr repositories.FacilityRepository,
	db *sql.DB,
) MembershipService {
	return &membershipService{
		membershipRepo: mr,
		paymentRepo:    pr,
		facilityRepo:   fr,
		db:             db,
	}
}

// AddMonthsClamped adds calendar months to t, preserving day-of-month and
// clamping at month-end: Jan 31 + 1 month is Feb 28 (29 in leap years), not
// Mar 2/3 as time.AddDate would normalize it.
func AddMonthsClamped(t time.Time, months int) time.Time {
	firstOfTarget := time.Date(t.Year(), t.Month()+time.Month(months), 1,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()

	day := t.Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func (s *membershipService) validatePlanData(name string, duration int, price float64) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrPlanValidation)
	}
	if duration < 1 {
		return fmt.Errorf("%w: duration must be at least one month", ErrPlanValidation)
	}
	if price < 0 {
		return fmt.Errorf("%w: price cannot be negative", ErrPlanValidation)
	}
	return nil
}

func (s *membershipService) validateFacilityBinding(facilityID *int64) error {
	if facilityID == nil {
		return nil
	}
	if _, err := s.facilityRepo.GetFacilityByID(*facilityID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: ID %d", ErrFacilityForPlan, *facilityID)
		}
		return fmt.Errorf("failed to validate facility for plan: %w", err)
	}
	return nil
}

func (s *membershipService) CreatePlan(req CreateMembershipPlanRequest) (*models.MembershipPlan, error) {
	if err := s.validatePlanData(req.Name, req.Duration, req.Price); err != nil {
		return nil, err
	}
	if err := s.validateFacilityBinding(req.FacilityID); err != nil {
		return nil, err
	}

	plan := &models.MembershipPlan{
		Name:           strings.TrimSpace(req.Name),
		DurationMonths: req.Duration,
		Price:          req.Price,
		Description:    req.Description,
		FacilityID:     req.FacilityID,
	}
	if _, err := s.membershipRepo.CreatePlan(s.db, plan); err != nil {
		return nil, fmt.Errorf("failed to create membership plan: %w", err)
	}
	return plan, nil
}

func (s *membershipService) GetPlans() ([]models.MembershipPlan, error) {
	plans, err := s.membershipRepo.GetPlans()
	if err != nil {
		return nil, fmt.Errorf("failed to get membership plans: %w", err)
	}
	return plans, nil
}

func (s *membershipService) GetPlanByID(planID int64) (*models.MembershipPlan, error) {
	plan, err := s.membershipRepo.GetPlanByID(planID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, fmt.Errorf("failed to get membership plan by ID: %w", err)
	}
	return plan, nil
}

func (s *membershipService) UpdatePlan(planID int64, req UpdateMembershipPlanRequest) (*models.MembershipPlan, error) {
	plan, err := s.membershipRepo.GetPlanByID(planID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, fmt.Errorf("failed to find membership plan for update: %w", err)
	}

	if req.Name != nil {
		plan.Name = strings.TrimSpace(*req.Name)
	}
	if req.Duration != nil {
		plan.DurationMonths = *req.Duration
	}
	if req.Price != nil {
		plan.Price = *req.Price
	}
	if req.Description != nil {
		plan.Description = req.Description
	}
	if req.FacilityID != nil {
		plan.FacilityID = req.FacilityID
	}

	if err := s.validatePlanData(plan.Name, plan.DurationMonths, plan.Price); err != nil {
		return nil, err
	}
	if err := s.validateFacilityBinding(plan.FacilityID); err != nil {
		return nil, err
	}

	if err := s.membershipRepo.UpdatePlan(s.db, plan); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, fmt.Errorf("failed to update membership plan: %w", err)
	}
	return plan, nil
}

func (s *membershipService) DeletePlan(planID int64) error {
	if err := s.membershipRepo.DeletePlan(s.db, planID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrPlanNotFound
		}
		return fmt.Errorf("failed to delete membership plan: %w", err)
	}
	return nil
}

func (s *membershipService) GetActiveMembership(clientID int64) (*models.ActiveMembership, error) {
	latest, err := s.paymentRepo.GetLatestPaymentWithPlan(clientID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNoActiveMembership
		}
		return nil, fmt.Errorf("failed to look up latest payment for client %d: %w", clientID, err)
	}

	return &models.ActiveMembership{
		ClientID:          clientID,
		PlanID:            latest.PlanID,
		PlanName:          latest.PlanName,
		FacilityID:        latest.FacilityID,
		PaymentDate:       latest.PaymentDate,
		MembershipEndDate: AddMonthsClamped(latest.PaymentDate, latest.DurationMonths),
	}, nil
}

func (s *membershipService) CheckEligibility(clientID, facilityID int64, startTime time.Time) error {
	membership, err := s.GetActiveMembership(clientID)
	if err != nil {
		return err
	}

	// The validity window is half-open: the end instant itself is no longer
	// covered, the instant immediately before it is.
	if !startTime.Before(membership.MembershipEndDate) {
		return fmt.Errorf("%w: membership was valid until %s",
			ErrMembershipExpired, membership.MembershipEndDate.Format("2006-01-02"))
	}

	if membership.FacilityID != nil && *membership.FacilityID != facilityID {
		return fmt.Errorf("%w: membership is bound to facility %d", ErrFacilityMismatch, *membership.FacilityID)
	}
	return nil
}
