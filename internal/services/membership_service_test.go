package services

import (
	"errors"
	"testing"
	"time"

	"sports_complex_backend/internal/models"
	"sports_complex_backend/internal/repositories"
)

// fakePaymentRepo serves a canned latest-payment row for the membership lookup.
type fakePaymentRepo struct {
	latest *models.LatestPayment
	err    error
}

func (f *fakePaymentRepo) CreatePayment(executor repositories.SQLExecutor, payment *models.Payment) (int64, error) {
	return 0, errors.New("not implemented")
}

func (f *fakePaymentRepo) GetPayments() ([]models.Payment, error) {
	return nil, errors.New("not implemented")
}

func (f *fakePaymentRepo) DeletePayment(executor repositories.SQLExecutor, id int64) error {
	return errors.New("not implemented")
}

func (f *fakePaymentRepo) GetLatestPaymentWithPlan(clientID int64) (*models.LatestPayment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.latest, nil
}

type stubMembershipRepo struct{}

func (stubMembershipRepo) CreatePlan(repositories.SQLExecutor, *models.MembershipPlan) (int64, error) {
	return 0, errors.New("not implemented")
}
func (stubMembershipRepo) GetPlanByID(int64) (*models.MembershipPlan, error) {
	return nil, repositories.ErrNotFound
}
func (stubMembershipRepo) GetPlans() ([]models.MembershipPlan, error) { return nil, nil }
func (stubMembershipRepo) UpdatePlan(repositories.SQLExecutor, *models.MembershipPlan) error {
	return errors.New("not implemented")
}
func (stubMembershipRepo) DeletePlan(repositories.SQLExecutor, int64) error {
	return errors.New("not implemented")
}

type stubFacilityRepo struct{}

func (stubFacilityRepo) CreateFacility(repositories.SQLExecutor, *models.Facility) (int64, error) {
	return 0, errors.New("not implemented")
}
func (stubFacilityRepo) GetFacilityByID(int64) (*models.Facility, error) {
	return &models.Facility{ID: 1, Name: "Main Gym", Type: "gym"}, nil
}
func (stubFacilityRepo) GetFacilities() ([]models.Facility, error) { return nil, nil }
func (stubFacilityRepo) UpdateFacility(repositories.SQLExecutor, *models.Facility) error {
	return errors.New("not implemented")
}
func (stubFacilityRepo) DeleteFacility(repositories.SQLExecutor, int64) error {
	return errors.New("not implemented")
}

func newTestMembershipService(pr repositories.PaymentRepository) MembershipService {
	return NewMembershipService(stubMembershipRepo{}, pr, stubFacilityRepo{}, nil)
}

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("bad test time %q: %v", value, err)
	}
	return parsed
}

func TestAddMonthsClamped(t *testing.T) {
	tests := []struct {
		name   string
		start  string
		months int
		want   string
	}{
		{"plain month", "2024-03-15T10:00:00Z", 1, "2024-04-15T10:00:00Z"},
		{"clamps to leap february", "2024-01-31T00:00:00Z", 1, "2024-02-29T00:00:00Z"},
		{"clamps to non-leap february", "2023-01-31T00:00:00Z", 1, "2023-02-28T00:00:00Z"},
		{"clamps thirty-day month", "2024-10-31T08:30:00Z", 1, "2024-11-30T08:30:00Z"},
		{"year rollover", "2024-11-15T00:00:00Z", 3, "2025-02-15T00:00:00Z"},
		{"twelve months", "2024-02-29T12:00:00Z", 12, "2025-02-28T12:00:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AddMonthsClamped(mustTime(t, tt.start), tt.months)
			want := mustTime(t, tt.want)
			if !got.Equal(want) {
				t.Errorf("AddMonthsClamped(%s, %d) = %s, want %s", tt.start, tt.months, got.Format(time.RFC3339), want.Format(time.RFC3339))
			}
		})
	}
}

func TestGetActiveMembership_NoPayments(t *testing.T) {
	svc := newTestMembershipService(&fakePaymentRepo{err: repositories.ErrNotFound})

	_, err := svc.GetActiveMembership(42)
	if !errors.Is(err, ErrNoActiveMembership) {
		t.Fatalf("expected ErrNoActiveMembership, got %v", err)
	}
}

func TestGetActiveMembership_DerivesEndDate(t *testing.T) {
	facilityID := int64(5)
	svc := newTestMembershipService(&fakePaymentRepo{latest: &models.LatestPayment{
		PlanID:         3,
		PlanName:       "Monthly Gym",
		DurationMonths: 1,
		FacilityID:     &facilityID,
		PaymentDate:    mustTime(t, "2024-01-01T00:00:00Z"),
	}})

	membership, err := svc.GetActiveMembership(42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantEnd := mustTime(t, "2024-02-01T00:00:00Z")
	if !membership.MembershipEndDate.Equal(wantEnd) {
		t.Errorf("end date = %s, want %s", membership.MembershipEndDate.Format(time.RFC3339), wantEnd.Format(time.RFC3339))
	}
	if membership.PlanID != 3 || membership.ClientID != 42 {
		t.Errorf("unexpected membership identity: %+v", membership)
	}
}

func TestCheckEligibility(t *testing.T) {
	boundFacility := int64(5)

	// One-month plan bound to facility 5, paid 2024-01-01. The validity window
	// is [2024-01-01, 2024-02-01): the end instant itself is already expired.
	boundPlan := &models.LatestPayment{
		PlanID:         3,
		PlanName:       "Monthly Pool",
		DurationMonths: 1,
		FacilityID:     &boundFacility,
		PaymentDate:    mustTime(t, "2024-01-01T00:00:00Z"),
	}
	anyFacilityPlan := &models.LatestPayment{
		PlanID:         4,
		PlanName:       "Monthly All Access",
		DurationMonths: 1,
		PaymentDate:    mustTime(t, "2024-01-01T00:00:00Z"),
	}

	tests := []struct {
		name       string
		latest     *models.LatestPayment
		latestErr  error
		facilityID int64
		startTime  string
		wantErr    error
	}{
		{"inside window at bound facility", boundPlan, nil, 5, "2024-01-15T10:00:00Z", nil},
		{"instant before expiry", boundPlan, nil, 5, "2024-01-31T23:59:59Z", nil},
		{"exact expiry instant", boundPlan, nil, 5, "2024-02-01T00:00:00Z", ErrMembershipExpired},
		{"after expiry", boundPlan, nil, 5, "2024-02-02T10:00:00Z", ErrMembershipExpired},
		{"wrong facility inside window", boundPlan, nil, 6, "2024-01-15T10:00:00Z", ErrFacilityMismatch},
		{"unbound plan valid anywhere", anyFacilityPlan, nil, 6, "2024-01-15T10:00:00Z", nil},
		{"no payment history", nil, repositories.ErrNotFound, 5, "2024-01-15T10:00:00Z", ErrNoActiveMembership},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestMembershipService(&fakePaymentRepo{latest: tt.latest, err: tt.latestErr})

			err := svc.CheckEligibility(42, tt.facilityID, mustTime(t, tt.startTime))
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected eligibility, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCheckEligibility_NewerPaymentReplacesPlan(t *testing.T) {
	// The lookup only sees the single latest payment; an older, still-running
	// plan does not extend the window.
	svc := newTestMembershipService(&fakePaymentRepo{latest: &models.LatestPayment{
		PlanID:         7,
		PlanName:       "Monthly Gym",
		DurationMonths: 1,
		PaymentDate:    mustTime(t, "2024-03-01T00:00:00Z"),
	}})

	if err := svc.CheckEligibility(42, 1, mustTime(t, "2024-03-20T10:00:00Z")); err != nil {
		t.Fatalf("expected eligibility under latest plan, got %v", err)
	}
	if err := svc.CheckEligibility(42, 1, mustTime(t, "2024-04-05T10:00:00Z")); !errors.Is(err, ErrMembershipExpired) {
		t.Fatalf("expected ErrMembershipExpired after latest window, got %v", err)
	}
}
