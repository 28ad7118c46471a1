package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"sports_complex_backend/internal/models"
	"sports_complex_backend/internal/repositories"
)

// fakeScheduleRepo keeps entries in memory. Overlap is scoped to facility and
// date; the zero-padded HH:MM strings compare correctly as plain strings, same
// as they do in SQL.
type fakeScheduleRepo struct {
	entries     []*models.ScheduleEntry
	nextID      int64
	createCalls int
}

func (f *fakeScheduleRepo) overlaps(facilityID int64, date, start, end string, excludeID *int64) bool {
	for _, e := range f.entries {
		if excludeID != nil && e.ID == *excludeID {
			continue
		}
		if e.FacilityID == facilityID && e.Date == date && e.StartTime < end && e.EndTime > start {
			return true
		}
	}
	return false
}

func (f *fakeScheduleRepo) CreateEntry(executor repositories.SQLExecutor, entry *models.ScheduleEntry) (int64, error) {
	f.nextID++
	entry.ID = f.nextID
	f.entries = append(f.entries, entry)
	return entry.ID, nil
}

func (f *fakeScheduleRepo) CreateEntryExclusive(ctx context.Context, entry *models.ScheduleEntry) (int64, error) {
	f.createCalls++
	if f.overlaps(entry.FacilityID, entry.Date, entry.StartTime, entry.EndTime, nil) {
		return 0, repositories.ErrSlotConflict
	}
	return f.CreateEntry(nil, entry)
}

func (f *fakeScheduleRepo) GetEntryByID(id int64) (*models.ScheduleEntry, error) {
	for _, e := range f.entries {
		if e.ID == id {
			copied := *e
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeScheduleRepo) GetEntries(filters models.ScheduleFilters) ([]models.ScheduleEntry, error) {
	out := make([]models.ScheduleEntry, 0, len(f.entries))
	for _, e := range f.entries {
		out = append(out, *e)
	}
	return out, nil
}

func (f *fakeScheduleRepo) UpdateEntryExclusive(ctx context.Context, entry *models.ScheduleEntry) error {
	if f.overlaps(entry.FacilityID, entry.Date, entry.StartTime, entry.EndTime, &entry.ID) {
		return repositories.ErrSlotConflict
	}
	for i, e := range f.entries {
		if e.ID == entry.ID {
			f.entries[i] = entry
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (f *fakeScheduleRepo) DeleteEntry(executor repositories.SQLExecutor, id int64) error {
	for i, e := range f.entries {
		if e.ID == id {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (f *fakeScheduleRepo) CheckSlotAvailability(executor repositories.SQLExecutor, facilityID int64, date, startTime, endTime string, excludeEntryID *int64) (bool, error) {
	return !f.overlaps(facilityID, date, startTime, endTime, excludeEntryID), nil
}

func newScheduleEntryRequest(facilityID int64, date, start, end string) CreateScheduleEntryRequest {
	return CreateScheduleEntryRequest{
		ClientID:     1,
		FacilityID:   facilityID,
		Date:         date,
		StartTime:    start,
		EndTime:      end,
		ActivityName: "Morning Yoga",
	}
}

func TestCreateScheduleEntry_OverlapScopedToFacilityAndDate(t *testing.T) {
	repo := &fakeScheduleRepo{}
	svc := NewScheduleService(repo, &fakeMembershipService{}, nil)
	ctx := context.Background()

	if _, err := svc.CreateEntry(ctx, newScheduleEntryRequest(1, "2024-06-01", "10:00", "11:00")); err != nil {
		t.Fatalf("seeding entry: %v", err)
	}

	tests := []struct {
		name       string
		facilityID int64
		date       string
		start, end string
		wantErr    error
	}{
		{"same slot same date", 1, "2024-06-01", "10:00", "11:00", ErrSlotTaken},
		{"partial overlap", 1, "2024-06-01", "10:30", "11:30", ErrSlotTaken},
		{"same slot next day", 1, "2024-06-02", "10:00", "11:00", nil},
		{"same slot other facility", 2, "2024-06-01", "10:00", "11:00", nil},
		{"back-to-back same date", 1, "2024-06-01", "11:00", "12:00", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateEntry(ctx, newScheduleEntryRequest(tt.facilityID, tt.date, tt.start, tt.end))
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected entry to be created, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCreateScheduleEntry_Validation(t *testing.T) {
	svc := NewScheduleService(&fakeScheduleRepo{}, &fakeMembershipService{}, nil)
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(*CreateScheduleEntryRequest)
		wantErr error
	}{
		{"bad date", func(r *CreateScheduleEntryRequest) { r.Date = "June 1st" }, ErrScheduleDateFormat},
		{"bad start time", func(r *CreateScheduleEntryRequest) { r.StartTime = "10am" }, ErrScheduleTimeFormat},
		{"bad end time", func(r *CreateScheduleEntryRequest) { r.EndTime = "25:99" }, ErrScheduleTimeFormat},
		{"end before start", func(r *CreateScheduleEntryRequest) { r.StartTime = "11:00"; r.EndTime = "10:00" }, ErrScheduleValidation},
		{"zero-length slot", func(r *CreateScheduleEntryRequest) { r.EndTime = r.StartTime }, ErrScheduleValidation},
		{"blank activity name", func(r *CreateScheduleEntryRequest) { r.ActivityName = "   " }, ErrScheduleValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newScheduleEntryRequest(1, "2024-06-01", "10:00", "11:00")
			tt.mutate(&req)
			_, err := svc.CreateEntry(ctx, req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCreateScheduleEntry_EligibilityUsesSlotStartInstant(t *testing.T) {
	repo := &fakeScheduleRepo{}
	recorder := &recordingMembershipService{}
	svc := NewScheduleService(repo, recorder, nil)

	if _, err := svc.CreateEntry(context.Background(), newScheduleEntryRequest(1, "2024-06-01", "18:30", "19:30")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := time.Date(2024, 6, 1, 18, 30, 0, 0, time.Local)
	if !recorder.startTime.Equal(want) {
		t.Errorf("eligibility checked at %s, want %s", recorder.startTime, want)
	}
}

func TestCreateScheduleEntry_IneligibleClientSkipsOverlapCheck(t *testing.T) {
	repo := &fakeScheduleRepo{}
	svc := NewScheduleService(repo, &fakeMembershipService{eligibilityErr: ErrMembershipExpired}, nil)

	_, err := svc.CreateEntry(context.Background(), newScheduleEntryRequest(1, "2024-06-01", "10:00", "11:00"))
	if !errors.Is(err, ErrMembershipExpired) {
		t.Fatalf("expected ErrMembershipExpired, got %v", err)
	}
	if repo.createCalls != 0 {
		t.Errorf("overlap/write path ran %d times for an ineligible client", repo.createCalls)
	}
}

func TestUpdateScheduleEntry_MoveExcludesOwnRow(t *testing.T) {
	repo := &fakeScheduleRepo{}
	svc := NewScheduleService(repo, &fakeMembershipService{}, nil)
	ctx := context.Background()

	entry, err := svc.CreateEntry(ctx, newScheduleEntryRequest(1, "2024-06-01", "10:00", "11:00"))
	if err != nil {
		t.Fatalf("seeding entry: %v", err)
	}

	newStart := "10:30"
	newEnd := "11:30"
	updated, err := svc.UpdateEntry(ctx, entry.ID, UpdateScheduleEntryRequest{
		StartTime: &newStart,
		EndTime:   &newEnd,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.StartTime != newStart || updated.EndTime != newEnd {
		t.Errorf("entry = %s-%s, want %s-%s", updated.StartTime, updated.EndTime, newStart, newEnd)
	}
}

// recordingMembershipService captures the start instant passed to the
// eligibility check.
type recordingMembershipService struct {
	fakeMembershipService
	startTime time.Time
}

func (r *recordingMembershipService) CheckEligibility(clientID, facilityID int64, startTime time.Time) error {
	r.startTime = startTime
	return nil
}
