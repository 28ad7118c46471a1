package models

// ScheduleEntry is a recurring-activity slot: structurally a booking pinned
// to a single calendar date, with descriptive fields. Date is YYYY-MM-DD and
// StartTime/EndTime are HH:MM wall-clock strings; zero-padded HH:MM compares
// correctly as text, which the overlap query relies on.
type ScheduleEntry struct {
	ID           int64   `json:"id" db:"id"`
	ClientID     *int64  `json:"client_id,omitempty" db:"client_id"`
	FacilityID   int64   `json:"facility_id" db:"facility_id"`
	Date         string  `json:"date" db:"date"`
	StartTime    string  `json:"start_time" db:"start_time"`
	EndTime      string  `json:"end_time" db:"end_time"`
	ActivityName string  `json:"activity_name" db:"activity_name"`
	Trainer      *string `json:"trainer,omitempty" db:"trainer"`

	// Joined display fields, populated by list queries.
	ClientName   *string `json:"client_name,omitempty"`
	FacilityName *string `json:"facility_name,omitempty"`
}

// ScheduleFilters defines the available filters for querying schedule entries.
type ScheduleFilters struct {
	FacilityID *int64  `form:"facility_id"`
	Date       *string `form:"date"`
}
