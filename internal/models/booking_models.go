package models

import "time"

// BookingStatusPending is the only status a booking ever holds in this
// system; rows are created pending and either kept or deleted outright.
const BookingStatusPending = "pending"

// Booking represents a reservation of a facility for a time interval.
// The [StartTime, EndTime) interval is half-open: a booking ending at 10:00
// does not conflict with one starting at 10:00.
type Booking struct {
	ID         int64     `json:"id" db:"id"`
	ClientID   int64     `json:"client_id" db:"client_id"`
	FacilityID int64     `json:"facility_id" db:"facility_id"`
	StartTime  time.Time `json:"start_time" db:"start_time"`
	EndTime    time.Time `json:"end_time" db:"end_time"`
	Status     string    `json:"status" db:"status"`

	// Joined display fields, populated by list queries.
	ClientName   *string `json:"client_name,omitempty"`
	FacilityName *string `json:"facility_name,omitempty"`
}

// BookingFilters defines the available filters for querying bookings.
type BookingFilters struct {
	ClientID   *int64     `form:"client_id"`
	FacilityID *int64     `form:"facility_id"`
	DateFrom   *time.Time `form:"date_from"`
	DateTo     *time.Time `form:"date_to"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
}
