package models

import "time"

// Payment records a client paying for a membership plan. The client's active
// membership is derived from their most recent payment row.
type Payment struct {
	ID           int64     `json:"id" db:"id"`
	ClientID     int64     `json:"client_id" db:"client_id"`
	MembershipID int64     `json:"membership_id" db:"membership_id"`
	Amount       float64   `json:"amount" db:"amount"`
	PaymentDate  time.Time `json:"payment_date" db:"payment_date"`

	// Joined display fields, populated by list queries.
	ClientName *string `json:"client_name,omitempty"`
	PlanName   *string `json:"plan_name,omitempty"`
}

// LatestPayment carries the raw data the membership lookup needs: the most
// recent payment of a client together with the paid plan's duration and
// facility binding.
type LatestPayment struct {
	PlanID         int64
	PlanName       string
	DurationMonths int
	FacilityID     *int64
	PaymentDate    time.Time
}
