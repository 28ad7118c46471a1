package models

import "time"

// MembershipPlan represents a purchasable membership tariff. A plan may be
// scoped to a single facility via FacilityID; a nil binding means the plan is
// valid for any facility.
type MembershipPlan struct {
	ID             int64   `json:"id" db:"id"`
	Name           string  `json:"name" db:"name" binding:"required"`
	DurationMonths int     `json:"duration" db:"duration"`
	Price          float64 `json:"price" db:"price"`
	Description    *string `json:"description,omitempty" db:"description"`
	FacilityID     *int64  `json:"facility_id,omitempty" db:"facility_id"`
}

// ActiveMembership is the derived membership state of a client. It is never
// stored: it is computed from the client's most recent payment joined to the
// paid plan. The validity window is [PaymentDate, MembershipEndDate).
type ActiveMembership struct {
	ClientID          int64     `json:"client_id"`
	PlanID            int64     `json:"plan_id"`
	PlanName          string    `json:"plan_name"`
	FacilityID        *int64    `json:"facility_id"`
	PaymentDate       time.Time `json:"payment_date"`
	MembershipEndDate time.Time `json:"membership_end_date"`
}
