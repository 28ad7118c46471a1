package models

// Facility represents a bookable area of the complex (gym, pool, yoga room).
type Facility struct {
	ID       int64  `json:"id" db:"id"`
	Name     string `json:"name" db:"name" binding:"required"`
	Type     string `json:"type" db:"type" binding:"required"`
	Capacity *int   `json:"capacity,omitempty" db:"capacity"`
}
