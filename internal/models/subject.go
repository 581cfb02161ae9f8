package models

// Subject represents an academic subject. WeeklyHours is the fallback
// hour count when no explicit requirement exists for a class.
type Subject struct {
	ID          int64  `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	WeeklyHours int    `db:"weekly_hours" json:"weekly_hours"`
}
