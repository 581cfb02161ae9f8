package models

// Class represents an academic class or section.
type Class struct {
	ID       int64  `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Capacity int    `db:"capacity" json:"capacity"`
	GradeID  int64  `db:"grade_id" json:"grade_id"`
}
