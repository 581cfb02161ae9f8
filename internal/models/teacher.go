package models

// Teacher represents a teacher with subject qualifications and an
// optional class restriction list. An empty Classes slice means the
// teacher is eligible for any class.
type Teacher struct {
	ID       int64     `db:"id" json:"id"`
	Name     string    `db:"name" json:"name"`
	Subjects []Subject `json:"subjects"`
	Classes  []Class   `json:"classes"`
}

// TeacherConstraint is a window in which the teacher is unavailable.
// Multiple constraints per teacher are allowed and never merged.
type TeacherConstraint struct {
	ID          int64  `db:"id" json:"id"`
	TeacherID   int64  `db:"teacher_id" json:"teacher_id"`
	Day         string `db:"day" json:"day"`
	StartTime   string `db:"start_time" json:"start_time"`
	EndTime     string `db:"end_time" json:"end_time"`
	Description string `db:"description" json:"description"`
}
