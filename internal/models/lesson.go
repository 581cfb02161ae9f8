package models

import "time"

// LessonRequirement maps a (class, subject) pair to an explicit weekly
// hour count, overriding the subject default. At most one requirement
// exists per pair.
type LessonRequirement struct {
	ClassID   int64 `db:"class_id" json:"class_id"`
	SubjectID int64 `db:"subject_id" json:"subject_id"`
	Hours     int   `db:"hours" json:"hours"`
}

// Lesson is a committed timetable slot produced by a generation run.
// ClassroomID is nil when the school has no rooms configured.
type Lesson struct {
	ID          string    `db:"id" json:"id,omitempty"`
	Name        string    `db:"name" json:"name"`
	Day         string    `db:"day" json:"day"`
	StartTime   time.Time `db:"start_time" json:"start_time"`
	EndTime     time.Time `db:"end_time" json:"end_time"`
	SubjectID   int64     `db:"subject_id" json:"subject_id"`
	TeacherID   int64     `db:"teacher_id" json:"teacher_id"`
	ClassID     int64     `db:"class_id" json:"class_id"`
	ClassroomID *int64    `db:"classroom_id" json:"classroom_id"`
}
