package dto

import "github.com/edusphere/timetable-api/internal/models"

// CreateConstraintRequest declares a new teacher unavailability window.
type CreateConstraintRequest struct {
	TeacherID   int64  `json:"teacherId" validate:"required"`
	Day         string `json:"day" validate:"required"`
	StartTime   string `json:"startTime" validate:"required"`
	EndTime     string `json:"endTime" validate:"required"`
	Description string `json:"description"`
}

// ConstraintFromModel maps a stored constraint onto the wire shape.
func ConstraintFromModel(c models.TeacherConstraint) TeacherConstraintPayload {
	return TeacherConstraintPayload{
		ID:          c.ID,
		TeacherID:   c.TeacherID,
		Day:         c.Day,
		StartTime:   c.StartTime,
		EndTime:     c.EndTime,
		Description: c.Description,
	}
}
