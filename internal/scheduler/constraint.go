package scheduler

import (
	"fmt"
	"strings"

	"github.com/edusphere/timetable-api/internal/models"
)

// FindConflictingConstraint reports the first unavailability window of the
// teacher that overlaps the proposed [start,end) interval on the given
// day, in input order. Touching endpoints do not overlap. Times are
// "HH:mm" wall-clock strings; malformed values are rejected instead of
// silently comparing as never-overlapping.
func FindConflictingConstraint(teacherID int64, day, start, end string, constraints []models.TeacherConstraint) (*models.TeacherConstraint, error) {
	proposedStart, err := ParseClock(start)
	if err != nil {
		return nil, fmt.Errorf("proposed start: %w", err)
	}
	proposedEnd, err := ParseClock(end)
	if err != nil {
		return nil, fmt.Errorf("proposed end: %w", err)
	}

	for i := range constraints {
		constraint := &constraints[i]
		if constraint.TeacherID != teacherID || !strings.EqualFold(constraint.Day, day) {
			continue
		}
		windowStart, err := ParseClock(constraint.StartTime)
		if err != nil {
			return nil, fmt.Errorf("constraint %d start: %w", constraint.ID, err)
		}
		windowEnd, err := ParseClock(constraint.EndTime)
		if err != nil {
			return nil, fmt.Errorf("constraint %d end: %w", constraint.ID, err)
		}
		if proposedStart < windowEnd && proposedEnd > windowStart {
			return constraint, nil
		}
	}
	return nil, nil
}
