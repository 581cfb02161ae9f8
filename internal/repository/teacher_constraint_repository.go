package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/edusphere/timetable-api/internal/models"
)

// TeacherConstraintRepository manages teacher unavailability windows.
type TeacherConstraintRepository struct {
	db *sqlx.DB
}

// NewTeacherConstraintRepository builds repository.
func NewTeacherConstraintRepository(db *sqlx.DB) *TeacherConstraintRepository {
	return &TeacherConstraintRepository{db: db}
}

// ListByTeacher returns the teacher's windows in insertion order.
func (r *TeacherConstraintRepository) ListByTeacher(ctx context.Context, teacherID int64) ([]models.TeacherConstraint, error) {
	const query = `SELECT id, teacher_id, day, start_time, end_time, description
FROM teacher_constraints WHERE teacher_id = $1 ORDER BY id ASC`
	var constraints []models.TeacherConstraint
	if err := r.db.SelectContext(ctx, &constraints, query, teacherID); err != nil {
		return nil, fmt.Errorf("list teacher constraints: %w", err)
	}
	return constraints, nil
}

// Create inserts a window and fills in the generated id.
func (r *TeacherConstraintRepository) Create(ctx context.Context, constraint *models.TeacherConstraint) error {
	const query = `
INSERT INTO teacher_constraints (teacher_id, day, start_time, end_time, description)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query,
		constraint.TeacherID,
		constraint.Day,
		constraint.StartTime,
		constraint.EndTime,
		constraint.Description,
	).Scan(&constraint.ID); err != nil {
		return fmt.Errorf("create teacher constraint: %w", err)
	}
	return nil
}

// Delete removes a window by id and reports which teacher owned it.
func (r *TeacherConstraintRepository) Delete(ctx context.Context, id int64) (int64, error) {
	var teacherID int64
	err := r.db.QueryRowxContext(ctx, `DELETE FROM teacher_constraints WHERE id = $1 RETURNING teacher_id`, id).Scan(&teacherID)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, sql.ErrNoRows
		}
		return 0, fmt.Errorf("delete teacher constraint: %w", err)
	}
	return teacherID, nil
}
