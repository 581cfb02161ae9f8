package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/edusphere/timetable-api/internal/models"
)

// LessonRepository persists committed timetable lessons.
type LessonRepository struct {
	db *sqlx.DB
}

// NewLessonRepository builds repository.
func NewLessonRepository(db *sqlx.DB) *LessonRepository {
	return &LessonRepository{db: db}
}

// BulkCreateWithTx inserts lessons inside the caller's transaction.
func (r *LessonRepository) BulkCreateWithTx(ctx context.Context, tx *sqlx.Tx, lessons []models.Lesson) error {
	if len(lessons) == 0 {
		return nil
	}

	const query = `
INSERT INTO lessons (id, name, day, start_time, end_time, subject_id, teacher_id, class_id, classroom_id)
VALUES (:id, :name, :day, :start_time, :end_time, :subject_id, :teacher_id, :class_id, :classroom_id)`

	for i := range lessons {
		lesson := &lessons[i]
		if lesson.ID == "" {
			lesson.ID = uuid.NewString()
		}
		if _, err := sqlx.NamedExecContext(ctx, tx, query, lesson); err != nil {
			return fmt.Errorf("insert lesson: %w", err)
		}
	}
	return nil
}

// ListByTeacher returns the teacher's committed lessons ordered by day
// and start time.
func (r *LessonRepository) ListByTeacher(ctx context.Context, teacherID int64) ([]models.Lesson, error) {
	const query = `SELECT id, name, day, start_time, end_time, subject_id, teacher_id, class_id, classroom_id
FROM lessons WHERE teacher_id = $1 ORDER BY day ASC, start_time ASC`
	var lessons []models.Lesson
	if err := r.db.SelectContext(ctx, &lessons, query, teacherID); err != nil {
		return nil, fmt.Errorf("list lessons by teacher: %w", err)
	}
	return lessons, nil
}

// DeleteByClasses clears previously committed lessons for the classes a
// new commit replaces.
func (r *LessonRepository) DeleteByClasses(ctx context.Context, tx *sqlx.Tx, classIDs []int64) error {
	if len(classIDs) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM lessons WHERE class_id IN (?)`, classIDs)
	if err != nil {
		return fmt.Errorf("build lesson delete: %w", err)
	}
	if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
		return fmt.Errorf("delete lessons for classes: %w", err)
	}
	return nil
}
