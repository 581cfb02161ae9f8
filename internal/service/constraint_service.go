package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/edusphere/timetable-api/internal/dto"
	"github.com/edusphere/timetable-api/internal/models"
	"github.com/edusphere/timetable-api/internal/scheduler"
	appErrors "github.com/edusphere/timetable-api/pkg/errors"
)

type constraintRepository interface {
	ListByTeacher(ctx context.Context, teacherID int64) ([]models.TeacherConstraint, error)
	Create(ctx context.Context, constraint *models.TeacherConstraint) error
	Delete(ctx context.Context, id int64) (int64, error)
}

// ConstraintService manages teacher unavailability windows and validates
// proposed lessons against them.
type ConstraintService struct {
	repo      constraintRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewConstraintService wires constraint dependencies.
func NewConstraintService(repo constraintRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *ConstraintService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConstraintService{repo: repo, cache: cache, validator: validate, logger: logger}
}

func constraintCacheKey(teacherID int64) string {
	return fmt.Sprintf("constraints:teacher:%d", teacherID)
}

// List returns the teacher's windows in insertion order.
func (s *ConstraintService) List(ctx context.Context, teacherID int64) ([]models.TeacherConstraint, error) {
	if teacherID <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "teacherId is required")
	}

	key := constraintCacheKey(teacherID)
	var cached []models.TeacherConstraint
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	constraints, err := s.repo.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list teacher constraints")
	}
	s.cache.Set(ctx, key, constraints)
	return constraints, nil
}

// Create stores a new window after checking its clock values.
func (s *ConstraintService) Create(ctx context.Context, req dto.CreateConstraintRequest) (*models.TeacherConstraint, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid constraint payload")
	}
	start, err := scheduler.ParseClock(req.StartTime)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid startTime")
	}
	end, err := scheduler.ParseClock(req.EndTime)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid endTime")
	}
	if start >= end {
		return nil, appErrors.Clone(appErrors.ErrValidation, "startTime must be before endTime")
	}

	constraint := &models.TeacherConstraint{
		TeacherID:   req.TeacherID,
		Day:         req.Day,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Description: req.Description,
	}
	if err := s.repo.Create(ctx, constraint); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create teacher constraint")
	}

	s.cache.Invalidate(ctx, constraintCacheKey(req.TeacherID))
	return constraint, nil
}

// Delete removes a window by id.
func (s *ConstraintService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return appErrors.Clone(appErrors.ErrValidation, "constraint id is required")
	}
	teacherID, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "teacher constraint not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete teacher constraint")
	}
	s.cache.Invalidate(ctx, constraintCacheKey(teacherID))
	return nil
}

// ValidateLesson reports the first window overlapping a proposed lesson.
// The placement engine does not consult these windows; this check covers
// manual edits before they land on a draft.
func (s *ConstraintService) ValidateLesson(ctx context.Context, req dto.ValidateLessonRequest) (*dto.ValidateLessonResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid lesson payload")
	}

	constraints, err := s.List(ctx, req.TeacherID)
	if err != nil {
		return nil, err
	}

	conflict, err := scheduler.FindConflictingConstraint(req.TeacherID, req.Day, req.StartTime, req.EndTime, constraints)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid lesson interval")
	}

	resp := &dto.ValidateLessonResponse{Valid: conflict == nil}
	if conflict != nil {
		payload := dto.ConstraintFromModel(*conflict)
		resp.Conflict = &payload
	}
	return resp, nil
}
