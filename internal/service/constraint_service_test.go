package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edusphere/timetable-api/internal/dto"
	"github.com/edusphere/timetable-api/internal/models"
	appErrors "github.com/edusphere/timetable-api/pkg/errors"
)

func TestConstraintServiceListRequiresTeacherID(t *testing.T) {
	service, _ := newConstraintServiceFixture(nil)

	_, err := service.List(context.Background(), 0)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestConstraintServiceCreateAndList(t *testing.T) {
	service, repo := newConstraintServiceFixture(nil)

	created, err := service.Create(context.Background(), dto.CreateConstraintRequest{
		TeacherID: 7,
		Day:       "monday",
		StartTime: "08:00",
		EndTime:   "10:00",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	constraints, err := service.List(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, constraints, 1)
	assert.Equal(t, "monday", constraints[0].Day)
	assert.Len(t, repo.items, 1)
}

func TestConstraintServiceCreateRejectsBadClock(t *testing.T) {
	service, _ := newConstraintServiceFixture(nil)

	_, err := service.Create(context.Background(), dto.CreateConstraintRequest{
		TeacherID: 7,
		Day:       "monday",
		StartTime: "8h00",
		EndTime:   "10:00",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestConstraintServiceCreateRejectsInvertedWindow(t *testing.T) {
	service, _ := newConstraintServiceFixture(nil)

	_, err := service.Create(context.Background(), dto.CreateConstraintRequest{
		TeacherID: 7,
		Day:       "monday",
		StartTime: "10:00",
		EndTime:   "10:00",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestConstraintServiceDeleteMissing(t *testing.T) {
	service, _ := newConstraintServiceFixture(nil)

	err := service.Delete(context.Background(), 99)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestConstraintServiceListUsesCache(t *testing.T) {
	cacheRepo := &cacheRepoStub{}
	service, repo := newConstraintServiceFixture(cacheRepo)

	_, err := service.Create(context.Background(), dto.CreateConstraintRequest{
		TeacherID: 7,
		Day:       "monday",
		StartTime: "08:00",
		EndTime:   "10:00",
	})
	require.NoError(t, err)

	constraints, err := service.List(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, constraints, 1)

	// Second read must be served from cache even after the store empties.
	repo.items = nil
	constraints, err = service.List(context.Background(), 7)
	require.NoError(t, err)
	assert.Len(t, constraints, 1)
}

func TestConstraintServiceDeleteInvalidatesCache(t *testing.T) {
	cacheRepo := &cacheRepoStub{}
	service, _ := newConstraintServiceFixture(cacheRepo)

	created, err := service.Create(context.Background(), dto.CreateConstraintRequest{
		TeacherID: 7,
		Day:       "monday",
		StartTime: "08:00",
		EndTime:   "10:00",
	})
	require.NoError(t, err)

	_, err = service.List(context.Background(), 7)
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), created.ID))

	constraints, err := service.List(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, constraints)
}

func TestConstraintServiceValidateLessonConflict(t *testing.T) {
	service, _ := newConstraintServiceFixture(nil)

	_, err := service.Create(context.Background(), dto.CreateConstraintRequest{
		TeacherID: 7,
		Day:       "monday",
		StartTime: "08:00",
		EndTime:   "09:00",
	})
	require.NoError(t, err)

	resp, err := service.ValidateLesson(context.Background(), dto.ValidateLessonRequest{
		TeacherID: 7,
		Day:       "Monday",
		StartTime: "08:30",
		EndTime:   "09:30",
	})
	require.NoError(t, err)
	assert.False(t, resp.Valid)
	require.NotNil(t, resp.Conflict)
	assert.Equal(t, "08:00", resp.Conflict.StartTime)

	// Touching intervals do not conflict.
	resp, err = service.ValidateLesson(context.Background(), dto.ValidateLessonRequest{
		TeacherID: 7,
		Day:       "monday",
		StartTime: "09:00",
		EndTime:   "10:00",
	})
	require.NoError(t, err)
	assert.True(t, resp.Valid)
	assert.Nil(t, resp.Conflict)
}

func TestConstraintServiceValidateLessonRejectsBadInterval(t *testing.T) {
	service, _ := newConstraintServiceFixture(nil)

	_, err := service.ValidateLesson(context.Background(), dto.ValidateLessonRequest{
		TeacherID: 7,
		Day:       "monday",
		StartTime: "25:00",
		EndTime:   "26:00",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

// --- Fixtures ---

func newConstraintServiceFixture(cacheRepo CacheRepository) (*ConstraintService, *constraintRepoStub) {
	repo := &constraintRepoStub{}
	cache := NewCacheService(cacheRepo, time.Minute, nil, cacheRepo != nil)
	return NewConstraintService(repo, cache, nil, nil), repo
}

type constraintRepoStub struct {
	items  []models.TeacherConstraint
	nextID int64
}

func (s *constraintRepoStub) ListByTeacher(ctx context.Context, teacherID int64) ([]models.TeacherConstraint, error) {
	var result []models.TeacherConstraint
	for _, item := range s.items {
		if item.TeacherID == teacherID {
			result = append(result, item)
		}
	}
	return result, nil
}

func (s *constraintRepoStub) Create(ctx context.Context, constraint *models.TeacherConstraint) error {
	s.nextID++
	constraint.ID = s.nextID
	s.items = append(s.items, *constraint)
	return nil
}

func (s *constraintRepoStub) Delete(ctx context.Context, id int64) (int64, error) {
	for idx, item := range s.items {
		if item.ID == id {
			s.items = append(s.items[:idx], s.items[idx+1:]...)
			return item.TeacherID, nil
		}
	}
	return 0, sql.ErrNoRows
}

type cacheRepoStub struct {
	entries map[string][]byte
}

func (s *cacheRepoStub) Get(ctx context.Context, key string, dest interface{}) error {
	payload, ok := s.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(payload, dest)
}

func (s *cacheRepoStub) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if s.entries == nil {
		s.entries = make(map[string][]byte)
	}
	s.entries[key] = payload
	return nil
}

func (s *cacheRepoStub) Delete(ctx context.Context, key string) error {
	delete(s.entries, key)
	return nil
}
