package service

import (
	"context"
	"database/sql"
	"math/rand"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/edusphere/timetable-api/internal/dto"
	"github.com/edusphere/timetable-api/internal/models"
	"github.com/edusphere/timetable-api/internal/scheduler"
	appErrors "github.com/edusphere/timetable-api/pkg/errors"
)

func TestTimetableServiceGenerateSuccess(t *testing.T) {
	service, _ := newTimetableServiceFixture(t, timetableFixtureConfig{})

	resp, err := service.Generate(context.Background(), simpleSnapshot())
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ProposalID)
	assert.Len(t, resp.Lessons, 3)
	assert.Empty(t, resp.Unplaced)
	assert.Equal(t, 3, resp.Stats.PlacedHours)
	assert.Equal(t, 3, resp.Stats.RequestedHours)
}

func TestTimetableServiceGenerateRejectsMissingSchool(t *testing.T) {
	service, _ := newTimetableServiceFixture(t, timetableFixtureConfig{})

	req := simpleSnapshot()
	req.School.StartTime = ""
	_, err := service.Generate(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestTimetableServiceGenerateRejectsNegativeHours(t *testing.T) {
	service, _ := newTimetableServiceFixture(t, timetableFixtureConfig{})

	req := simpleSnapshot()
	req.LessonRequirements = []dto.LessonRequirementPayload{
		{ClassID: 1, SubjectID: 10, Hours: -1},
	}
	_, err := service.Generate(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestTimetableServiceGenerateReportsUnplaced(t *testing.T) {
	service, _ := newTimetableServiceFixture(t, timetableFixtureConfig{})

	req := simpleSnapshot()
	req.Teachers = nil
	resp, err := service.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, resp.Lessons)
	require.Len(t, resp.Unplaced, 3)
	assert.Equal(t, "NO_ELIGIBLE_TEACHER", resp.Unplaced[0].Reason)
}

func TestTimetableServiceSaveDraftRoundtrip(t *testing.T) {
	service, drafts := newTimetableServiceFixture(t, timetableFixtureConfig{})

	resp, err := service.Generate(context.Background(), simpleSnapshot())
	require.NoError(t, err)

	id, err := service.SaveDraft(context.Background(), dto.SaveDraftRequest{
		ProposalID: resp.ProposalID,
		UserID:     "user-1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Contains(t, drafts.items, "user-1")

	draft, err := service.GetDraft(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", draft.UserID)
	assert.Len(t, draft.Lessons, 3)

	// Proposals are single-use.
	_, err = service.SaveDraft(context.Background(), dto.SaveDraftRequest{
		ProposalID: resp.ProposalID,
		UserID:     "user-1",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestTimetableServiceSaveDraftUnknownProposal(t *testing.T) {
	service, _ := newTimetableServiceFixture(t, timetableFixtureConfig{})

	_, err := service.SaveDraft(context.Background(), dto.SaveDraftRequest{
		ProposalID: "missing",
		UserID:     "user-1",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestTimetableServiceSaveDraftExpiredProposal(t *testing.T) {
	service, _ := newTimetableServiceFixture(t, timetableFixtureConfig{ttl: time.Nanosecond})

	resp, err := service.Generate(context.Background(), simpleSnapshot())
	require.NoError(t, err)

	time.Sleep(time.Millisecond)

	_, err = service.SaveDraft(context.Background(), dto.SaveDraftRequest{
		ProposalID: resp.ProposalID,
		UserID:     "user-1",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestTimetableServiceGetDraftMissing(t *testing.T) {
	service, _ := newTimetableServiceFixture(t, timetableFixtureConfig{})

	_, err := service.GetDraft(context.Background(), "nobody")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestTimetableServiceCommitDraft(t *testing.T) {
	txProvider, mock := newTimetableTxMock(t)
	service, drafts := newTimetableServiceFixture(t, timetableFixtureConfig{tx: txProvider})

	resp, err := service.Generate(context.Background(), simpleSnapshot())
	require.NoError(t, err)
	_, err = service.SaveDraft(context.Background(), dto.SaveDraftRequest{
		ProposalID: resp.ProposalID,
		UserID:     "user-1",
	})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectCommit()

	count, err := service.CommitDraft(context.Background(), dto.CommitDraftRequest{UserID: "user-1"})
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.NotContains(t, drafts.items, "user-1")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableServiceCommitDraftRollsBackOnWriteFailure(t *testing.T) {
	txProvider, mock := newTimetableTxMock(t)
	lessons := &lessonWriterStub{createErr: assert.AnError}
	service, _ := newTimetableServiceFixture(t, timetableFixtureConfig{tx: txProvider, lessons: lessons})

	resp, err := service.Generate(context.Background(), simpleSnapshot())
	require.NoError(t, err)
	_, err = service.SaveDraft(context.Background(), dto.SaveDraftRequest{
		ProposalID: resp.ProposalID,
		UserID:     "user-1",
	})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err = service.CommitDraft(context.Background(), dto.CommitDraftRequest{UserID: "user-1"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableServiceCommitDraftRequiresLessons(t *testing.T) {
	txProvider, _ := newTimetableTxMock(t)
	service, drafts := newTimetableServiceFixture(t, timetableFixtureConfig{tx: txProvider})
	drafts.items = map[string]*models.ScheduleDraft{
		"user-1": {ID: "draft-1", UserID: "user-1", Payload: []byte("[]")},
	}

	_, err := service.CommitDraft(context.Background(), dto.CommitDraftRequest{UserID: "user-1"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrPreconditionFailed.Code, appErrors.FromError(err).Code)
}

// --- Fixtures ---

type timetableFixtureConfig struct {
	tx      txProvider
	lessons lessonWriter
	ttl     time.Duration
}

func newTimetableServiceFixture(t *testing.T, cfg timetableFixtureConfig) (*TimetableService, *draftRepoStub) {
	t.Helper()

	drafts := &draftRepoStub{}
	lessons := cfg.lessons
	if lessons == nil {
		lessons = &lessonWriterStub{}
	}
	tx := cfg.tx
	if tx == nil {
		tx = failingTxProvider{}
	}
	ttl := cfg.ttl
	if ttl == 0 {
		ttl = time.Hour
	}

	engine := scheduler.New(scheduler.Config{Rand: rand.New(rand.NewSource(7))})
	service := NewTimetableService(
		engine,
		drafts,
		lessons,
		tx,
		validator.New(),
		zap.NewNop(),
		nil,
		TimetableServiceConfig{BestOf: 2, ProposalTTL: ttl},
	)
	return service, drafts
}

// simpleSnapshot demands three hours of one subject for one class, with a
// single qualified teacher and no rooms.
func simpleSnapshot() dto.GenerateTimetableRequest {
	return dto.GenerateTimetableRequest{
		School: dto.SchoolPayload{
			StartTime:  "08:00",
			EndTime:    "17:00",
			SchoolDays: []string{"monday", "tuesday"},
		},
		Classes:  []dto.ClassPayload{{ID: 1, Name: "6A"}},
		Subjects: []dto.SubjectPayload{{ID: 10, Name: "Mathematiques", WeeklyHours: 3}},
		Teachers: []dto.TeacherPayload{
			{ID: 100, Name: "Durand", Subjects: []dto.SubjectPayload{{ID: 10, Name: "Mathematiques"}}},
		},
	}
}

type draftRepoStub struct {
	items map[string]*models.ScheduleDraft
}

func (s *draftRepoStub) Upsert(ctx context.Context, exec sqlx.ExtContext, draft *models.ScheduleDraft) error {
	if s.items == nil {
		s.items = make(map[string]*models.ScheduleDraft)
	}
	if existing, ok := s.items[draft.UserID]; ok {
		draft.ID = existing.ID
	} else {
		draft.ID = "draft-1"
	}
	draft.UpdatedAt = time.Now()
	stored := *draft
	s.items[draft.UserID] = &stored
	return nil
}

func (s *draftRepoStub) GetByUser(ctx context.Context, userID string) (*models.ScheduleDraft, error) {
	draft, ok := s.items[userID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return draft, nil
}

func (s *draftRepoStub) DeleteByUser(ctx context.Context, exec sqlx.ExtContext, userID string) error {
	delete(s.items, userID)
	return nil
}

type lessonWriterStub struct {
	created   []models.Lesson
	cleared   []int64
	createErr error
}

func (s *lessonWriterStub) BulkCreateWithTx(ctx context.Context, tx *sqlx.Tx, lessons []models.Lesson) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = append(s.created, lessons...)
	return nil
}

func (s *lessonWriterStub) DeleteByClasses(ctx context.Context, tx *sqlx.Tx, classIDs []int64) error {
	s.cleared = append(s.cleared, classIDs...)
	return nil
}

type failingTxProvider struct{}

func (failingTxProvider) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	return nil, appErrors.Clone(appErrors.ErrInternal, "transaction provider unavailable")
}

type timetableTxMock struct {
	db *sqlx.DB
}

func newTimetableTxMock(t *testing.T) (txProvider, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	sqlxdb := sqlx.NewDb(db, "sqlmock")
	t.Cleanup(func() { db.Close() })
	return &timetableTxMock{db: sqlxdb}, mock
}

func (m *timetableTxMock) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	return m.db.BeginTxx(ctx, opts)
}
