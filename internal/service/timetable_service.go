package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/edusphere/timetable-api/internal/dto"
	"github.com/edusphere/timetable-api/internal/models"
	"github.com/edusphere/timetable-api/internal/scheduler"
	appErrors "github.com/edusphere/timetable-api/pkg/errors"
)

type draftRepository interface {
	Upsert(ctx context.Context, exec sqlx.ExtContext, draft *models.ScheduleDraft) error
	GetByUser(ctx context.Context, userID string) (*models.ScheduleDraft, error)
	DeleteByUser(ctx context.Context, exec sqlx.ExtContext, userID string) error
}

type lessonWriter interface {
	BulkCreateWithTx(ctx context.Context, tx *sqlx.Tx, lessons []models.Lesson) error
	DeleteByClasses(ctx context.Context, tx *sqlx.Tx, classIDs []int64) error
}

type txProvider interface {
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

type placementEngine interface {
	GenerateBest(data models.WizardData, runs int) scheduler.Result
}

// TimetableService drives the generation pipeline and draft lifecycle.
type TimetableService struct {
	engine    placementEngine
	drafts    draftRepository
	lessons   lessonWriter
	tx        txProvider
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
	store     *proposalStore
	bestOf    int
}

// TimetableServiceConfig governs generator behaviour.
type TimetableServiceConfig struct {
	BestOf      int
	ProposalTTL time.Duration
}

// NewTimetableService wires the generation pipeline.
func NewTimetableService(
	engine placementEngine,
	drafts draftRepository,
	lessons lessonWriter,
	tx txProvider,
	validate *validator.Validate,
	logger *zap.Logger,
	metrics *MetricsService,
	cfg TimetableServiceConfig,
) *TimetableService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.BestOf <= 0 {
		cfg.BestOf = 1
	}
	if cfg.ProposalTTL <= 0 {
		cfg.ProposalTTL = 30 * time.Minute
	}
	return &TimetableService{
		engine:    engine,
		drafts:    drafts,
		lessons:   lessons,
		tx:        tx,
		validator: validate,
		logger:    logger,
		metrics:   metrics,
		store:     newProposalStore(cfg.ProposalTTL),
		bestOf:    cfg.BestOf,
	}
}

// Generate runs the placement engine over the wizard snapshot and keeps
// the proposal around for a later draft save.
func (s *TimetableService) Generate(ctx context.Context, req dto.GenerateTimetableRequest) (*dto.GenerateTimetableResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid generation payload")
	}
	for _, requirement := range req.LessonRequirements {
		if requirement.Hours < 0 {
			return nil, appErrors.Clone(appErrors.ErrValidation, "lesson requirement hours must not be negative")
		}
	}

	data := req.ToModel()
	start := time.Now()
	result := s.engine.GenerateBest(data, s.bestOf)
	duration := time.Since(start)

	s.metrics.ObserveGeneration(len(result.Lessons), len(result.Unplaced), duration)

	slots := make([]dto.LessonSlot, 0, len(result.Lessons))
	for _, lesson := range result.Lessons {
		slots = append(slots, dto.LessonSlotFromModel(lesson))
	}
	unplaced := make([]dto.UnplacedLesson, 0, len(result.Unplaced))
	for _, gap := range result.Unplaced {
		unplaced = append(unplaced, dto.UnplacedLesson{
			ClassID:   gap.ClassID,
			SubjectID: gap.SubjectID,
			HourIndex: gap.HourIndex,
			Reason:    gap.Reason,
		})
	}

	proposal := timetableProposal{
		ProposalID:  uuid.NewString(),
		Lessons:     slots,
		Unplaced:    unplaced,
		RequestedAt: time.Now().UTC(),
	}
	s.store.Save(proposal)

	s.logger.Info("timetable generated",
		zap.String("proposal_id", proposal.ProposalID),
		zap.Int("placed", len(slots)),
		zap.Int("unplaced", len(unplaced)),
		zap.Duration("duration", duration),
	)

	return &dto.GenerateTimetableResponse{
		ProposalID: proposal.ProposalID,
		Lessons:    slots,
		Unplaced:   unplaced,
		Stats: dto.GenerationStats{
			Runs:           s.bestOf,
			RequestedHours: len(slots) + len(unplaced),
			PlacedHours:    len(slots),
			DurationMs:     duration.Milliseconds(),
		},
	}, nil
}

// SaveDraft stores a generated proposal as the user's draft, replacing
// any previous one.
func (s *TimetableService) SaveDraft(ctx context.Context, req dto.SaveDraftRequest) (string, error) {
	if err := s.validator.Struct(req); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid draft payload")
	}
	proposal, ok := s.store.Get(req.ProposalID)
	if !ok {
		return "", appErrors.Clone(appErrors.ErrNotFound, "proposal not found or expired")
	}

	payload, err := json.Marshal(proposal.Lessons)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode draft payload")
	}

	draft := &models.ScheduleDraft{
		UserID:  req.UserID,
		Payload: payload,
	}
	if err := s.drafts.Upsert(ctx, nil, draft); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save draft")
	}

	s.store.Delete(req.ProposalID)
	return draft.ID, nil
}

// GetDraft returns the user's current draft.
func (s *TimetableService) GetDraft(ctx context.Context, userID string) (*dto.DraftResponse, error) {
	if userID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "userId is required")
	}
	draft, err := s.drafts.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "no draft for user")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load draft")
	}

	var lessons []dto.LessonSlot
	if err := json.Unmarshal(draft.Payload, &lessons); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to decode draft payload")
	}

	return &dto.DraftResponse{
		DraftID:   draft.ID,
		UserID:    draft.UserID,
		Lessons:   lessons,
		UpdatedAt: draft.UpdatedAt,
	}, nil
}

// CommitDraft persists the user's draft as final lessons, replacing any
// previously committed timetable for the classes involved.
func (s *TimetableService) CommitDraft(ctx context.Context, req dto.CommitDraftRequest) (int, error) {
	if err := s.validator.Struct(req); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid commit payload")
	}
	draft, err := s.GetDraft(ctx, req.UserID)
	if err != nil {
		return 0, err
	}
	if len(draft.Lessons) == 0 {
		return 0, appErrors.Clone(appErrors.ErrPreconditionFailed, "draft has no lessons to commit")
	}
	if s.tx == nil {
		return 0, appErrors.Clone(appErrors.ErrInternal, "transaction provider missing")
	}

	lessons := make([]models.Lesson, 0, len(draft.Lessons))
	classSet := map[int64]struct{}{}
	for _, slot := range draft.Lessons {
		lessons = append(lessons, slot.ToLessonModel())
		classSet[slot.ClassID] = struct{}{}
	}
	classIDs := make([]int64, 0, len(classSet))
	for id := range classSet {
		classIDs = append(classIDs, id)
	}

	tx, err := s.tx.BeginTxx(ctx, nil)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to begin transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = s.lessons.DeleteByClasses(ctx, tx, classIDs); err != nil {
		err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear previous lessons")
		return 0, err
	}
	if err = s.lessons.BulkCreateWithTx(ctx, tx, lessons); err != nil {
		err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist lessons")
		return 0, err
	}
	if err = s.drafts.DeleteByUser(ctx, tx, req.UserID); err != nil {
		err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear committed draft")
		return 0, err
	}
	if err = tx.Commit(); err != nil {
		err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to commit lessons")
		return 0, err
	}

	s.logger.Info("draft committed", zap.String("user_id", req.UserID), zap.Int("lessons", len(lessons)))
	return len(lessons), nil
}

// --- Proposal cache ---

type timetableProposal struct {
	ProposalID  string
	Lessons     []dto.LessonSlot
	Unplaced    []dto.UnplacedLesson
	RequestedAt time.Time
}

type proposalStore struct {
	ttl   time.Duration
	mu    sync.RWMutex
	items map[string]timetableProposal
}

func newProposalStore(ttl time.Duration) *proposalStore {
	return &proposalStore{
		ttl:   ttl,
		items: make(map[string]timetableProposal),
	}
}

func (s *proposalStore) Save(proposal timetableProposal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[proposal.ProposalID] = proposal
}

func (s *proposalStore) Get(id string) (timetableProposal, bool) {
	s.mu.RLock()
	proposal, ok := s.items[id]
	s.mu.RUnlock()
	if !ok {
		return timetableProposal{}, false
	}
	if time.Since(proposal.RequestedAt) > s.ttl {
		s.Delete(id)
		return timetableProposal{}, false
	}
	return proposal, true
}

func (s *proposalStore) Delete(id string) {
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()
}
