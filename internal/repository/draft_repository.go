package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/edusphere/timetable-api/internal/models"
)

// DraftRepository manages the one-draft-per-user schedule drafts.
type DraftRepository struct {
	db *sqlx.DB
}

// NewDraftRepository builds repository.
func NewDraftRepository(db *sqlx.DB) *DraftRepository {
	return &DraftRepository{db: db}
}

func (r *DraftRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

// Upsert stores the draft for its user, overwriting any existing one.
func (r *DraftRepository) Upsert(ctx context.Context, exec sqlx.ExtContext, draft *models.ScheduleDraft) error {
	target := r.exec(exec)
	now := time.Now().UTC()

	if draft.ID == "" {
		draft.ID = uuid.NewString()
	}
	if draft.CreatedAt.IsZero() {
		draft.CreatedAt = now
	}
	draft.UpdatedAt = now

	const query = `
INSERT INTO schedule_drafts (id, user_id, payload, created_at, updated_at)
VALUES (:id, :user_id, :payload, :created_at, :updated_at)
ON CONFLICT (user_id) DO UPDATE
SET payload = EXCLUDED.payload,
    updated_at = EXCLUDED.updated_at`

	if _, err := sqlx.NamedExecContext(ctx, target, query, draft); err != nil {
		return fmt.Errorf("upsert schedule draft: %w", err)
	}
	return nil
}

// GetByUser returns the user's current draft.
func (r *DraftRepository) GetByUser(ctx context.Context, userID string) (*models.ScheduleDraft, error) {
	const query = `SELECT id, user_id, payload, created_at, updated_at
FROM schedule_drafts WHERE user_id = $1`
	var draft models.ScheduleDraft
	if err := r.db.GetContext(ctx, &draft, query, userID); err != nil {
		return nil, err
	}
	return &draft, nil
}

// DeleteByUser drops the user's draft after a commit.
func (r *DraftRepository) DeleteByUser(ctx context.Context, exec sqlx.ExtContext, userID string) error {
	target := r.exec(exec)
	if _, err := target.ExecContext(ctx, `DELETE FROM schedule_drafts WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete schedule draft: %w", err)
	}
	return nil
}
