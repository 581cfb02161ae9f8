package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// ScheduleDraft is the editable, not-yet-final schedule a user is
// working on. One draft exists per user; saving overwrites it.
type ScheduleDraft struct {
	ID        string         `db:"id" json:"id"`
	UserID    string         `db:"user_id" json:"user_id"`
	Payload   types.JSONText `db:"payload" json:"payload"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt time.Time      `db:"updated_at" json:"updated_at"`
}
