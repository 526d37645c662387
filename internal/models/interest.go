package models

import (
	"time"

	"github.com/google/uuid"
)

// Interest records that a user currently wants an activity. At most one
// interest exists per (user, activity) pair; toggling off or forming a
// session deletes it. The foreign keys are nullable so a row that loses its
// user or activity mid-write degrades to a dangling reference the evaluator
// skips, rather than failing a whole pass.
type Interest struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_interests_user_activity" json:"user_id"`
	ActivityID *uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_interests_user_activity" json:"activity_id"`
	CreatedAt  time.Time  `json:"created_at"`
}

// NewInterest builds an interest linking user and activity.
func NewInterest(userID, activityID uuid.UUID) *Interest {
	return &Interest{
		ID:         uuid.New(),
		UserID:     &userID,
		ActivityID: &activityID,
		CreatedAt:  time.Now(),
	}
}
