package models

import (
	"time"

	"github.com/google/uuid"
)

// Activity is something friends can meet up to do. MinParticipants is the
// quorum an activity needs before a session forms; X/Y/Z only position the
// activity bubble on the client map and play no part in matching.
type Activity struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name            string     `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Icon            string     `gorm:"size:100" json:"icon"`
	Color           string     `gorm:"size:8" json:"color"`
	Category        string     `gorm:"size:50;index" json:"category"`
	MinParticipants int        `gorm:"not null;default:2" json:"min_participants"`
	X               float64    `json:"x"`
	Y               float64    `json:"y"`
	Z               float64    `json:"z"`
	Interests       []Interest `gorm:"foreignKey:ActivityID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt       time.Time  `json:"created_at"`
}
