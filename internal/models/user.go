package models

import (
	"time"

	"github.com/google/uuid"
)

// FriendLevel classifies how close a friend is to the current user.
type FriendLevel string

const (
	FriendLevelInnerCircle FriendLevel = "inner_circle"
	FriendLevelCrew        FriendLevel = "crew"
	FriendLevelPeers       FriendLevel = "peers"
)

// ValidFriendLevel reports whether s is one of the known friend tiers.
func ValidFriendLevel(s string) bool {
	switch FriendLevel(s) {
	case FriendLevelInnerCircle, FriendLevelCrew, FriendLevelPeers:
		return true
	}
	return false
}

// User is a registered member. Users are never deleted by the matching
// engine; interests that reference a missing user are skipped instead.
type User struct {
	ID          uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string      `gorm:"size:100;not null" json:"name"`
	Email       string      `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password    string      `gorm:"not null" json:"-"`
	AvatarColor string      `gorm:"size:8;default:'34C759'" json:"avatar_color"`
	FriendLevel FriendLevel `gorm:"size:20;default:'peers'" json:"friend_level"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
