package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Default offset between session creation and its scheduled time.
const sessionLeadTime = 2 * time.Hour

// GroupSession is a formed meet-up. ActivityName and Participants are
// snapshots, not live references: a session survives later activity or
// interest churn. Sessions are immutable after creation.
type GroupSession struct {
	ID            uuid.UUID                   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ActivityName  string                      `gorm:"size:100;not null;index" json:"activity_name"`
	Participants  datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"participants"`
	ScheduledTime time.Time                   `gorm:"not null" json:"scheduled_time"`
	Location1     string                      `gorm:"size:255" json:"location1"`
	Location2     string                      `gorm:"size:255" json:"location2"`
	BookingLink1  string                      `gorm:"type:text" json:"booking_link1"`
	BookingLink2  string                      `gorm:"type:text" json:"booking_link2"`
	CreatedAt     time.Time                   `json:"created_at"`
}

// NewGroupSession builds a session for the given activity name and
// participant name snapshots. Callers pass the names already in canonical
// sorted order. Locations and booking links are placeholders until venue
// suggestions exist server-side.
func NewGroupSession(activityName string, participants []string) *GroupSession {
	now := time.Now()
	return &GroupSession{
		ID:            uuid.New(),
		ActivityName:  activityName,
		Participants:  datatypes.NewJSONSlice(participants),
		ScheduledTime: now.Add(sessionLeadTime),
		CreatedAt:     now,
		Location1:     "Central Park",
		Location2:     "Downtown Recreation Center",
		BookingLink1:  "https://example.com/book/location1",
		BookingLink2:  "https://example.com/book/location2",
	}
}
