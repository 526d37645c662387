package dto

import (
	"time"

	"github.com/google/uuid"
)

// ActivityResponse pairs an activity with its live interest count and
// whether the requesting user currently has an interest in it.
type ActivityResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Icon            string    `json:"icon"`
	Color           string    `json:"color"`
	Category        string    `json:"category"`
	MinParticipants int       `json:"min_participants"`
	X               float64   `json:"x"`
	Y               float64   `json:"y"`
	Z               float64   `json:"z"`
	InterestCount   int       `json:"interest_count"`
	Interested      bool      `json:"interested"`
}

type ToggleInterestResponse struct {
	Interested    bool `json:"interested"`
	InterestCount int  `json:"interest_count"`
}

type SessionResponse struct {
	ID            uuid.UUID `json:"id"`
	ActivityName  string    `json:"activity_name"`
	Participants  []string  `json:"participants"`
	ScheduledTime time.Time `json:"scheduled_time"`
	Location1     string    `json:"location1"`
	Location2     string    `json:"location2"`
	BookingLink1  string    `json:"booking_link1"`
	BookingLink2  string    `json:"booking_link2"`
	CreatedAt     time.Time `json:"created_at"`
}
