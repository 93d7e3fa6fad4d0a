package models

import "time"

// Activity is a scheduled event during a trip. Activities share participant
// IDs with the trip but play no part in the expense math.
type Activity struct {
	// ID is the unique identifier for the activity (UUID format).
	ID string `json:"id"`

	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`

	// ParticipantIDs lists who is attending. An activity persists even when
	// everyone has been removed from it.
	ParticipantIDs []string `json:"participantIds"`

	Location string `json:"location,omitempty"`
	Emoji    string `json:"emoji,omitempty"`
	Notes    string `json:"notes,omitempty"`
}
