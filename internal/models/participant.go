package models

// Participant represents one person on a trip.
//
// Identity is the ID (UUID format); names and emails are free text and may
// duplicate across participants.
type Participant struct {
	// ID is the unique identifier for the participant (UUID format).
	ID string `json:"id"`

	// Name is the display name shown in balances and settlements.
	Name string `json:"name"`

	// Email is optional contact information; the core never interprets it.
	Email string `json:"email,omitempty"`
}
