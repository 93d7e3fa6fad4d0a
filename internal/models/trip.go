package models

import "time"

// Destination is where a trip takes place. Coordinates are kept as strings
// exactly as entered; geocoding and weather lookups happen outside the core.
type Destination struct {
	Name string `json:"name"`
	Lat  string `json:"lat,omitempty"`
	Lon  string `json:"lon,omitempty"`
}

// Trip represents a planned group trip and owns all trip-scoped collections.
type Trip struct {
	// ID is the unique identifier for the trip (UUID format).
	ID string `json:"id"`

	// Name is the display name of the trip (e.g., "Tokyo 2026").
	Name string `json:"name"`

	Destination Destination `json:"destination"`

	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`

	Participants []Participant `json:"participants"`
	Activities   []Activity    `json:"activities"`
	Items        []Item        `json:"items"`
	Expenses     []Expense     `json:"expenses"`

	// CreatedAt is the Unix timestamp when the trip was created.
	CreatedAt int64 `json:"createdAt"`
}

// Days returns the inclusive number of days the trip spans.
// A trip whose end date precedes its start date has a duration of 0.
func (t *Trip) Days() int {
	if t.EndDate.Before(t.StartDate) {
		return 0
	}
	return int(t.EndDate.Sub(t.StartDate).Hours()/24) + 1
}

// Participant returns the participant with the given ID, or nil.
func (t *Trip) Participant(id string) *Participant {
	for i := range t.Participants {
		if t.Participants[i].ID == id {
			return &t.Participants[i]
		}
	}
	return nil
}

// HasParticipant reports whether the given ID is a current trip participant.
func (t *Trip) HasParticipant(id string) bool {
	return t.Participant(id) != nil
}
