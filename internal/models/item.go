package models

// ItemStatus tracks a packing-list entry through its lifecycle.
type ItemStatus string

const (
	ItemNeeded    ItemStatus = "needed"
	ItemPacked    ItemStatus = "packed"
	ItemPurchased ItemStatus = "purchased"
)

// Item is a packing-list entry, optionally assigned to one participant.
type Item struct {
	// ID is the unique identifier for the item (UUID format).
	ID string `json:"id"`

	Name     string `json:"name"`
	Quantity int    `json:"quantity"`

	// AssignedTo is the participant responsible for the item, or empty for
	// unassigned. Removing a participant clears their assignments.
	AssignedTo string `json:"assignedTo,omitempty"`

	Status ItemStatus `json:"status"`
}
