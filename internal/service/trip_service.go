// Package service implements the application operations on trips: CRUD for
// trips and their collections, the participant removal reconciler, and the
// expense ledger endpoints. Services are the only writers; each public
// operation loads the trip, mutates a copy, and persists it before returning,
// so a failed write never leaves partially-updated state behind.
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tripsync/tripsync/internal/models"
	"github.com/tripsync/tripsync/internal/storage"
)

// ErrNoCurrentTrip is returned by CurrentTrip when no trip is selected.
var ErrNoCurrentTrip = errors.New("no trip selected")

// TripService manages trips, participants, activities and packing items.
//
// The "currently selected trip" is held as an ID only; every read goes back
// to the store, so there is a single source of truth and no second in-memory
// copy to keep in sync.
type TripService struct {
	store         storage.Store
	currentTripID string
}

// NewTripService creates a new TripService with the given storage backend.
func NewTripService(store storage.Store) *TripService {
	return &TripService{store: store}
}

// CreateTrip persists a new trip. IDs for the trip and any pre-populated
// collection entries are generated by the store.
func (s *TripService) CreateTrip(ctx context.Context, trip *models.Trip) error {
	if err := s.store.CreateTrip(ctx, trip); err != nil {
		slog.Error("CreateTrip failed", "error", err)
		return err
	}
	slog.Info("Trip created", "trip_id", trip.ID, "name", trip.Name)
	return nil
}

// ListTrips returns all trips.
func (s *TripService) ListTrips(ctx context.Context) ([]*models.Trip, error) {
	return s.store.ListTrips(ctx)
}

// GetTrip returns one trip with all its collections.
func (s *TripService) GetTrip(ctx context.Context, tripID string) (*models.Trip, error) {
	return s.store.GetTrip(ctx, tripID)
}

// UpdateTrip replaces the stored trip.
func (s *TripService) UpdateTrip(ctx context.Context, trip *models.Trip) error {
	if err := s.store.UpdateTrip(ctx, trip); err != nil {
		slog.Error("UpdateTrip failed", "trip_id", trip.ID, "error", err)
		return err
	}
	return nil
}

// DeleteTrip removes a trip. Deleting the selected trip clears the selection.
func (s *TripService) DeleteTrip(ctx context.Context, tripID string) error {
	if err := s.store.DeleteTrip(ctx, tripID); err != nil {
		return err
	}
	if s.currentTripID == tripID {
		s.currentTripID = ""
	}
	slog.Info("Trip deleted", "trip_id", tripID)
	return nil
}

// SelectTrip marks a trip as the current one. The ID must exist.
func (s *TripService) SelectTrip(ctx context.Context, tripID string) error {
	if _, err := s.store.GetTrip(ctx, tripID); err != nil {
		return err
	}
	s.currentTripID = tripID
	return nil
}

// CurrentTrip returns the selected trip, freshly loaded from the store.
func (s *TripService) CurrentTrip(ctx context.Context) (*models.Trip, error) {
	if s.currentTripID == "" {
		return nil, ErrNoCurrentTrip
	}
	trip, err := s.store.GetTrip(ctx, s.currentTripID)
	if errors.Is(err, storage.ErrNotFound) {
		// Selection went stale (trip deleted out from under it).
		s.currentTripID = ""
		return nil, ErrNoCurrentTrip
	}
	return trip, err
}

// AddParticipant adds a person to the trip.
func (s *TripService) AddParticipant(ctx context.Context, tripID string, p models.Participant) (*models.Trip, error) {
	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	trip.Participants = append(trip.Participants, p)
	if err := s.store.UpdateTrip(ctx, trip); err != nil {
		return nil, err
	}
	return trip, nil
}

// UpdateParticipant replaces a participant's details. An unknown participant
// ID is a silent no-op.
func (s *TripService) UpdateParticipant(ctx context.Context, tripID string, p models.Participant) (*models.Trip, error) {
	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	for i := range trip.Participants {
		if trip.Participants[i].ID == p.ID {
			trip.Participants[i] = p
			if err := s.store.UpdateTrip(ctx, trip); err != nil {
				return nil, err
			}
			break
		}
	}
	return trip, nil
}

// RemoveParticipant removes a participant from the trip and reconciles every
// collection that references them:
//
//  1. the participant list itself,
//  2. every activity's participant list (activities persist even when empty),
//  3. item assignments, which revert to unassigned,
//  4. expenses: an expense paid by the removed participant is deleted
//     outright; otherwise the participant is stripped from SplitAmong and
//     CustomSplitAmounts without altering the remaining custom amounts, even
//     if that leaves the split-sum invariant violated or the sharer list
//     empty. Their previously owed share silently leaves the ledger; it is
//     not redistributed.
//
// Removing an unknown participant ID is a no-op, so the operation is
// idempotent.
func (s *TripService) RemoveParticipant(ctx context.Context, tripID, participantID string) (*models.Trip, error) {
	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	found := false
	participants := trip.Participants[:0]
	for _, p := range trip.Participants {
		if p.ID == participantID {
			found = true
			continue
		}
		participants = append(participants, p)
	}
	if !found {
		return trip, nil
	}
	trip.Participants = participants

	for i := range trip.Activities {
		a := &trip.Activities[i]
		ids := a.ParticipantIDs[:0]
		for _, id := range a.ParticipantIDs {
			if id != participantID {
				ids = append(ids, id)
			}
		}
		a.ParticipantIDs = ids
	}

	for i := range trip.Items {
		if trip.Items[i].AssignedTo == participantID {
			trip.Items[i].AssignedTo = ""
		}
	}

	expenses := trip.Expenses[:0]
	for _, e := range trip.Expenses {
		if e.PaidBy == participantID {
			// A paid-for expense cannot exist without its payer.
			continue
		}
		sharers := make([]string, 0, len(e.SplitAmong))
		for _, id := range e.SplitAmong {
			if id != participantID {
				sharers = append(sharers, id)
			}
		}
		e.SplitAmong = sharers
		delete(e.CustomSplitAmounts, participantID)
		expenses = append(expenses, e)
	}
	trip.Expenses = expenses

	if err := s.store.UpdateTrip(ctx, trip); err != nil {
		return nil, err
	}
	slog.Info("Participant removed", "trip_id", tripID, "participant_id", participantID)
	return trip, nil
}

// AddActivity appends an activity to the trip's schedule.
func (s *TripService) AddActivity(ctx context.Context, tripID string, a models.Activity) (*models.Trip, error) {
	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	trip.Activities = append(trip.Activities, a)
	if err := s.store.UpdateTrip(ctx, trip); err != nil {
		return nil, err
	}
	return trip, nil
}

// UpdateActivity replaces an activity; unknown activity IDs no-op.
func (s *TripService) UpdateActivity(ctx context.Context, tripID string, a models.Activity) (*models.Trip, error) {
	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	for i := range trip.Activities {
		if trip.Activities[i].ID == a.ID {
			trip.Activities[i] = a
			if err := s.store.UpdateTrip(ctx, trip); err != nil {
				return nil, err
			}
			break
		}
	}
	return trip, nil
}

// DeleteActivity removes an activity; unknown activity IDs no-op.
func (s *TripService) DeleteActivity(ctx context.Context, tripID, activityID string) (*models.Trip, error) {
	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	activities := trip.Activities[:0]
	changed := false
	for _, a := range trip.Activities {
		if a.ID == activityID {
			changed = true
			continue
		}
		activities = append(activities, a)
	}
	trip.Activities = activities
	if changed {
		if err := s.store.UpdateTrip(ctx, trip); err != nil {
			return nil, err
		}
	}
	return trip, nil
}

// AddItem appends a packing item.
func (s *TripService) AddItem(ctx context.Context, tripID string, item models.Item) (*models.Trip, error) {
	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.Status == "" {
		item.Status = models.ItemNeeded
	}
	trip.Items = append(trip.Items, item)
	if err := s.store.UpdateTrip(ctx, trip); err != nil {
		return nil, err
	}
	return trip, nil
}

// UpdateItem replaces a packing item; unknown item IDs no-op.
func (s *TripService) UpdateItem(ctx context.Context, tripID string, item models.Item) (*models.Trip, error) {
	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	for i := range trip.Items {
		if trip.Items[i].ID == item.ID {
			trip.Items[i] = item
			if err := s.store.UpdateTrip(ctx, trip); err != nil {
				return nil, err
			}
			break
		}
	}
	return trip, nil
}

// DeleteItem removes a packing item; unknown item IDs no-op.
func (s *TripService) DeleteItem(ctx context.Context, tripID, itemID string) (*models.Trip, error) {
	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	items := trip.Items[:0]
	changed := false
	for _, item := range trip.Items {
		if item.ID == itemID {
			changed = true
			continue
		}
		items = append(items, item)
	}
	trip.Items = items
	if changed {
		if err := s.store.UpdateTrip(ctx, trip); err != nil {
			return nil, err
		}
	}
	return trip, nil
}
