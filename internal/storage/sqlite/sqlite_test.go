package sqlite

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/tripsync/tripsync/internal/models"
	"github.com/tripsync/tripsync/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testTrip() *models.Trip {
	start := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	return &models.Trip{
		Name: "Tokyo 2026",
		Destination: models.Destination{
			Name: "Tokyo",
			Lat:  "35.6762",
			Lon:  "139.6503",
		},
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 6),
		Participants: []models.Participant{
			{ID: "alice", Name: "Alice", Email: "alice@example.com"},
			{ID: "bob", Name: "Bob"},
			{ID: "carol", Name: "Carol"},
		},
		Activities: []models.Activity{{
			Title:          "Shibuya crossing",
			Date:           start.AddDate(0, 0, 1),
			StartTime:      start.AddDate(0, 0, 1).Add(10 * time.Hour),
			EndTime:        start.AddDate(0, 0, 1).Add(12 * time.Hour),
			ParticipantIDs: []string{"alice", "bob"},
			Location:       "Shibuya",
			Emoji:          "🚶",
			Notes:          "meet at Hachiko",
		}},
		Items: []models.Item{
			{Name: "Power adapter", Quantity: 2, AssignedTo: "bob", Status: models.ItemNeeded},
			{Name: "First aid kit", Quantity: 1, Status: models.ItemPacked},
		},
		Expenses: []models.Expense{
			{
				Title:      "Dinner",
				Amount:     90.0,
				Date:       start.AddDate(0, 0, 1),
				PaidBy:     "alice",
				SplitAmong: []string{"alice", "bob", "carol"},
				Category:   models.CategoryFood,
			},
			{
				Title:      "Hotel",
				Amount:     100.0,
				Date:       start,
				PaidBy:     "alice",
				SplitAmong: []string{"alice", "bob", "carol"},
				CustomSplitAmounts: map[string]float64{
					"alice": 50.0, "bob": 30.0, "carol": 20.0,
				},
				Category: models.CategoryAccommodation,
				Notes:    "two rooms",
				Receipt:  []byte{0x89, 0x50, 0x4e, 0x47},
			},
		},
	}
}

func TestSQLiteStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateTrip generates IDs", func(t *testing.T) {
		trip := testTrip()
		if err := store.CreateTrip(ctx, trip); err != nil {
			t.Fatalf("CreateTrip failed: %v", err)
		}
		if trip.ID == "" {
			t.Error("Expected trip ID to be generated")
		}
		if trip.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
		for _, a := range trip.Activities {
			if a.ID == "" {
				t.Error("Expected activity ID to be generated")
			}
		}
		for _, e := range trip.Expenses {
			if e.ID == "" {
				t.Error("Expected expense ID to be generated")
			}
		}
	})

	t.Run("GetTrip round-trips all collections", func(t *testing.T) {
		original := testTrip()
		if err := store.CreateTrip(ctx, original); err != nil {
			t.Fatalf("CreateTrip failed: %v", err)
		}

		got, err := store.GetTrip(ctx, original.ID)
		if err != nil {
			t.Fatalf("GetTrip failed: %v", err)
		}

		if got.Name != original.Name {
			t.Errorf("name = %q, want %q", got.Name, original.Name)
		}
		if got.Destination != original.Destination {
			t.Errorf("destination = %+v, want %+v", got.Destination, original.Destination)
		}
		if !got.StartDate.Equal(original.StartDate) || !got.EndDate.Equal(original.EndDate) {
			t.Errorf("dates = %v..%v, want %v..%v",
				got.StartDate, got.EndDate, original.StartDate, original.EndDate)
		}
		if len(got.Participants) != 3 {
			t.Fatalf("participants = %d, want 3", len(got.Participants))
		}
		if got.Participants[0].Email != "alice@example.com" {
			t.Errorf("participant email = %q, want alice@example.com", got.Participants[0].Email)
		}
		if len(got.Activities) != 1 {
			t.Fatalf("activities = %d, want 1", len(got.Activities))
		}
		if got.Activities[0].Notes != "meet at Hachiko" {
			t.Errorf("activity notes = %q", got.Activities[0].Notes)
		}
		if len(got.Activities[0].ParticipantIDs) != 2 {
			t.Errorf("activity participants = %d, want 2", len(got.Activities[0].ParticipantIDs))
		}
		if len(got.Items) != 2 {
			t.Fatalf("items = %d, want 2", len(got.Items))
		}
		if len(got.Expenses) != 2 {
			t.Fatalf("expenses = %d, want 2", len(got.Expenses))
		}

		var hotel *models.Expense
		for i := range got.Expenses {
			if got.Expenses[i].Title == "Hotel" {
				hotel = &got.Expenses[i]
			}
		}
		if hotel == nil {
			t.Fatal("hotel expense missing")
		}
		if len(hotel.SplitAmong) != 3 {
			t.Errorf("hotel sharers = %d, want 3", len(hotel.SplitAmong))
		}
		if len(hotel.CustomSplitAmounts) != 3 {
			t.Fatalf("hotel custom splits = %d, want 3", len(hotel.CustomSplitAmounts))
		}
		if math.Abs(hotel.CustomSplitAmounts["bob"]-30.0) > 0.001 {
			t.Errorf("bob's custom split = %v, want 30.0", hotel.CustomSplitAmounts["bob"])
		}
		if string(hotel.Receipt) != string([]byte{0x89, 0x50, 0x4e, 0x47}) {
			t.Errorf("receipt = %v, want original bytes", hotel.Receipt)
		}
		if hotel.Notes != "two rooms" {
			t.Errorf("notes = %q, want 'two rooms'", hotel.Notes)
		}
	})

	t.Run("GetTrip unknown id returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetTrip(ctx, "missing")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("UpdateTrip rebuilds collections", func(t *testing.T) {
		trip := testTrip()
		if err := store.CreateTrip(ctx, trip); err != nil {
			t.Fatalf("CreateTrip failed: %v", err)
		}

		trip.Name = "Tokyo, rescheduled"
		trip.Participants = trip.Participants[:2] // drop carol
		trip.Expenses = trip.Expenses[:1]
		trip.Items = nil
		if err := store.UpdateTrip(ctx, trip); err != nil {
			t.Fatalf("UpdateTrip failed: %v", err)
		}

		got, err := store.GetTrip(ctx, trip.ID)
		if err != nil {
			t.Fatalf("GetTrip failed: %v", err)
		}
		if got.Name != "Tokyo, rescheduled" {
			t.Errorf("name = %q", got.Name)
		}
		if len(got.Participants) != 2 {
			t.Errorf("participants = %d, want 2", len(got.Participants))
		}
		if len(got.Expenses) != 1 {
			t.Errorf("expenses = %d, want 1", len(got.Expenses))
		}
		if len(got.Items) != 0 {
			t.Errorf("items = %d, want 0", len(got.Items))
		}
	})

	t.Run("UpdateTrip unknown id returns ErrNotFound", func(t *testing.T) {
		trip := testTrip()
		trip.ID = "missing"
		err := store.UpdateTrip(ctx, trip)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("duplicate reference ids collapse to one row", func(t *testing.T) {
		trip := testTrip()
		trip.Activities[0].ParticipantIDs = []string{"alice", "alice", "bob"}
		trip.Expenses[0].SplitAmong = []string{"alice", "alice", "bob", "carol"}
		if err := store.CreateTrip(ctx, trip); err != nil {
			t.Fatalf("CreateTrip failed: %v", err)
		}

		got, err := store.GetTrip(ctx, trip.ID)
		if err != nil {
			t.Fatalf("GetTrip failed: %v", err)
		}
		if len(got.Activities[0].ParticipantIDs) != 2 {
			t.Errorf("activity participants = %v, want alice and bob once each",
				got.Activities[0].ParticipantIDs)
		}
		for _, e := range got.Expenses {
			if e.ID == trip.Expenses[0].ID && len(e.SplitAmong) != 3 {
				t.Errorf("sharers = %v, want 3 distinct", e.SplitAmong)
			}
		}
	})

	t.Run("DeleteTrip removes trip and children", func(t *testing.T) {
		trip := testTrip()
		if err := store.CreateTrip(ctx, trip); err != nil {
			t.Fatalf("CreateTrip failed: %v", err)
		}
		if err := store.DeleteTrip(ctx, trip.ID); err != nil {
			t.Fatalf("DeleteTrip failed: %v", err)
		}
		if _, err := store.GetTrip(ctx, trip.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
		if err := store.DeleteTrip(ctx, trip.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound on second delete, got %v", err)
		}
	})
}

func TestListTrips(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := testTrip()
	first.CreatedAt = 100
	second := testTrip()
	second.CreatedAt = 200
	for _, trip := range []*models.Trip{first, second} {
		if err := store.CreateTrip(ctx, trip); err != nil {
			t.Fatalf("CreateTrip failed: %v", err)
		}
	}

	trips, err := store.ListTrips(ctx)
	if err != nil {
		t.Fatalf("ListTrips failed: %v", err)
	}
	if len(trips) != 2 {
		t.Fatalf("expected 2 trips, got %d", len(trips))
	}
	// Newest first
	if trips[0].ID != second.ID {
		t.Errorf("trips[0] = %s, want %s (newest first)", trips[0].ID, second.ID)
	}
}
