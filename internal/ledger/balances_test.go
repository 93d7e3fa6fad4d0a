package ledger

import (
	"math"
	"testing"

	"github.com/tripsync/tripsync/internal/models"
)

func tripWithParticipants(names ...string) *models.Trip {
	trip := &models.Trip{ID: "trip-1", Name: "Test Trip"}
	for _, name := range names {
		trip.Participants = append(trip.Participants, models.Participant{
			ID:   "p-" + name,
			Name: name,
		})
	}
	return trip
}

func balanceByName(t *testing.T, balances []Balance, name string) Balance {
	t.Helper()
	for _, b := range balances {
		if b.ParticipantName == name {
			return b
		}
	}
	t.Fatalf("no balance for %q", name)
	return Balance{}
}

func TestComputeNetBalances(t *testing.T) {
	tests := []struct {
		name         string
		trip         func() *models.Trip
		validateFunc func(t *testing.T, balances []Balance)
	}{
		{
			name: "equal split dinner",
			trip: func() *models.Trip {
				trip := tripWithParticipants("Alice", "Bob", "Carol")
				trip.Expenses = []models.Expense{{
					ID:         "e1",
					Title:      "Dinner",
					Amount:     90.0,
					PaidBy:     "p-Alice",
					SplitAmong: []string{"p-Alice", "p-Bob", "p-Carol"},
				}}
				return trip
			},
			validateFunc: func(t *testing.T, balances []Balance) {
				wants := map[string]float64{"Alice": 60.0, "Bob": -30.0, "Carol": -30.0}
				for name, want := range wants {
					got := balanceByName(t, balances, name).Balance
					if math.Abs(got-want) > 0.001 {
						t.Errorf("%s balance = %v, want %v", name, got, want)
					}
				}
			},
		},
		{
			name: "custom split",
			trip: func() *models.Trip {
				trip := tripWithParticipants("Alice", "Bob", "Carol")
				trip.Expenses = []models.Expense{{
					ID:         "e1",
					Title:      "Hotel",
					Amount:     100.0,
					PaidBy:     "p-Alice",
					SplitAmong: []string{"p-Alice", "p-Bob", "p-Carol"},
					CustomSplitAmounts: map[string]float64{
						"p-Alice": 50.0, "p-Bob": 30.0, "p-Carol": 20.0,
					},
				}}
				return trip
			},
			validateFunc: func(t *testing.T, balances []Balance) {
				wants := map[string]float64{"Alice": 50.0, "Bob": -30.0, "Carol": -20.0}
				for name, want := range wants {
					got := balanceByName(t, balances, name).Balance
					if math.Abs(got-want) > 0.001 {
						t.Errorf("%s balance = %v, want %v", name, got, want)
					}
				}
			},
		},
		{
			name: "removed sharer's share drops out of the ledger",
			trip: func() *models.Trip {
				// Bob is gone from the roster but still referenced by the
				// expense; his 30.00 share vanishes rather than being
				// redistributed, leaving the totals unbalanced.
				trip := tripWithParticipants("Alice", "Carol")
				trip.Expenses = []models.Expense{{
					ID:         "e1",
					Title:      "Dinner",
					Amount:     90.0,
					PaidBy:     "p-Alice",
					SplitAmong: []string{"p-Alice", "p-Bob", "p-Carol"},
				}}
				return trip
			},
			validateFunc: func(t *testing.T, balances []Balance) {
				if len(balances) != 2 {
					t.Fatalf("expected 2 balances, got %d", len(balances))
				}
				alice := balanceByName(t, balances, "Alice").Balance
				carol := balanceByName(t, balances, "Carol").Balance
				if math.Abs(alice-60.0) > 0.001 {
					t.Errorf("Alice balance = %v, want 60.0", alice)
				}
				if math.Abs(carol-(-30.0)) > 0.001 {
					t.Errorf("Carol balance = %v, want -30.0", carol)
				}
			},
		},
		{
			name: "multiple expenses accumulate commutatively",
			trip: func() *models.Trip {
				trip := tripWithParticipants("Alice", "Bob")
				trip.Expenses = []models.Expense{
					{ID: "e1", Title: "Taxi", Amount: 40.0, PaidBy: "p-Alice",
						SplitAmong: []string{"p-Alice", "p-Bob"}},
					{ID: "e2", Title: "Lunch", Amount: 20.0, PaidBy: "p-Bob",
						SplitAmong: []string{"p-Alice", "p-Bob"}},
				}
				return trip
			},
			validateFunc: func(t *testing.T, balances []Balance) {
				alice := balanceByName(t, balances, "Alice").Balance
				bob := balanceByName(t, balances, "Bob").Balance
				if math.Abs(alice-10.0) > 0.001 {
					t.Errorf("Alice balance = %v, want 10.0", alice)
				}
				if math.Abs(bob-(-10.0)) > 0.001 {
					t.Errorf("Bob balance = %v, want -10.0", bob)
				}
			},
		},
		{
			name: "no expenses yields zero balances for everyone",
			trip: func() *models.Trip {
				return tripWithParticipants("Alice", "Bob")
			},
			validateFunc: func(t *testing.T, balances []Balance) {
				if len(balances) != 2 {
					t.Fatalf("expected 2 balances, got %d", len(balances))
				}
				for _, b := range balances {
					if b.Balance != 0 {
						t.Errorf("%s balance = %v, want 0", b.ParticipantName, b.Balance)
					}
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validateFunc(t, ComputeNetBalances(tt.trip()))
		})
	}
}

func TestComputeNetBalancesSortedByName(t *testing.T) {
	trip := tripWithParticipants("carol", "Alice", "bob")
	balances := ComputeNetBalances(trip)

	want := []string{"Alice", "bob", "carol"}
	if len(balances) != len(want) {
		t.Fatalf("expected %d balances, got %d", len(want), len(balances))
	}
	for i, name := range want {
		if balances[i].ParticipantName != name {
			t.Errorf("balances[%d] = %q, want %q", i, balances[i].ParticipantName, name)
		}
	}
}

func TestComputeNetBalancesSumToZero(t *testing.T) {
	// When every referenced id is a current participant, credits and debits
	// cancel out.
	trip := tripWithParticipants("Alice", "Bob", "Carol", "Dave")
	trip.Expenses = []models.Expense{
		{ID: "e1", Amount: 100.0, PaidBy: "p-Alice",
			SplitAmong: []string{"p-Alice", "p-Bob", "p-Carol"}},
		{ID: "e2", Amount: 51.37, PaidBy: "p-Bob",
			SplitAmong: []string{"p-Bob", "p-Carol", "p-Dave"}},
		{ID: "e3", Amount: 75.0, PaidBy: "p-Carol",
			SplitAmong: []string{"p-Alice", "p-Dave"},
			CustomSplitAmounts: map[string]float64{
				"p-Alice": 25.0, "p-Dave": 50.0,
			}},
	}

	sum := 0.0
	for _, b := range ComputeNetBalances(trip) {
		sum += b.Balance
	}
	tolerance := models.SplitTolerance * float64(len(trip.Participants))
	if math.Abs(sum) > tolerance {
		t.Errorf("balances sum to %v, want ~0 (tolerance %v)", sum, tolerance)
	}
}
