package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tripsync/tripsync/internal/ledger"
	"github.com/tripsync/tripsync/internal/models"
	"github.com/tripsync/tripsync/internal/storage"
)

// ExpenseService implements the expense mutators and the ledger read
// endpoints (net balances and the settlement plan).
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates a new ExpenseService with the given storage
// backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// AddExpense validates and appends an expense to the trip. Validation runs
// against the current participants before anything is written; an invalid
// expense is rejected with a descriptive sentinel and never persisted.
func (s *ExpenseService) AddExpense(ctx context.Context, tripID string, e *models.Expense) (*models.Trip, error) {
	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if err := e.Validate(trip.Participants); err != nil {
		slog.Warn("AddExpense rejected", "trip_id", tripID, "error", err)
		return nil, err
	}
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	trip.Expenses = append(trip.Expenses, *e)
	if err := s.store.UpdateTrip(ctx, trip); err != nil {
		return nil, err
	}
	slog.Info("Expense added", "trip_id", tripID, "expense_id", e.ID, "amount", e.Amount)
	return trip, nil
}

// UpdateExpense validates and replaces an expense. An unknown expense ID is a
// silent no-op; the trip is returned unchanged.
func (s *ExpenseService) UpdateExpense(ctx context.Context, tripID string, e *models.Expense) (*models.Trip, error) {
	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if err := e.Validate(trip.Participants); err != nil {
		slog.Warn("UpdateExpense rejected", "trip_id", tripID, "expense_id", e.ID, "error", err)
		return nil, err
	}
	for i := range trip.Expenses {
		if trip.Expenses[i].ID == e.ID {
			trip.Expenses[i] = *e
			if err := s.store.UpdateTrip(ctx, trip); err != nil {
				return nil, err
			}
			break
		}
	}
	return trip, nil
}

// DeleteExpense removes an expense; unknown expense IDs no-op.
func (s *ExpenseService) DeleteExpense(ctx context.Context, tripID, expenseID string) (*models.Trip, error) {
	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	expenses := trip.Expenses[:0]
	changed := false
	for _, e := range trip.Expenses {
		if e.ID == expenseID {
			changed = true
			continue
		}
		expenses = append(expenses, e)
	}
	trip.Expenses = expenses
	if changed {
		if err := s.store.UpdateTrip(ctx, trip); err != nil {
			return nil, err
		}
		slog.Info("Expense deleted", "trip_id", tripID, "expense_id", expenseID)
	}
	return trip, nil
}

// Balances returns the net balance per current participant, sorted by name.
func (s *ExpenseService) Balances(ctx context.Context, tripID string) ([]ledger.Balance, error) {
	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	return ledger.ComputeNetBalances(trip), nil
}

// Settlements returns the settlement plan for the trip.
func (s *ExpenseService) Settlements(ctx context.Context, tripID string) (ledger.Plan, error) {
	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return ledger.Plan{}, err
	}
	return ledger.PlanSettlements(trip), nil
}
