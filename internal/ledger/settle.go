package ledger

import (
	"sort"

	"github.com/tripsync/tripsync/internal/models"
)

// Suggestion is one proposed payment that moves both parties toward zero.
type Suggestion struct {
	FromID   string  `json:"fromId"`
	FromName string  `json:"fromName"`
	ToID     string  `json:"toId"`
	ToName   string  `json:"toName"`
	Amount   float64 `json:"amount"`
}

// PlanStatus distinguishes an empty suggestion list that means "nothing to
// settle" from one that means "no expenses recorded at all".
type PlanStatus string

const (
	// StatusNoExpenses: the trip has no expenses, so there is nothing to plan.
	StatusNoExpenses PlanStatus = "no_expenses"
	// StatusSettled: expenses exist but every balance is within tolerance of zero.
	StatusSettled PlanStatus = "settled"
	// StatusOpen: outstanding balances remain; see Suggestions.
	StatusOpen PlanStatus = "open"
)

// Plan is the settlement view for one trip.
type Plan struct {
	Status      PlanStatus   `json:"status"`
	Balances    []Balance    `json:"balances"`
	Suggestions []Suggestion `json:"suggestions,omitempty"`
}

// SuggestSettlements produces an ordered list of pairwise payments that,
// applied in order, bring every balance within tolerance of zero.
//
// Greedy and deterministic: each round sorts the outstanding balances
// ascending by (balance, name, id), pairs the most negative with the most
// positive, and settles min(|debt|, credit). Each round
// zeroes out at least one side, so the loop always terminates. The plan is
// not guaranteed to be the theoretical minimum number of payments, but it is
// stable for a given input.
func SuggestSettlements(balances []Balance) []Suggestion {
	working := make([]Balance, 0, len(balances))
	for _, b := range balances {
		if b.Balance > models.SplitTolerance || b.Balance < -models.SplitTolerance {
			working = append(working, b)
		}
	}

	var suggestions []Suggestion
	for {
		sort.Slice(working, func(i, j int) bool {
			if working[i].Balance != working[j].Balance {
				return working[i].Balance < working[j].Balance
			}
			if working[i].ParticipantName != working[j].ParticipantName {
				return working[i].ParticipantName < working[j].ParticipantName
			}
			return working[i].ParticipantID < working[j].ParticipantID
		})

		owerIdx, owedIdx := -1, -1
		for i := range working {
			if working[i].Balance < -0.009 {
				owerIdx = i
				break
			}
		}
		for i := len(working) - 1; i >= 0; i-- {
			if working[i].Balance > 0.009 {
				owedIdx = i
				break
			}
		}
		if owerIdx == -1 || owedIdx == -1 {
			// Remaining imbalance, if any, is left unresolved; it cannot
			// occur when the balances sum to ~0.
			break
		}

		ower, owed := &working[owerIdx], &working[owedIdx]
		settle := min(-ower.Balance, owed.Balance)
		if settle > models.SplitTolerance {
			suggestions = append(suggestions, Suggestion{
				FromID:   ower.ParticipantID,
				FromName: ower.ParticipantName,
				ToID:     owed.ParticipantID,
				ToName:   owed.ParticipantName,
				Amount:   settle,
			})
		}

		ower.Balance += settle
		owed.Balance -= settle

		next := working[:0]
		for _, b := range working {
			if b.Balance > models.SplitTolerance || b.Balance < -models.SplitTolerance {
				next = append(next, b)
			}
		}
		working = next
	}
	return suggestions
}

// PlanSettlements computes the full settlement view for a trip, including the
// status sentinel that distinguishes "already settled" from "no expenses".
func PlanSettlements(trip *models.Trip) Plan {
	balances := ComputeNetBalances(trip)
	if len(trip.Expenses) == 0 {
		return Plan{Status: StatusNoExpenses, Balances: balances}
	}

	suggestions := SuggestSettlements(balances)
	if len(suggestions) == 0 {
		allZero := true
		for _, b := range balances {
			if b.Balance > models.SplitTolerance || b.Balance < -models.SplitTolerance {
				allZero = false
				break
			}
		}
		if allZero {
			return Plan{Status: StatusSettled, Balances: balances}
		}
	}
	return Plan{Status: StatusOpen, Balances: balances, Suggestions: suggestions}
}
