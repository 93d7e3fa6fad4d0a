// Package ledger implements the expense math for a trip: per-expense split
// calculation, net balance aggregation, and greedy settlement planning.
//
// All amounts are float64 with a two-decimal monetary tolerance
// (models.SplitTolerance); anything within 0.01 of zero is treated as
// settled.
package ledger

import "github.com/tripsync/tripsync/internal/models"

// AmountOwedBy returns the share of the expense owed by the given
// participant.
//
// A custom split entry wins outright and is returned verbatim, regardless of
// SplitAmong membership. Otherwise a participant listed in SplitAmong owes an
// equal division of the total. Anyone else owes 0 — a non-participating ID is
// a permissive default, not an error.
func AmountOwedBy(e *models.Expense, participantID string) float64 {
	if amount, ok := e.CustomSplitAmounts[participantID]; ok {
		return amount
	}
	if len(e.SplitAmong) == 0 {
		return 0
	}
	for _, id := range e.SplitAmong {
		if id == participantID {
			return e.Amount / float64(len(e.SplitAmong))
		}
	}
	return 0
}
