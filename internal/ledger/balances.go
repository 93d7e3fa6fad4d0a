package ledger

import (
	"sort"
	"strings"

	"github.com/tripsync/tripsync/internal/models"
)

// Balance is one participant's net position across all trip expenses.
// Positive means the group owes them money; negative means they owe.
type Balance struct {
	ParticipantID   string  `json:"participantId"`
	ParticipantName string  `json:"participantName"`
	Balance         float64 `json:"balance"`
}

// ComputeNetBalances folds every expense of the trip into a net balance per
// current participant: the payer is credited the full amount, and each sharer
// is debited their share per AmountOwedBy.
//
// Sharer IDs that no longer match a current participant are skipped, so their
// share simply drops out of the computation. The share is neither
// redistributed among the remaining sharers nor refunded to the payer; the
// totals may then no longer cancel out. This mirrors how the application has
// always behaved after a participant leaves.
//
// Expense order never affects the result. The output is sorted by display
// name, case-insensitive, for deterministic presentation.
func ComputeNetBalances(trip *models.Trip) []Balance {
	balances := make(map[string]float64, len(trip.Participants))
	for _, p := range trip.Participants {
		balances[p.ID] = 0
	}

	for i := range trip.Expenses {
		e := &trip.Expenses[i]
		balances[e.PaidBy] += e.Amount
		for _, sharerID := range e.SplitAmong {
			balances[sharerID] -= AmountOwedBy(e, sharerID)
		}
	}

	out := make([]Balance, 0, len(trip.Participants))
	for _, p := range trip.Participants {
		out = append(out, Balance{
			ParticipantID:   p.ID,
			ParticipantName: p.Name,
			Balance:         balances[p.ID],
		})
	}
	sort.Slice(out, func(i, j int) bool {
		li, lj := strings.ToLower(out[i].ParticipantName), strings.ToLower(out[j].ParticipantName)
		if li != lj {
			return li < lj
		}
		return out[i].ParticipantID < out[j].ParticipantID
	})
	return out
}
