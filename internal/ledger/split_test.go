package ledger

import (
	"math"
	"testing"

	"github.com/tripsync/tripsync/internal/models"
)

func TestAmountOwedBy(t *testing.T) {
	tests := []struct {
		name          string
		expense       models.Expense
		participantID string
		want          float64
	}{
		{
			name: "equal split among three",
			expense: models.Expense{
				Amount:     90.0,
				SplitAmong: []string{"alice", "bob", "carol"},
			},
			participantID: "bob",
			want:          30.0,
		},
		{
			name: "custom amount wins over equal division",
			expense: models.Expense{
				Amount:             100.0,
				SplitAmong:         []string{"alice", "bob"},
				CustomSplitAmounts: map[string]float64{"alice": 70.0, "bob": 30.0},
			},
			participantID: "alice",
			want:          70.0,
		},
		{
			name: "custom amount returned even when not a sharer",
			expense: models.Expense{
				Amount:             100.0,
				SplitAmong:         []string{"alice"},
				CustomSplitAmounts: map[string]float64{"bob": 25.0},
			},
			participantID: "bob",
			want:          25.0,
		},
		{
			name: "non-participating id owes zero",
			expense: models.Expense{
				Amount:     60.0,
				SplitAmong: []string{"alice", "bob"},
			},
			participantID: "dave",
			want:          0,
		},
		{
			name: "empty sharer list owes zero",
			expense: models.Expense{
				Amount:     60.0,
				SplitAmong: nil,
			},
			participantID: "alice",
			want:          0,
		},
		{
			name: "uneven division",
			expense: models.Expense{
				Amount:     100.0,
				SplitAmong: []string{"alice", "bob", "carol"},
			},
			participantID: "carol",
			want:          100.0 / 3.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AmountOwedBy(&tt.expense, tt.participantID)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("AmountOwedBy() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEqualSplitSharesSumToAmount(t *testing.T) {
	tests := []struct {
		name    string
		amount  float64
		sharers []string
	}{
		{"three way 90", 90.0, []string{"alice", "bob", "carol"}},
		{"three way 100", 100.0, []string{"alice", "bob", "carol"}},
		{"seven way 51.37", 51.37, []string{"a", "b", "c", "d", "e", "f", "g"}},
		{"single sharer", 12.5, []string{"alice"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := models.Expense{Amount: tt.amount, SplitAmong: tt.sharers}
			sum := 0.0
			for _, id := range tt.sharers {
				sum += AmountOwedBy(&e, id)
			}
			epsilon := float64(len(tt.sharers)) * 1e-9
			if math.Abs(sum-tt.amount) > epsilon {
				t.Errorf("shares sum to %v, want %v", sum, tt.amount)
			}
		})
	}
}
