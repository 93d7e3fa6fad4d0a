package models

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// SplitTolerance is the two-decimal monetary tolerance used everywhere a
// floating-point amount is compared: custom-split sum validation, balance
// filtering, and settlement rounding.
const SplitTolerance = 0.01

// ExpenseCategory classifies an expense for display and reporting.
type ExpenseCategory string

const (
	CategoryAccommodation  ExpenseCategory = "accommodation"
	CategoryTransportation ExpenseCategory = "transportation"
	CategoryFood           ExpenseCategory = "food"
	CategoryActivities     ExpenseCategory = "activities"
	CategoryOther          ExpenseCategory = "other"
)

// Validation sentinels. Each maps to one rejection reason surfaced to the
// caller before an expense is committed.
var (
	ErrEmptyTitle           = errors.New("expense title is required")
	ErrAmountNotPositive    = errors.New("expense amount must be greater than zero")
	ErrNoPayer              = errors.New("a payer must be selected")
	ErrPayerNotParticipant  = errors.New("payer must be a current trip participant")
	ErrNoSharers            = errors.New("at least one sharer must be selected")
	ErrNegativeCustomAmount = errors.New("custom split amounts cannot be negative")
	ErrSplitSumMismatch     = errors.New("custom split amounts must sum to the expense total")
)

// Expense represents a shared cost fronted by one participant.
//
// When CustomSplitAmounts is absent (or empty), the amount divides evenly
// among SplitAmong. When present, each entry is that participant's exact
// share and must sum to Amount within SplitTolerance at write time. The
// invariant is enforced on create/update only; participant removal may leave
// it violated (see the removal reconciler), and that is deliberate.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	Title  string    `json:"title"`
	Amount float64   `json:"amount"`
	Date   time.Time `json:"date"`

	// PaidBy is the participant who fronted the money. It must reference a
	// current participant at creation time but may dangle afterwards.
	PaidBy string `json:"paidBy"`

	// SplitAmong is the set of participant IDs sharing the cost. Order is
	// irrelevant and duplicates are not meaningful.
	SplitAmong []string `json:"splitAmong"`

	// CustomSplitAmounts maps participant ID to an explicit share, present
	// only when the expense is split unequally.
	CustomSplitAmounts map[string]float64 `json:"customSplitAmounts,omitempty"`

	Category ExpenseCategory `json:"category,omitempty"`
	Notes    string          `json:"notes,omitempty"`

	// Receipt is an opaque attachment (e.g. a photo); the core never
	// interprets it.
	Receipt []byte `json:"receipt,omitempty"`
}

// SharerCount returns the number of participants sharing the expense.
func (e *Expense) SharerCount() int {
	return len(e.SplitAmong)
}

// HasCustomSplit reports whether the expense carries explicit per-person
// amounts. An empty-but-present map counts as absent.
func (e *Expense) HasCustomSplit() bool {
	return len(e.CustomSplitAmounts) > 0
}

// Validate checks the expense against the write-time invariants, given the
// current trip participants. It returns the first violated sentinel, wrapped
// with detail where useful. A valid expense may still hold stale sharer IDs;
// only the payer is required to be current. Duplicate sharer IDs are collapsed
// in place; a duplicate never carries an extra share.
func (e *Expense) Validate(participants []Participant) error {
	if strings.TrimSpace(e.Title) == "" {
		return ErrEmptyTitle
	}
	if e.Amount <= 0 {
		return ErrAmountNotPositive
	}
	if e.PaidBy == "" {
		return ErrNoPayer
	}
	payerKnown := false
	for _, p := range participants {
		if p.ID == e.PaidBy {
			payerKnown = true
			break
		}
	}
	if !payerKnown {
		return ErrPayerNotParticipant
	}
	if len(e.SplitAmong) == 0 {
		return ErrNoSharers
	}
	seen := make(map[string]struct{}, len(e.SplitAmong))
	sharers := e.SplitAmong[:0]
	for _, id := range e.SplitAmong {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		sharers = append(sharers, id)
	}
	e.SplitAmong = sharers
	if e.HasCustomSplit() {
		sum := 0.0
		for _, amount := range e.CustomSplitAmounts {
			if amount < 0 {
				return ErrNegativeCustomAmount
			}
			sum += amount
		}
		if math.Abs(sum-e.Amount) > SplitTolerance {
			return fmt.Errorf("%w: amounts sum to %.2f, expense total is %.2f",
				ErrSplitSumMismatch, sum, e.Amount)
		}
	}
	return nil
}
