package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tripsync/tripsync/internal/models"
)

// insertExpense writes one expense with its sharers and custom split rows.
func insertExpense(ctx context.Context, tx *sql.Tx, tripID string, e *models.Expense) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.Category == "" {
		e.Category = models.CategoryOther
	}
	var notes interface{}
	if e.Notes != "" {
		notes = e.Notes
	}
	var receipt interface{}
	if len(e.Receipt) > 0 {
		receipt = e.Receipt
	}

	_, err := tx.ExecContext(ctx,
		`INSERT INTO expenses (id, trip_id, title, amount, date, paid_by, category, notes, receipt)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, tripID, e.Title, e.Amount, e.Date.Unix(), e.PaidBy, string(e.Category), notes, receipt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	// OR IGNORE: a duplicated sharer id collapses to one row instead of
	// tripping the composite primary key.
	for _, pid := range e.SplitAmong {
		_, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO expense_sharers (expense_id, participant_id) VALUES (?, ?)",
			e.ID, pid,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense sharer: %w", err)
		}
	}

	for pid, amount := range e.CustomSplitAmounts {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO expense_custom_splits (expense_id, participant_id, amount) VALUES (?, ?, ?)",
			e.ID, pid, amount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert custom split: %w", err)
		}
	}
	return nil
}

// loadExpenses populates trip.Expenses with sharers and custom splits.
func (s *SQLiteStore) loadExpenses(ctx context.Context, trip *models.Trip) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, amount, date, paid_by, category, notes, receipt
		 FROM expenses WHERE trip_id = ? ORDER BY date DESC, id`,
		trip.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get expenses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e models.Expense
		var date int64
		var category string
		var notes sql.NullString
		if err := rows.Scan(&e.ID, &e.Title, &e.Amount, &date, &e.PaidBy,
			&category, &notes, &e.Receipt); err != nil {
			return fmt.Errorf("failed to scan expense: %w", err)
		}
		e.Date = time.Unix(date, 0).UTC()
		e.Category = models.ExpenseCategory(category)
		if notes.Valid {
			e.Notes = notes.String
		}
		trip.Expenses = append(trip.Expenses, e)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for i := range trip.Expenses {
		e := &trip.Expenses[i]

		sharerRows, err := s.db.QueryContext(ctx,
			"SELECT participant_id FROM expense_sharers WHERE expense_id = ? ORDER BY participant_id",
			e.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to get expense sharers: %w", err)
		}
		for sharerRows.Next() {
			var pid string
			if err := sharerRows.Scan(&pid); err != nil {
				sharerRows.Close()
				return fmt.Errorf("failed to scan expense sharer: %w", err)
			}
			e.SplitAmong = append(e.SplitAmong, pid)
		}
		sharerRows.Close()
		if err := sharerRows.Err(); err != nil {
			return fmt.Errorf("failed to iterate expense sharers: %w", err)
		}

		splitRows, err := s.db.QueryContext(ctx,
			"SELECT participant_id, amount FROM expense_custom_splits WHERE expense_id = ?",
			e.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to get custom splits: %w", err)
		}
		for splitRows.Next() {
			var pid string
			var amount float64
			if err := splitRows.Scan(&pid, &amount); err != nil {
				splitRows.Close()
				return fmt.Errorf("failed to scan custom split: %w", err)
			}
			if e.CustomSplitAmounts == nil {
				e.CustomSplitAmounts = make(map[string]float64)
			}
			e.CustomSplitAmounts[pid] = amount
		}
		splitRows.Close()
		if err := splitRows.Err(); err != nil {
			return fmt.Errorf("failed to iterate custom splits: %w", err)
		}
	}
	return nil
}
