package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tripsync/tripsync/internal/models"
	"github.com/tripsync/tripsync/internal/storage"
)

// CreateTrip persists a new trip and all its collections.
func (s *SQLiteStore) CreateTrip(ctx context.Context, trip *models.Trip) error {
	// Generate IDs if not set
	if trip.ID == "" {
		trip.ID = uuid.New().String()
	}
	if trip.CreatedAt == 0 {
		trip.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO trips (id, name, destination_name, destination_lat, destination_lon, start_date, end_date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		trip.ID, trip.Name, trip.Destination.Name, trip.Destination.Lat, trip.Destination.Lon,
		trip.StartDate.Unix(), trip.EndDate.Unix(), trip.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trip: %w", err)
	}

	if err := insertCollections(ctx, tx, trip); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// UpdateTrip replaces a stored trip and all its collections in one
// transaction. Child rows are rebuilt rather than diffed; trips are small and
// a full rewrite keeps the two representations from drifting apart.
func (s *SQLiteStore) UpdateTrip(ctx context.Context, trip *models.Trip) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE trips SET name = ?, destination_name = ?, destination_lat = ?, destination_lon = ?,
		 start_date = ?, end_date = ? WHERE id = ?`,
		trip.Name, trip.Destination.Name, trip.Destination.Lat, trip.Destination.Lon,
		trip.StartDate.Unix(), trip.EndDate.Unix(), trip.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update trip: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, trip.ID)
	}

	// Drop and reinsert every child; activity_participants, expense_sharers
	// and expense_custom_splits cascade from their parents.
	for _, stmt := range []string{
		"DELETE FROM participants WHERE trip_id = ?",
		"DELETE FROM activities WHERE trip_id = ?",
		"DELETE FROM items WHERE trip_id = ?",
		"DELETE FROM expenses WHERE trip_id = ?",
	} {
		if _, err := tx.ExecContext(ctx, stmt, trip.ID); err != nil {
			return fmt.Errorf("failed to clear trip collections: %w", err)
		}
	}

	if err := insertCollections(ctx, tx, trip); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// insertCollections writes participants, activities, items and expenses for a
// trip, generating IDs for entries that lack one.
func insertCollections(ctx context.Context, tx *sql.Tx, trip *models.Trip) error {
	for i := range trip.Participants {
		p := &trip.Participants[i]
		if p.ID == "" {
			p.ID = uuid.New().String()
		}
		_, err := tx.ExecContext(ctx,
			"INSERT INTO participants (trip_id, id, name, email) VALUES (?, ?, ?, ?)",
			trip.ID, p.ID, p.Name, p.Email,
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}

	for i := range trip.Activities {
		a := &trip.Activities[i]
		if a.ID == "" {
			a.ID = uuid.New().String()
		}
		var notes interface{}
		if a.Notes != "" {
			notes = a.Notes
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO activities (id, trip_id, title, description, date, start_time, end_time, location, emoji, notes)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			a.ID, trip.ID, a.Title, a.Description,
			a.Date.Unix(), a.StartTime.Unix(), a.EndTime.Unix(),
			a.Location, a.Emoji, notes,
		)
		if err != nil {
			return fmt.Errorf("failed to insert activity: %w", err)
		}
		for _, pid := range a.ParticipantIDs {
			_, err := tx.ExecContext(ctx,
				"INSERT OR IGNORE INTO activity_participants (activity_id, participant_id) VALUES (?, ?)",
				a.ID, pid,
			)
			if err != nil {
				return fmt.Errorf("failed to insert activity participant: %w", err)
			}
		}
	}

	for i := range trip.Items {
		item := &trip.Items[i]
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		if item.Status == "" {
			item.Status = models.ItemNeeded
		}
		_, err := tx.ExecContext(ctx,
			"INSERT INTO items (id, trip_id, name, quantity, assigned_to, status) VALUES (?, ?, ?, ?, ?, ?)",
			item.ID, trip.ID, item.Name, item.Quantity, item.AssignedTo, string(item.Status),
		)
		if err != nil {
			return fmt.Errorf("failed to insert item: %w", err)
		}
	}

	for i := range trip.Expenses {
		if err := insertExpense(ctx, tx, trip.ID, &trip.Expenses[i]); err != nil {
			return err
		}
	}
	return nil
}

// GetTrip retrieves a trip by ID, including all its collections.
func (s *SQLiteStore) GetTrip(ctx context.Context, tripID string) (*models.Trip, error) {
	trip := &models.Trip{}
	var startDate, endDate int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, destination_name, destination_lat, destination_lon, start_date, end_date, created_at
		 FROM trips WHERE id = ?`,
		tripID,
	).Scan(&trip.ID, &trip.Name, &trip.Destination.Name, &trip.Destination.Lat, &trip.Destination.Lon,
		&startDate, &endDate, &trip.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, tripID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}
	trip.StartDate = time.Unix(startDate, 0).UTC()
	trip.EndDate = time.Unix(endDate, 0).UTC()

	if err := s.loadParticipants(ctx, trip); err != nil {
		return nil, err
	}
	if err := s.loadActivities(ctx, trip); err != nil {
		return nil, err
	}
	if err := s.loadItems(ctx, trip); err != nil {
		return nil, err
	}
	if err := s.loadExpenses(ctx, trip); err != nil {
		return nil, err
	}
	return trip, nil
}

func (s *SQLiteStore) loadParticipants(ctx context.Context, trip *models.Trip) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, email FROM participants WHERE trip_id = ? ORDER BY name, id",
		trip.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.ID, &p.Name, &p.Email); err != nil {
			return fmt.Errorf("failed to scan participant: %w", err)
		}
		trip.Participants = append(trip.Participants, p)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate participants: %w", err)
	}
	return nil
}

func (s *SQLiteStore) loadActivities(ctx context.Context, trip *models.Trip) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, description, date, start_time, end_time, location, emoji, notes
		 FROM activities WHERE trip_id = ? ORDER BY date, start_time, id`,
		trip.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get activities: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a models.Activity
		var date, start, end int64
		var notes sql.NullString
		if err := rows.Scan(&a.ID, &a.Title, &a.Description, &date, &start, &end,
			&a.Location, &a.Emoji, &notes); err != nil {
			return fmt.Errorf("failed to scan activity: %w", err)
		}
		a.Date = time.Unix(date, 0).UTC()
		a.StartTime = time.Unix(start, 0).UTC()
		a.EndTime = time.Unix(end, 0).UTC()
		if notes.Valid {
			a.Notes = notes.String
		}
		trip.Activities = append(trip.Activities, a)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate activities: %w", err)
	}

	for i := range trip.Activities {
		a := &trip.Activities[i]
		pidRows, err := s.db.QueryContext(ctx,
			"SELECT participant_id FROM activity_participants WHERE activity_id = ? ORDER BY participant_id",
			a.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to get activity participants: %w", err)
		}
		for pidRows.Next() {
			var pid string
			if err := pidRows.Scan(&pid); err != nil {
				pidRows.Close()
				return fmt.Errorf("failed to scan activity participant: %w", err)
			}
			a.ParticipantIDs = append(a.ParticipantIDs, pid)
		}
		pidRows.Close()
		if err := pidRows.Err(); err != nil {
			return fmt.Errorf("failed to iterate activity participants: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) loadItems(ctx context.Context, trip *models.Trip) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, quantity, assigned_to, status FROM items WHERE trip_id = ? ORDER BY name, id",
		trip.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.Item
		var status string
		if err := rows.Scan(&item.ID, &item.Name, &item.Quantity, &item.AssignedTo, &status); err != nil {
			return fmt.Errorf("failed to scan item: %w", err)
		}
		item.Status = models.ItemStatus(status)
		trip.Items = append(trip.Items, item)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate items: %w", err)
	}
	return nil
}

// ListTrips retrieves every stored trip, newest first.
func (s *SQLiteStore) ListTrips(ctx context.Context) ([]*models.Trip, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id FROM trips ORDER BY created_at DESC, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan trip id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trips: %w", err)
	}

	trips := make([]*models.Trip, 0, len(ids))
	for _, id := range ids {
		trip, err := s.GetTrip(ctx, id)
		if err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}
	return trips, nil
}

// DeleteTrip removes a trip; child rows cascade.
func (s *SQLiteStore) DeleteTrip(ctx context.Context, tripID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM trips WHERE id = ?", tripID)
	if err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, tripID)
	}
	return nil
}
