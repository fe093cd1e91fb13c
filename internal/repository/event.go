package repository

import (
	"context"
	"fmt"

	"panic-alert-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EventRepository handles database operations for panic events
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

// Create creates a new panic event
func (r *EventRepository) Create(ctx context.Context, event *models.PanicEvent) error {
	query := `
		INSERT INTO panic_events (id, user_id, timestamp, cause)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.Exec(ctx, query, event.ID, event.UserID, event.Timestamp, event.Cause)
	if err != nil {
		return fmt.Errorf("failed to create panic event: %w", err)
	}
	return nil
}

// ListByOwner retrieves a user's panic events, newest first
func (r *EventRepository) ListByOwner(ctx context.Context, userID string) ([]*models.PanicEvent, error) {
	query := `
		SELECT id, user_id, timestamp, cause
		FROM panic_events
		WHERE user_id = $1
		ORDER BY timestamp DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list panic events: %w", err)
	}
	defer rows.Close()

	var events []*models.PanicEvent
	for rows.Next() {
		var event models.PanicEvent
		if err := rows.Scan(&event.ID, &event.UserID, &event.Timestamp, &event.Cause); err != nil {
			return nil, fmt.Errorf("failed to scan panic event: %w", err)
		}
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating panic events: %w", err)
	}

	return events, nil
}

// UpdateCause sets the cause of a panic event. The owner check is part of
// the query, so editing someone else's event reports ErrNotFound.
func (r *EventRepository) UpdateCause(ctx context.Context, eventID, userID, cause string) error {
	query := `UPDATE panic_events SET cause = $1 WHERE id = $2 AND user_id = $3`
	result, err := r.db.Exec(ctx, query, cause, eventID, userID)
	if err != nil {
		return fmt.Errorf("failed to update panic event cause: %w", err)
	}
	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Delete removes a panic event owned by the given user
func (r *EventRepository) Delete(ctx context.Context, eventID, userID string) error {
	query := `DELETE FROM panic_events WHERE id = $1 AND user_id = $2`
	result, err := r.db.Exec(ctx, query, eventID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete panic event: %w", err)
	}
	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
