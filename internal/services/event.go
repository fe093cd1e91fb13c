package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"panic-alert-backend/internal/models"

	"github.com/google/uuid"
)

// EventStore is the persistence interface the event service depends on
type EventStore interface {
	Create(ctx context.Context, event *models.PanicEvent) error
	ListByOwner(ctx context.Context, userID string) ([]*models.PanicEvent, error)
	UpdateCause(ctx context.Context, eventID, userID, cause string) error
	Delete(ctx context.Context, eventID, userID string) error
}

// EventService records and manages panic events
type EventService struct {
	eventStore EventStore
}

// NewEventService creates a new event service
func NewEventService(eventStore EventStore) *EventService {
	return &EventService{eventStore: eventStore}
}

// Record persists a new panic event for the given user
func (s *EventService) Record(ctx context.Context, ownerID string, cause *string) (*models.PanicEvent, error) {
	event := &models.PanicEvent{
		ID:        uuid.New().String(),
		UserID:    ownerID,
		Timestamp: time.Now(),
		Cause:     cause,
	}

	if err := s.eventStore.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to record panic event: %w", err)
	}

	return event, nil
}

// List returns a user's panic events, newest first
func (s *EventService) List(ctx context.Context, ownerID string) ([]*models.PanicEvent, error) {
	events, err := s.eventStore.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list panic events: %w", err)
	}
	if events == nil {
		events = []*models.PanicEvent{}
	}
	return events, nil
}

// AmendCause updates the cause of an event. Events owned by other users
// are indistinguishable from missing ones.
func (s *EventService) AmendCause(ctx context.Context, eventID, ownerID, cause string) error {
	if err := s.eventStore.UpdateCause(ctx, eventID, ownerID, cause); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("failed to amend panic event: %w", err)
	}
	return nil
}

// Delete removes an event owned by the given user
func (s *EventService) Delete(ctx context.Context, eventID, ownerID string) error {
	if err := s.eventStore.Delete(ctx, eventID, ownerID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("failed to delete panic event: %w", err)
	}
	return nil
}
