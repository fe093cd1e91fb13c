package services

import (
	"context"
	"fmt"
	"time"

	"panic-alert-backend/internal/models"

	"github.com/rs/zerolog/log"
)

const defaultLocation = "Location unavailable"

// Notifier runs the panic fan-out: persist the event, resolve the users
// who listed the triggering user as an emergency contact, and push one
// notification to each of them that holds a live connection. The rest are
// skipped silently; there is no queuing, retry or delivery acknowledgment.
type Notifier struct {
	events   *EventService
	contacts *ContactService
	hub      *WSHub
	rescue   models.RescueContact
}

// NewNotifier creates a new notifier
func NewNotifier(events *EventService, contacts *ContactService, hub *WSHub, rescue models.RescueContact) *Notifier {
	return &Notifier{
		events:   events,
		contacts: contacts,
		hub:      hub,
		rescue:   rescue,
	}
}

// PanicAlert records a panic event for the identity and notifies its live
// contacts. A storage failure aborts before any notification goes out; a
// failed push to one contact does not stop the rest.
func (n *Notifier) PanicAlert(ctx context.Context, identity models.Identity, location string, coordinates *models.Coordinates) (*models.PanicEvent, error) {
	if location == "" {
		location = defaultLocation
	}

	event, err := n.events.Record(ctx, identity.UserID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to record panic event: %w", err)
	}

	watchers, err := n.contacts.WatchersOf(ctx, identity.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve contacts: %w", err)
	}

	notification := WSMessage{
		Type:             "panic_attack",
		Message:          fmt.Sprintf("%s is under attack!\nGo to the rescue at %s", identity.Name, location),
		Timestamp:        event.Timestamp.Format(time.RFC3339),
		UserID:           identity.UserID,
		Location:         location,
		Coordinates:      coordinates,
		EmergencyContact: &n.rescue,
	}

	notified := 0
	for _, watcher := range watchers {
		if !n.hub.IsOnline(watcher.ID) {
			log.Debug().
				Str("user_id", identity.UserID).
				Str("contact_id", watcher.ID).
				Msg("Contact has no live connection, skipping")
			continue
		}

		if err := n.hub.SendToUser(watcher.ID, notification); err != nil {
			log.Warn().
				Err(err).
				Str("user_id", identity.UserID).
				Str("contact_id", watcher.ID).
				Msg("Failed to push panic notification")
			continue
		}
		notified++
	}

	log.Info().
		Str("user_id", identity.UserID).
		Str("event_id", event.ID).
		Int("contacts", len(watchers)).
		Int("notified", notified).
		Msg("Panic alert fanned out")

	return event, nil
}
