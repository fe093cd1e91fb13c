package services

import (
	"context"
	"testing"
	"time"

	"panic-alert-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRescue = models.RescueContact{Email: "rescue@x.com", Phone: "+1 555 0100"}

type notifierFixture struct {
	users    *memUserStore
	events   *memEventStore
	contacts *ContactService
	hub      *WSHub
	notifier *Notifier
}

func newNotifierFixture() *notifierFixture {
	users := &memUserStore{}
	contactStore := &memContactStore{users: users}
	events := &memEventStore{}

	contacts := NewContactService(contactStore, users)
	hub := NewWSHub()
	notifier := NewNotifier(NewEventService(events), contacts, hub, testRescue)

	return &notifierFixture{
		users:    users,
		events:   events,
		contacts: contacts,
		hub:      hub,
		notifier: notifier,
	}
}

// Ana panics with Ben watching and live, Cleo live but not a watcher:
// exactly one notification goes to Ben and nothing reaches Cleo.
func TestPanicAlertFanOut(t *testing.T) {
	ctx := context.Background()
	f := newNotifierFixture()

	addUser(t, f.users, "u1", "Ana", "a@x.com")
	addUser(t, f.users, "u2", "Ben", "b@x.com")
	addUser(t, f.users, "u3", "Cleo", "c@x.com")
	require.NoError(t, f.contacts.AddContact(ctx, "u2", "Ana"))

	benServer, benClient := newWSConnPair(t)
	cleoServer, cleoClient := newWSConnPair(t)
	f.hub.Register("u2", benServer)
	f.hub.Register("u3", cleoServer)

	coords := &models.Coordinates{Lat: 52.52, Lon: 13.4}
	event, err := f.notifier.PanicAlert(ctx, models.Identity{UserID: "u1", Name: "Ana"}, "Park", coords)
	require.NoError(t, err)

	// The event is durably recorded before any push
	recorded, err := f.events.ListByOwner(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, recorded, 1)
	assert.Equal(t, event.ID, recorded[0].ID)

	msg := readMessage(t, benClient)
	assert.Equal(t, "panic_attack", msg.Type)
	assert.Contains(t, msg.Message, "Ana is under attack!")
	assert.Contains(t, msg.Message, "Park")
	assert.Equal(t, "Park", msg.Location)
	assert.Equal(t, "u1", msg.UserID)
	require.NotNil(t, msg.Coordinates)
	assert.Equal(t, 52.52, msg.Coordinates.Lat)
	require.NotNil(t, msg.EmergencyContact)
	assert.Equal(t, testRescue, *msg.EmergencyContact)

	// Cleo is not a watcher of Ana and must receive nothing
	require.NoError(t, cleoClient.SetReadDeadline(time.Now().Add(300*time.Millisecond)))
	_, _, err = cleoClient.ReadMessage()
	assert.Error(t, err)
}

// A watcher without a live connection is skipped silently; the event is
// still recorded.
func TestPanicAlertOfflineWatcherSkipped(t *testing.T) {
	ctx := context.Background()
	f := newNotifierFixture()

	addUser(t, f.users, "u1", "Ana", "a@x.com")
	addUser(t, f.users, "u2", "Ben", "b@x.com")
	require.NoError(t, f.contacts.AddContact(ctx, "u2", "Ana"))

	event, err := f.notifier.PanicAlert(ctx, models.Identity{UserID: "u1", Name: "Ana"}, "Park", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, event.ID)

	recorded, err := f.events.ListByOwner(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, recorded, 1)
}

func TestPanicAlertDefaultLocation(t *testing.T) {
	ctx := context.Background()
	f := newNotifierFixture()

	addUser(t, f.users, "u1", "Ana", "a@x.com")
	addUser(t, f.users, "u2", "Ben", "b@x.com")
	require.NoError(t, f.contacts.AddContact(ctx, "u2", "Ana"))

	benServer, benClient := newWSConnPair(t)
	f.hub.Register("u2", benServer)

	_, err := f.notifier.PanicAlert(ctx, models.Identity{UserID: "u1", Name: "Ana"}, "", nil)
	require.NoError(t, err)

	msg := readMessage(t, benClient)
	assert.Contains(t, msg.Message, "Location unavailable")
	assert.Equal(t, "Location unavailable", msg.Location)
	assert.Nil(t, msg.Coordinates)
}

func TestPanicAlertNoWatchers(t *testing.T) {
	ctx := context.Background()
	f := newNotifierFixture()

	addUser(t, f.users, "u1", "Ana", "a@x.com")

	event, err := f.notifier.PanicAlert(ctx, models.Identity{UserID: "u1", Name: "Ana"}, "Park", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, event.ID)
}
