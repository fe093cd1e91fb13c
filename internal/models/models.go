package models

import (
	"errors"
	"time"
)

// ErrNotFound is returned by stores when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// User represents a registered user
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Contact is a directed emergency-contact link: the contact user is
// notified when the owning user triggers a panic event.
type Contact struct {
	UserID    string    `json:"userId"`
	ContactID string    `json:"contactId"`
	CreatedAt time.Time `json:"createdAt"`
}

// ContactInfo is a resolved emergency contact as returned to clients.
type ContactInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PanicEvent is one recorded panic episode. Cause is nil until the user
// fills it in afterwards.
type PanicEvent struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Timestamp time.Time `json:"timestamp"`
	Cause     *string   `json:"cause"`
}

// Identity is the {userId, name} pair a connection is trusted as after
// token verification.
type Identity struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
}

// Coordinates is an optional client-supplied GPS position.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// RescueContact is the static emergency-service record attached to every
// panic notification.
type RescueContact struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}
