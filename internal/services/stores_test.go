package services

import (
	"context"

	"panic-alert-backend/internal/models"
)

// In-memory store fakes backing the service tests. They mirror the
// ordering and owner-check behavior of the pgx repositories.

type memUserStore struct {
	users []*models.User
}

func (s *memUserStore) Create(_ context.Context, user *models.User) error {
	s.users = append(s.users, user)
	return nil
}

func (s *memUserStore) GetByID(_ context.Context, id string) (*models.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, models.ErrNotFound
}

func (s *memUserStore) GetByName(_ context.Context, name string) (*models.User, error) {
	for _, u := range s.users {
		if u.Name == name {
			return u, nil
		}
	}
	return nil, models.ErrNotFound
}

func (s *memUserStore) EmailExists(_ context.Context, email string) (bool, error) {
	for _, u := range s.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type memContactStore struct {
	users *memUserStore
	links []*models.Contact
}

func (s *memContactStore) Add(_ context.Context, contact *models.Contact) error {
	s.links = append(s.links, contact)
	return nil
}

func (s *memContactStore) Exists(_ context.Context, userID, contactID string) (bool, error) {
	for _, l := range s.links {
		if l.UserID == userID && l.ContactID == contactID {
			return true, nil
		}
	}
	return false, nil
}

func (s *memContactStore) ListByOwner(ctx context.Context, userID string) ([]*models.ContactInfo, error) {
	var contacts []*models.ContactInfo
	for i := len(s.links) - 1; i >= 0; i-- {
		if s.links[i].UserID != userID {
			continue
		}
		user, err := s.users.GetByID(ctx, s.links[i].ContactID)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, &models.ContactInfo{ID: user.ID, Name: user.Name, Email: user.Email})
	}
	return contacts, nil
}

func (s *memContactStore) ListWatchers(ctx context.Context, contactID string) ([]*models.ContactInfo, error) {
	var watchers []*models.ContactInfo
	for i := len(s.links) - 1; i >= 0; i-- {
		if s.links[i].ContactID != contactID {
			continue
		}
		user, err := s.users.GetByID(ctx, s.links[i].UserID)
		if err != nil {
			return nil, err
		}
		watchers = append(watchers, &models.ContactInfo{ID: user.ID, Name: user.Name, Email: user.Email})
	}
	return watchers, nil
}

type memEventStore struct {
	events []*models.PanicEvent
}

func (s *memEventStore) Create(_ context.Context, event *models.PanicEvent) error {
	s.events = append(s.events, event)
	return nil
}

func (s *memEventStore) ListByOwner(_ context.Context, userID string) ([]*models.PanicEvent, error) {
	var events []*models.PanicEvent
	for i := len(s.events) - 1; i >= 0; i-- {
		if s.events[i].UserID == userID {
			events = append(events, s.events[i])
		}
	}
	return events, nil
}

func (s *memEventStore) UpdateCause(_ context.Context, eventID, userID, cause string) error {
	for _, e := range s.events {
		if e.ID == eventID && e.UserID == userID {
			c := cause
			e.Cause = &c
			return nil
		}
	}
	return models.ErrNotFound
}

func (s *memEventStore) Delete(_ context.Context, eventID, userID string) error {
	for i, e := range s.events {
		if e.ID == eventID && e.UserID == userID {
			s.events = append(s.events[:i], s.events[i+1:]...)
			return nil
		}
	}
	return models.ErrNotFound
}
