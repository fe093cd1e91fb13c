package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"panic-alert-backend/internal/models"
)

// ContactStore is the persistence interface the contact service depends on
type ContactStore interface {
	Add(ctx context.Context, contact *models.Contact) error
	Exists(ctx context.Context, userID, contactID string) (bool, error)
	ListByOwner(ctx context.Context, userID string) ([]*models.ContactInfo, error)
	ListWatchers(ctx context.Context, contactID string) ([]*models.ContactInfo, error)
}

// ContactService handles emergency-contact links between users
type ContactService struct {
	contactStore ContactStore
	userStore    UserStore
}

// NewContactService creates a new contact service
func NewContactService(contactStore ContactStore, userStore UserStore) *ContactService {
	return &ContactService{
		contactStore: contactStore,
		userStore:    userStore,
	}
}

// AddContact registers the user with the given name as an emergency
// contact of ownerID
func (s *ContactService) AddContact(ctx context.Context, ownerID, contactName string) error {
	contactUser, err := s.userStore.GetByName(ctx, contactName)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return ErrContactNotFound
		}
		return fmt.Errorf("failed to look up contact: %w", err)
	}

	if contactUser.ID == ownerID {
		return ErrSelfContact
	}

	exists, err := s.contactStore.Exists(ctx, ownerID, contactUser.ID)
	if err != nil {
		return fmt.Errorf("failed to check contact existence: %w", err)
	}
	if exists {
		return ErrContactExists
	}

	contact := &models.Contact{
		UserID:    ownerID,
		ContactID: contactUser.ID,
		CreatedAt: time.Now(),
	}

	if err := s.contactStore.Add(ctx, contact); err != nil {
		return fmt.Errorf("failed to add contact: %w", err)
	}

	return nil
}

// ListContacts returns a user's emergency contacts, most recently added
// first. An empty list is not an error.
func (s *ContactService) ListContacts(ctx context.Context, ownerID string) ([]*models.ContactInfo, error) {
	contacts, err := s.contactStore.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	if contacts == nil {
		contacts = []*models.ContactInfo{}
	}
	return contacts, nil
}

// WatchersOf returns the users who listed the given user as an emergency
// contact. When that user triggers a panic event, these are the people
// the notifier tries to reach.
func (s *ContactService) WatchersOf(ctx context.Context, userID string) ([]*models.ContactInfo, error) {
	watchers, err := s.contactStore.ListWatchers(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list watchers: %w", err)
	}
	return watchers, nil
}
