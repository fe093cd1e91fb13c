package repository

import (
	"context"
	"fmt"

	"panic-alert-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ContactRepository handles database operations for emergency-contact links
type ContactRepository struct {
	db *pgxpool.Pool
}

// NewContactRepository creates a new contact repository
func NewContactRepository(db *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{db: db}
}

// Add creates a new emergency-contact link
func (r *ContactRepository) Add(ctx context.Context, contact *models.Contact) error {
	query := `
		INSERT INTO emergency_contacts (user_id, contact_id, created_at)
		VALUES ($1, $2, $3)
	`
	_, err := r.db.Exec(ctx, query, contact.UserID, contact.ContactID, contact.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to add contact: %w", err)
	}
	return nil
}

// Exists checks if an emergency-contact link already exists
func (r *ContactRepository) Exists(ctx context.Context, userID, contactID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM emergency_contacts WHERE user_id = $1 AND contact_id = $2)`
	var exists bool
	err := r.db.QueryRow(ctx, query, userID, contactID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check contact existence: %w", err)
	}
	return exists, nil
}

// ListByOwner retrieves a user's emergency contacts, most recently added first
func (r *ContactRepository) ListByOwner(ctx context.Context, userID string) ([]*models.ContactInfo, error) {
	query := `
		SELECT u.id, u.name, u.email
		FROM users u
		JOIN emergency_contacts ec ON u.id = ec.contact_id
		WHERE ec.user_id = $1
		ORDER BY ec.created_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer rows.Close()

	var contacts []*models.ContactInfo
	for rows.Next() {
		var contact models.ContactInfo
		if err := rows.Scan(&contact.ID, &contact.Name, &contact.Email); err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, &contact)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contacts: %w", err)
	}

	return contacts, nil
}

// ListWatchers retrieves the users who listed the given user as an
// emergency contact. These are the notification targets when that user
// triggers a panic event.
func (r *ContactRepository) ListWatchers(ctx context.Context, contactID string) ([]*models.ContactInfo, error) {
	query := `
		SELECT u.id, u.name, u.email
		FROM users u
		JOIN emergency_contacts ec ON u.id = ec.user_id
		WHERE ec.contact_id = $1
		ORDER BY ec.created_at DESC
	`
	rows, err := r.db.Query(ctx, query, contactID)
	if err != nil {
		return nil, fmt.Errorf("failed to list watchers: %w", err)
	}
	defer rows.Close()

	var watchers []*models.ContactInfo
	for rows.Next() {
		var watcher models.ContactInfo
		if err := rows.Scan(&watcher.ID, &watcher.Name, &watcher.Email); err != nil {
			return nil, fmt.Errorf("failed to scan watcher: %w", err)
		}
		watchers = append(watchers, &watcher)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating watchers: %w", err)
	}

	return watchers, nil
}
