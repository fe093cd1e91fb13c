package handlers

import (
	"errors"
	"net/http"

	"panic-alert-backend/internal/middleware"
	"panic-alert-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// ContactHandler handles emergency-contact HTTP requests
type ContactHandler struct {
	contactService *services.ContactService
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contactService *services.ContactService) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
	}
}

// AddContactRequest represents the request body for adding a contact
type AddContactRequest struct {
	Name string `json:"name" validate:"required"`
}

// AddContact handles POST /api/contacts
func (h *ContactHandler) AddContact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity := middleware.GetIdentity(ctx)

	var req AddContactRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.contactService.AddContact(ctx, identity.UserID, req.Name); err != nil {
		switch {
		case errors.Is(err, services.ErrContactNotFound):
			respondError(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, services.ErrContactExists),
			errors.Is(err, services.ErrSelfContact):
			respondError(w, err.Error(), http.StatusBadRequest)
		default:
			log.Error().
				Err(err).
				Str("user_id", identity.UserID).
				Str("contact_name", req.Name).
				Msg("Failed to add contact")
			respondError(w, "Failed to add contact", http.StatusInternalServerError)
		}
		return
	}

	log.Info().
		Str("user_id", identity.UserID).
		Str("contact_name", req.Name).
		Msg("Contact added")

	respondJSON(w, map[string]string{"message": "Contact added successfully"}, http.StatusCreated)
}

// ListContacts handles GET /api/contacts
func (h *ContactHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity := middleware.GetIdentity(ctx)

	contacts, err := h.contactService.ListContacts(ctx, identity.UserID)
	if err != nil {
		log.Error().Err(err).Str("user_id", identity.UserID).Msg("Failed to list contacts")
		respondError(w, "Failed to list contacts", http.StatusInternalServerError)
		return
	}

	respondJSON(w, contacts, http.StatusOK)
}
