package handlers

import (
	"errors"
	"net/http"

	"panic-alert-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// UserHandler handles sign-up and sign-in HTTP requests
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// SignUpRequest represents the request body for sign-up
type SignUpRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// SignInRequest represents the request body for sign-in
type SignInRequest struct {
	Name string `json:"name" validate:"required"`
}

// AuthResponse is returned by both sign-up and sign-in
type AuthResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

// SignUp handles POST /api/auth/signup
func (h *UserHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SignUpRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, token, err := h.userService.SignUp(ctx, req.Name, req.Email)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			respondError(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Error().Err(err).Str("email", req.Email).Msg("Failed to sign up user")
		respondError(w, "Failed to sign up", http.StatusInternalServerError)
		return
	}

	log.Info().
		Str("user_id", user.ID).
		Str("name", user.Name).
		Msg("User signed up")

	respondJSON(w, AuthResponse{Token: token, UserID: user.ID}, http.StatusOK)
}

// SignIn handles POST /api/auth/signin
func (h *UserHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SignInRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, token, err := h.userService.SignIn(ctx, req.Name)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			respondError(w, err.Error(), http.StatusUnauthorized)
			return
		}
		log.Error().Err(err).Str("name", req.Name).Msg("Failed to sign in user")
		respondError(w, "Failed to sign in", http.StatusInternalServerError)
		return
	}

	log.Info().
		Str("user_id", user.ID).
		Str("name", user.Name).
		Msg("User signed in")

	respondJSON(w, AuthResponse{Token: token, UserID: user.ID}, http.StatusOK)
}
