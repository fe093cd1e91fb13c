package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"panic-alert-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// UserStore is the persistence interface the user service depends on
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByName(ctx context.Context, name string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// UserService handles sign-up, sign-in and the identity token codec
type UserService struct {
	userStore UserStore
	jwtSecret string
	tokenTTL  time.Duration
}

// NewUserService creates a new user service
func NewUserService(userStore UserStore, jwtSecret string, tokenTTL time.Duration) *UserService {
	return &UserService{
		userStore: userStore,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

// SignUp registers a new user and returns it with a signed token
func (s *UserService) SignUp(ctx context.Context, name, email string) (*models.User, string, error) {
	exists, err := s.userStore.EmailExists(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, "", ErrEmailTaken
	}

	user := &models.User{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		CreatedAt: time.Now(),
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.IssueToken(models.Identity{UserID: user.ID, Name: user.Name})
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return user, token, nil
}

// SignIn looks up an existing user by name and returns a fresh token
func (s *UserService) SignIn(ctx context.Context, name string) (*models.User, string, error) {
	user, err := s.userStore.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, "", ErrUserNotFound
		}
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}

	token, err := s.IssueToken(models.Identity{UserID: user.ID, Name: user.Name})
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return user, token, nil
}

// IssueToken signs a token carrying the given identity
func (s *UserService) IssueToken(identity models.Identity) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": identity.UserID,
		"name":    identity.Name,
		"iat":     now.Unix(),
		"exp":     now.Add(s.tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// VerifyToken verifies a token and returns the identity it carries.
// Bad signatures, expired tokens and missing claims all report
// ErrInvalidToken.
func (s *UserService) VerifyToken(tokenString string) (models.Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return models.Identity{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.Identity{}, ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return models.Identity{}, ErrInvalidToken
	}
	name, ok := claims["name"].(string)
	if !ok {
		return models.Identity{}, ErrInvalidToken
	}

	return models.Identity{UserID: userID, Name: name}, nil
}
