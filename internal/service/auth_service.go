package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/telefonbuch/internal/auth"
)

// AuthService implements signup, login, guest login and username
// availability checks, issuing JWT tokens on success.
type AuthService struct {
	authenticator auth.Authenticator
	users         auth.UserStorage
	jwtManager    *auth.JWTManager
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, users auth.UserStorage, jwtManager *auth.JWTManager, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		users:         users,
		jwtManager:    jwtManager,
		logger:        logger,
	}
}

// Signup registers a new account and returns a session token.
func (s *AuthService) Signup(ctx context.Context, username, password string) (string, error) {
	user, err := s.authenticator.Register(ctx, username, password)
	if err != nil {
		s.logger.Warn("Signup failed", "username", username, "error", err)
		return "", err
	}

	token, err := s.jwtManager.Generate(user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("User registered", "user_id", user.ID, "username", user.Username)
	return token, nil
}

// Login authenticates a user and returns a session token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.authenticator.Authenticate(ctx, username, password)
	if err != nil {
		s.logger.Warn("Login failed", "username", username)
		return "", err
	}

	token, err := s.jwtManager.Generate(user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("User logged in", "user_id", user.ID, "username", user.Username)
	return token, nil
}

// GuestLogin issues a token for the shared guest identity without creating
// a user row.
func (s *AuthService) GuestLogin() (string, error) {
	token, err := s.jwtManager.GenerateGuest()
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	s.logger.Info("Guest logged in")
	return token, nil
}

// CheckUsernameAvailable reports whether the username is still free.
// Advisory only; the store's unique index decides at signup time.
func (s *AuthService) CheckUsernameAvailable(ctx context.Context, username string) (bool, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	return user == nil, nil
}
