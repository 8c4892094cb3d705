package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/telefonbuch/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrWeakPassword       = errors.New("password too weak")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmptyUsername      = errors.New("username must not be empty")
)

// PasswordRule is a single strength requirement a password must satisfy.
type PasswordRule struct {
	// Key identifies the rule (stable, machine-readable).
	Key string
	// Label is the human-readable requirement.
	Label string

	pattern *regexp.Regexp
}

// PasswordRules lists the requirements every password must meet.
var PasswordRules = []PasswordRule{
	{Key: "minLength", Label: "at least 8 characters", pattern: regexp.MustCompile(`.{8,}`)},
	{Key: "uppercase", Label: "at least one uppercase letter", pattern: regexp.MustCompile(`[A-Z]`)},
	{Key: "lowercase", Label: "at least one lowercase letter", pattern: regexp.MustCompile(`[a-z]`)},
	{Key: "digit", Label: "at least one digit", pattern: regexp.MustCompile(`\d`)},
	{Key: "special", Label: "at least one special character", pattern: regexp.MustCompile(`[^A-Za-z0-9]`)},
}

// FailedRules returns the password rules the given password does not satisfy.
func FailedRules(password string) []PasswordRule {
	var failed []PasswordRule
	for _, r := range PasswordRules {
		if !r.pattern.MatchString(password) {
			failed = append(failed, r)
		}
	}
	return failed
}

// UserStorage defines the interface for user persistence operations.
// This allows the authenticator to be independent of the storage implementation.
type UserStorage interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// PasswordAuthenticator implements password-based authentication using bcrypt.
type PasswordAuthenticator struct {
	storage UserStorage
}

// NewPasswordAuthenticator creates a new password-based authenticator.
func NewPasswordAuthenticator(storage UserStorage) *PasswordAuthenticator {
	return &PasswordAuthenticator{
		storage: storage,
	}
}

// ValidateCredential checks the password against the strength rule list.
// The returned error wraps ErrWeakPassword and names every failed rule.
func (a *PasswordAuthenticator) ValidateCredential(credential string) error {
	failed := FailedRules(credential)
	if len(failed) == 0 {
		return nil
	}
	labels := make([]string, len(failed))
	for i, r := range failed {
		labels[i] = r.Label
	}
	return fmt.Errorf("%w: %s", ErrWeakPassword, strings.Join(labels, ", "))
}

// Register creates a new user account with a hashed password.
// Username uniqueness is ultimately enforced by the store's unique index;
// the lookup here only produces a friendlier error for the common case.
func (a *PasswordAuthenticator) Register(ctx context.Context, username, credential string) (*models.User, error) {
	if username == "" {
		return nil, ErrEmptyUsername
	}
	if err := a.ValidateCredential(credential); err != nil {
		return nil, err
	}

	existing, err := a.storage.GetUserByUsername(ctx, username)
	if err == nil && existing != nil {
		return nil, ErrUsernameTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(credential), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.NewUser(username, string(hashedPassword))

	if err := a.storage.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate verifies the username and password, returning the user if valid.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, username, credential string) (*models.User, error) {
	user, err := a.storage.GetUserByUsername(ctx, username)
	if err != nil || user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(credential)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
