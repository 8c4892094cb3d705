package service

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/mmynk/telefonbuch/internal/auth"
	"github.com/mmynk/telefonbuch/internal/models"
	"github.com/mmynk/telefonbuch/internal/storage/sqlite"
)

func newTestAuthService(t *testing.T) (*AuthService, *auth.JWTManager) {
	t.Helper()

	store, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	jwtManager := auth.NewJWTManager("test-secret-key-32-bytes-long!!!", time.Hour)
	svc := NewAuthService(auth.NewPasswordAuthenticator(store), store, jwtManager, slog.Default())
	return svc, jwtManager
}

func TestAuthServiceSignupLogin(t *testing.T) {
	svc, jwtManager := newTestAuthService(t)
	ctx := context.Background()

	token, err := svc.Signup(ctx, "anna", "Str0ng!pass")
	if err != nil {
		t.Fatalf("Signup failed: %v", err)
	}
	claims, err := jwtManager.Validate(token)
	if err != nil {
		t.Fatalf("signup token invalid: %v", err)
	}
	if claims.UserID == "" || claims.UserID == models.GuestUserID {
		t.Errorf("expected a real user identity, got %q", claims.UserID)
	}

	loginToken, err := svc.Login(ctx, "anna", "Str0ng!pass")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	loginClaims, err := jwtManager.Validate(loginToken)
	if err != nil {
		t.Fatalf("login token invalid: %v", err)
	}
	if loginClaims.UserID != claims.UserID {
		t.Errorf("login identity %q differs from signup identity %q", loginClaims.UserID, claims.UserID)
	}

	if _, err := svc.Login(ctx, "anna", "Wr0ng!pass"); !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthServiceGuestLogin(t *testing.T) {
	svc, jwtManager := newTestAuthService(t)

	token, err := svc.GuestLogin()
	if err != nil {
		t.Fatalf("GuestLogin failed: %v", err)
	}
	claims, err := jwtManager.Validate(token)
	if err != nil {
		t.Fatalf("guest token invalid: %v", err)
	}
	if claims.UserID != models.GuestUserID {
		t.Errorf("expected guest identity, got %q", claims.UserID)
	}
}

func TestAuthServiceUsernameAvailable(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	available, err := svc.CheckUsernameAvailable(ctx, "anna")
	if err != nil {
		t.Fatalf("CheckUsernameAvailable failed: %v", err)
	}
	if !available {
		t.Error("expected anna to be available before signup")
	}

	if _, err := svc.Signup(ctx, "anna", "Str0ng!pass"); err != nil {
		t.Fatalf("Signup failed: %v", err)
	}

	available, err = svc.CheckUsernameAvailable(ctx, "anna")
	if err != nil {
		t.Fatalf("CheckUsernameAvailable failed: %v", err)
	}
	if available {
		t.Error("expected anna to be taken after signup")
	}
}
