package service

import (
	"errors"
	"testing"

	"github.com/mirrormood/internal/db"
	"golang.org/x/crypto/bcrypt"
)

func TestUserServiceRegisterAndAuthenticate(t *testing.T) {
	cleanup := setupEmotionTestDB(t)
	defer cleanup()

	svc := NewUserService(db.DB)

	user, err := svc.Register(RegisterInput{Username: "mira", Password: "secret", Email: "mira@example.com"})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected user to have ID")
	}
	if user.Nickname != "mira" {
		t.Fatalf("expected nickname fallback to username, got %s", user.Nickname)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret")) != nil {
		t.Fatal("expected password to be bcrypt hashed")
	}

	if _, err := svc.Register(RegisterInput{Username: "mira", Password: "other"}); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	authed, err := svc.Authenticate("mira", "secret")
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if authed.ID != user.ID {
		t.Fatalf("unexpected user id: %d", authed.ID)
	}

	if _, err := svc.Authenticate("mira", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Authenticate("nobody", "secret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestUserServiceGet(t *testing.T) {
	cleanup := setupEmotionTestDB(t)
	defer cleanup()

	svc := NewUserService(db.DB)
	seeded := seedUser(t, "mira")

	user, err := svc.Get(seeded.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if user.Username != "mira" {
		t.Fatalf("unexpected username: %s", user.Username)
	}

	if _, err := svc.Get(seeded.ID + 100); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
