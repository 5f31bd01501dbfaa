package services

import (
	"context"
	"strings"
	"testing"

	"github.com/craftly-living/backend/database"
	"github.com/craftly-living/backend/errs"
	"github.com/craftly-living/backend/models"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("demo-password")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "demo-password" || !strings.HasPrefix(hash, "$2") {
		t.Errorf("hash = %q, want a bcrypt hash", hash)
	}
	if !CheckPassword(hash, "demo-password") {
		t.Error("CheckPassword rejected the right password")
	}
	if CheckPassword(hash, "wrong") {
		t.Error("CheckPassword accepted a wrong password")
	}
}

func TestEnsureDemoUser(t *testing.T) {
	ctx := context.Background()
	store := database.NewMemory()

	user, err := EnsureDemoUser(ctx, store, "demo", "demo-password")
	if err != nil {
		t.Fatalf("EnsureDemoUser: %v", err)
	}
	if user.ID != 1 || user.Username != "demo" {
		t.Errorf("user = %+v", user)
	}
	if !CheckPassword(user.Password, "demo-password") {
		t.Error("stored password is not the bcrypt hash of the demo password")
	}

	again, err := EnsureDemoUser(ctx, store, "demo", "another")
	if err != nil {
		t.Fatalf("EnsureDemoUser second call: %v", err)
	}
	if again.ID != user.ID {
		t.Errorf("second call id = %d, want existing %d", again.ID, user.ID)
	}
}

// racingStore reports the user as absent on the first lookup and then loses
// the insert to a concurrent creator.
type racingStore struct {
	*database.Memory
	lookups int
}

func (s *racingStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	s.lookups++
	if s.lookups == 1 {
		if _, err := s.Memory.CreateUser(ctx, models.NewUser{Username: username, Password: "x"}); err != nil {
			return nil, err
		}
		return nil, errs.NewNotFound("User")
	}
	return s.Memory.GetUserByUsername(ctx, username)
}

func TestEnsureDemoUserConflictIsSuccess(t *testing.T) {
	store := &racingStore{Memory: database.NewMemory()}

	user, err := EnsureDemoUser(context.Background(), store, "demo", "demo-password")
	if err != nil {
		t.Fatalf("EnsureDemoUser: %v", err)
	}
	if user.ID != 1 {
		t.Errorf("user id = %d, want the concurrently created user", user.ID)
	}
	if store.lookups != 2 {
		t.Errorf("lookups = %d, want 2", store.lookups)
	}
}
