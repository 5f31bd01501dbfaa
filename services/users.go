package services

import (
	"context"
	"fmt"

	"github.com/craftly-living/backend/database"
	"github.com/craftly-living/backend/errs"
	"github.com/craftly-living/backend/models"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns the bcrypt hash stored in users.password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches a hash from HashPassword.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// EnsureDemoUser makes sure the demo account exists and returns it. Losing a
// creation race to another instance counts as success.
func EnsureDemoUser(ctx context.Context, store database.Storage, username, password string) (*models.User, error) {
	user, err := store.GetUserByUsername(ctx, username)
	if err == nil {
		return user, nil
	}
	if !errs.IsNotFound(err) {
		return nil, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user, err = store.CreateUser(ctx, models.NewUser{Username: username, Password: hash})
	if errs.IsConflict(err) {
		log.Info().Str("username", username).Msg("Demo user created concurrently")
		return store.GetUserByUsername(ctx, username)
	}
	if err != nil {
		return nil, err
	}

	log.Info().Str("username", username).Int64("userId", user.ID).Msg("Demo user created")
	return user, nil
}
