package database

import (
	"errors"

	"github.com/craftly-living/backend/errs"
	"gorm.io/gorm"
)

// Conflict messages surfaced to clients
const (
	usernameTakenMessage = "User with this username already exists"
	builderEmailMessage  = "Builder with this email already exists"
)

// translate maps a gorm error to the storage error taxonomy. conflictMessage
// is used when the error is a uniqueness violation.
func translate(err error, operation, entity, conflictMessage string) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errs.NewNotFound(entity)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		apiErr := errs.NewAlreadyExists(entity, conflictMessage)
		apiErr.Cause = err
		return apiErr
	}

	apiErr := errs.NewDatabaseError(operation, entity, err)
	if errs.IsAlreadyExists(apiErr) {
		conflict := errs.NewAlreadyExists(entity, conflictMessage)
		conflict.Cause = err
		return conflict
	}
	return apiErr
}
