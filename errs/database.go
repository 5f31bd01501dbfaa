package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrAlreadyExists = errors.New("already exists")
	ErrNotFound      = errors.New("not found")
	ErrStorage       = errors.New("storage failure")
)

// NewAlreadyExists reports a uniqueness violation on entity with a human message
// such as "Builder with this email already exists".
func NewAlreadyExists(entity, message string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        wrapMessage(message, errors.Join(ErrConflict, ErrAlreadyExists)),
		Field:      entity,
	}
}

func NewNotFound(entity string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		err:        wrapMessage(fmt.Sprintf("%s not found", entity), ErrNotFound),
	}
}

// NewStorageError wraps a backend failure. The cause is kept for server-side
// logging only.
func NewStorageError(operation, entity string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrStorage,
		Details:    fmt.Sprintf("Failed to %s %s", operation, entity),
		Cause:      cause,
	}
}

// NewDatabaseError classifies a driver error by its message. Duplicate keys
// become conflicts, connection trouble and everything else become storage errors.
func NewDatabaseError(operation, entity string, cause error) *ApiErr {
	if cause != nil {
		errStr := strings.ToLower(cause.Error())
		switch {
		case strings.Contains(errStr, "duplicate key"),
			strings.Contains(errStr, "duplicated key"),
			strings.Contains(errStr, "unique constraint"):
			apiErr := NewAlreadyExists(entity, fmt.Sprintf("%s already exists", entity))
			apiErr.Cause = cause
			return apiErr
		case strings.Contains(errStr, "connection"):
			return &ApiErr{
				StatusCode: http.StatusInternalServerError,
				err:        wrapMessage("database connection failed", ErrStorage),
				Details:    "Unable to connect to database",
				Cause:      cause,
			}
		}
	}

	return NewStorageError(operation, entity, cause)
}

func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

func IsStorage(err error) bool {
	return errors.Is(err, ErrStorage)
}
