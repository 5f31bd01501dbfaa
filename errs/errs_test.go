package errs

import (
	"errors"
	"net/http"
	"strings"
	"testing"
)

func TestConstructorsClassify(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		check      func(error) bool
	}{
		{"bad request", NewBadRequestError("Invalid user ID"), http.StatusBadRequest, IsBadRequest},
		{"validation", NewValidationError("Invalid project data", nil), http.StatusBadRequest, IsValidation},
		{"malformed payload", NewMalformedPayloadError("project", errors.New("eof")), http.StatusBadRequest, IsMalformedPayloadError},
		{"body too large", NewMaxBodySizeExceededError(64), http.StatusRequestEntityTooLarge, IsMaxBodySizeExceededError},
		{"not found", NewNotFound("Builder"), http.StatusNotFound, IsNotFound},
		{"already exists", NewAlreadyExists("Builder", "Builder with this email already exists"), http.StatusBadRequest, IsConflict},
		{"storage", NewStorageError("create", "Builder", errors.New("disk full")), http.StatusInternalServerError, IsStorage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.check(tt.err) {
				t.Errorf("%v does not match its class", tt.err)
			}
			if got := StatusCode(tt.err); got != tt.wantStatus {
				t.Errorf("StatusCode = %d, want %d", got, tt.wantStatus)
			}
		})
	}
}

func TestBadRequestIsNotConflict(t *testing.T) {
	err := NewBadRequestError("Invalid builder ID")
	if IsConflict(err) || IsValidation(err) {
		t.Errorf("%v matched the wrong class", err)
	}
	if err.Message() != "Invalid builder ID" {
		t.Errorf("Message() = %q", err.Message())
	}
}

func TestStatusCodeOfPlainError(t *testing.T) {
	if got := StatusCode(errors.New("boom")); got != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", got)
	}
}

func TestNewDatabaseError(t *testing.T) {
	dup := NewDatabaseError("create", "User", errors.New(`duplicate key value violates unique constraint "idx_users_username"`))
	if !IsAlreadyExists(dup) || !IsConflict(dup) {
		t.Errorf("duplicate key not classified as conflict: %v", dup)
	}

	conn := NewDatabaseError("find", "User", errors.New("dial tcp: connection refused"))
	if !IsStorage(conn) || conn.Details != "Unable to connect to database" {
		t.Errorf("connection failure = %+v", conn)
	}
}

func TestGetFullErrorFollowsCauses(t *testing.T) {
	inner := NewStorageError("find", "Builder", errors.New("relation does not exist"))
	outer := NewStorageError("list", "builders", inner)

	full := outer.GetFullError()
	for _, want := range []string{"Failed to list builders", "Failed to find Builder", "relation does not exist"} {
		if !strings.Contains(full, want) {
			t.Errorf("GetFullError() = %q, missing %q", full, want)
		}
	}
}

func TestValidationFieldsAreDedupedAndSorted(t *testing.T) {
	err := NewValidationError("Invalid builder data", []FieldError{
		{Field: "phone", Message: "is required"},
		{Field: "email", Message: "is required"},
		{Field: "phone", Message: "is required"},
	})

	got := ValidationFields(err)
	if len(got) != 2 || got[0].Field != "email" || got[1].Field != "phone" {
		t.Errorf("ValidationFields = %+v", got)
	}
	if ValidationFields(errors.New("plain")) != nil {
		t.Error("plain errors carry no fields")
	}
}
