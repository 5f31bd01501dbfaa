package errs

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
)

// Request & Input-Validation Errors
var (
	ErrValidation          = errors.New("validation failed")
	ErrMalformedPayload    = errors.New("malformed payload")
	ErrMaxBodySizeExceeded = errors.New("max body size exceeded")
)

// FieldError names one violated field and why it was rejected.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewValidationError groups every violated field of a payload under one 400.
// Duplicate field/message pairs are dropped and the list is sorted by field.
func NewValidationError(message string, fields []FieldError) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        wrapMessage(message, ErrValidation),
		Fields:     dedupeFields(fields),
	}
}

func NewMalformedPayloadError(payloadType string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrMalformedPayload,
		Details:    fmt.Sprintf("Malformed %s payload", payloadType),
		Cause:      cause,
		Field:      "payload",
	}
}

func NewMaxBodySizeExceededError(maxSize int64) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusRequestEntityTooLarge,
		err:        ErrMaxBodySizeExceeded,
		Details:    fmt.Sprintf("Request body size exceeded maximum allowed size of %d bytes", maxSize),
		Field:      "body_size",
	}
}

func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

func IsMalformedPayloadError(err error) bool {
	return errors.Is(err, ErrMalformedPayload)
}

func IsMaxBodySizeExceededError(err error) bool {
	return errors.Is(err, ErrMaxBodySizeExceeded)
}

// ValidationFields returns the field list of a validation error, or nil.
func ValidationFields(err error) []FieldError {
	var apiErr *ApiErr
	if errors.As(err, &apiErr) {
		return apiErr.Fields
	}
	return nil
}

func dedupeFields(fields []FieldError) []FieldError {
	seen := make(map[FieldError]bool, len(fields))
	out := make([]FieldError, 0, len(fields))
	for _, f := range fields {
		if seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out
}
