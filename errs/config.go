package errs

import (
	"errors"
	"fmt"
)

// Configuration & Environment Errors
var (
	ErrConfigMissing = errors.New("configuration missing")
	ErrConfigInvalid = errors.New("configuration invalid")
)

// ConfigurationError is returned while loading startup configuration. It is
// fatal: the process does not start.
type ConfigurationError struct {
	Key    string
	Reason string
	err    error
}

func (e *ConfigurationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s (%s)", e.err.Error(), e.Key, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.err.Error(), e.Key)
}

func (e *ConfigurationError) Unwrap() error {
	return e.err
}

func NewConfigMissingError(key string) *ConfigurationError {
	return &ConfigurationError{Key: key, err: ErrConfigMissing}
}

func NewConfigInvalidError(key, reason string) *ConfigurationError {
	return &ConfigurationError{Key: key, Reason: reason, err: ErrConfigInvalid}
}

func IsConfigMissing(err error) bool {
	return errors.Is(err, ErrConfigMissing)
}

func IsConfigInvalid(err error) bool {
	return errors.Is(err, ErrConfigInvalid)
}
