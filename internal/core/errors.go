package core

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions.
// These can be used with errors.Is() for error type checking.
var (
	// ErrPolicyNotFound indicates the policy file does not exist
	ErrPolicyNotFound = errors.New("policy file not found")

	// ErrManifestNotFound indicates the manifest file does not exist
	ErrManifestNotFound = errors.New("manifest file not found")

	// ErrPolicyViolations indicates the scan completed and found policy violations
	ErrPolicyViolations = errors.New("license policy violations found")
)

// ConfigError wraps a fatal configuration problem (missing or malformed policy
// or manifest). Configuration errors abort the run before any license lookup
// and map to a distinct exit code.
type ConfigError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error (%s): %v", e.Path, e.Err)
}

// Unwrap returns the underlying cause for errors.Is/errors.As chains.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a ConfigError for the given file path.
func NewConfigError(path string, err error) *ConfigError {
	return &ConfigError{Path: path, Err: err}
}

// IsConfigError reports whether err is (or wraps) a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
