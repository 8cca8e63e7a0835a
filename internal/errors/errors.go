package errors

import (
	"errors"
	"fmt"
)

// Common error types for the TaskFlow client
var (
	// Authentication errors
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrInvalidCredentials   = errors.New("invalid credentials")

	// Token errors
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Authorization errors
	ErrAuthorizationDenied = errors.New("authorization denied")

	// Backend errors
	ErrBackendUnavailable = errors.New("backend unavailable")
	ErrBadResponse        = errors.New("bad response from backend")

	// General errors
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Join is errors.Join, re-exported so callers only import this package
func Join(errs ...error) error {
	return errors.Join(errs...)
}
