// Package errs holds the error taxonomy shared by the domain and application
// layers. Concrete failures wrap one of these sentinels, callers match them
// with errors.Is.
package errs

import "errors"

var (
	// ErrValidation marks malformed input: a bad trade or a trade recorded
	// against the wrong instrument.
	ErrValidation = errors.New("validation failed")
	// ErrTypeMismatch marks an argument that is not a properly constructed value.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrNotAvailable marks a metric that cannot be computed from the data yet.
	ErrNotAvailable = errors.New("not available")
	// ErrDivisionUndefined marks a calculation that would divide by a zero price.
	ErrDivisionUndefined = errors.New("division undefined")
	// ErrNotFound marks a lookup of an unregistered instrument.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks a duplicate instrument registration.
	ErrConflict = errors.New("conflict")
)
