package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. cargo weight over truck capacity, driver already on
// an active trip). Handlers should map this to HTTP 400.
var ErrValidation = errors.New("validation error")

// ErrForbidden is returned by service functions when the acting user is not
// allowed to perform the operation (e.g. a driver updating a trip they are
// not assigned to). Handlers should map this to HTTP 403.
var ErrForbidden = errors.New("forbidden")

// FieldError is a validation failure tied to a single request field.
// Handlers render it as a field-keyed error body, e.g.
// {"truck": "A truck must be assigned to the trip."}.
// It unwraps to ErrValidation so errors.Is checks keep working.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

func (e *FieldError) Unwrap() error {
	return ErrValidation
}
