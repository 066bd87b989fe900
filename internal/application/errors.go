package application

import "errors"

var (
	// ErrUnauthenticated is returned when no credential accompanies a request.
	ErrUnauthenticated = errors.New("application: authentication required")
	// ErrInvalidToken is returned when a credential is malformed, expired, or
	// fails signature verification.
	ErrInvalidToken = errors.New("application: invalid or expired token")
	// ErrInvalidCredentials is returned when login email/password verification fails.
	ErrInvalidCredentials = errors.New("application: invalid credentials")
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("application: not found")
	// ErrAlreadyExists is returned when a registration collides with an existing email.
	ErrAlreadyExists = errors.New("application: already exists")
	// ErrAlreadyRSVPed is returned when an RSVP exists for the (user, event) pair.
	// It is a domain outcome rather than a failure: the record count is unchanged.
	ErrAlreadyRSVPed = errors.New("application: already RSVPed")
	// ErrInvalidEventID is returned when an event identifier is syntactically
	// malformed, before any store lookup is attempted.
	ErrInvalidEventID = errors.New("application: invalid event ID format")
	// ErrEventAndAuthRequired is returned when the RSVP workflow is missing
	// either the event reference or the caller identity.
	ErrEventAndAuthRequired = errors.New("application: event ID and authentication required")
)

// ValidationError captures field level validation issues that callers can
// surface to users.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	return "validation failed"
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}
