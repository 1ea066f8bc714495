package services

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a moderation operation was refused. The HTTP layer
// maps kinds to status codes; the service layer only guarantees the kind is
// distinguishable and the message human-readable.
type ErrorKind string

const (
	ErrNotFound         ErrorKind = "NOT_FOUND"
	ErrSelfModification ErrorKind = "SELF_MODIFICATION"
	ErrSelfDemotion     ErrorKind = "SELF_DEMOTION"
	ErrLastAdmin        ErrorKind = "LAST_ADMIN"
	ErrInvalidState     ErrorKind = "INVALID_STATE"
	ErrTooSoon          ErrorKind = "TOO_SOON"
	ErrStillBanned      ErrorKind = "STILL_BANNED"
	ErrStillSuspended   ErrorKind = "STILL_SUSPENDED"
)

type ModerationError struct {
	Kind    ErrorKind
	Message string
}

func (e *ModerationError) Error() string {
	return e.Message
}

func moderationErr(kind ErrorKind, format string, args ...interface{}) error {
	return &ModerationError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// KindOf returns the classification of err, or "" for unclassified errors
// (storage faults and the like).
func KindOf(err error) ErrorKind {
	var m *ModerationError
	if errors.As(err, &m) {
		return m.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
