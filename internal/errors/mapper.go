// internal/errors/mapper.go
package errors

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors returned by the store and service layers. Callers branch
// with errors.Is; nothing below this package ever reaches a user raw.
var (
	ErrDocTooLarge        = errors.New("document exceeds the pinned-message size limit")
	ErrBackendUnavailable = errors.New("document backend unavailable")
	ErrUserNotFound       = errors.New("user record not found")
	ErrNotRegistered      = errors.New("user is not registered")
	ErrAlreadyRegistered  = errors.New("user is already registered")
	ErrNoSession          = errors.New("no registration session in progress")
	ErrVIPRequired        = errors.New("vip required")
	ErrNoCandidates       = errors.New("no candidates available")
	ErrUnauthorized       = errors.New("admin only")
)

// ValidationError reports a rejected registration input. The session stays
// on the same step and the user is re-prompted with Reason.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Invalid creates a ValidationError for a rejected input field.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// UserMessage converts any error into the plain-language reply sent back to
// the chat. Keeps handlers clean by centralizing error-to-copy mapping; no
// internal details leak past this point.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Reason
	}

	switch {
	case errors.Is(err, ErrDocTooLarge):
		return "Registrations are full right now — contact an admin."

	case errors.Is(err, ErrBackendUnavailable):
		return "Storage is unreachable. Try again later or contact an admin."

	case errors.Is(err, ErrUserNotFound):
		return "User not found."

	case errors.Is(err, ErrNotRegistered):
		return "Register first with /start."

	case errors.Is(err, ErrAlreadyRegistered):
		return "You are already registered. Use /menu to browse."

	case errors.Is(err, ErrNoSession):
		return "Unexpected input. Use /start to register."

	case errors.Is(err, ErrVIPRequired):
		return "VIP required for real profiles. Use /menu -> VIP."

	case errors.Is(err, ErrNoCandidates):
		return "No profiles available yet. Check back later."

	case errors.Is(err, ErrUnauthorized):
		return "Admin only."

	case errors.Is(err, context.DeadlineExceeded):
		return "Request timed out. Try again later."

	default:
		return "Something went wrong. Try again later or contact an admin."
	}
}
