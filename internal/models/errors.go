package models

import "errors"

// Domain errors surfaced by the services. Handlers translate these to
// HTTP statuses; anything else is treated as a store/internal failure.
var (
	ErrInvalidConfiguration = errors.New("invalid card configuration")
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionInactive      = errors.New("session is no longer active")
)

// SessionAlreadyPlayedError is an expected outcome, not a fault: the
// session was consumed earlier (or by a concurrent racer) and Result is
// the authoritative persisted prize.
type SessionAlreadyPlayedError struct {
	SessionID string
	Result    string
}

func (e *SessionAlreadyPlayedError) Error() string {
	return "session " + e.SessionID + " already played"
}

// AsAlreadyPlayed unwraps err into a SessionAlreadyPlayedError, if it is one.
func AsAlreadyPlayed(err error) (*SessionAlreadyPlayedError, bool) {
	var target *SessionAlreadyPlayedError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}
