package playback

import (
	"fmt"
	"time"
)

// TimeoutError means the player did not confirm a track within the readiness window.
// It wraps player.ErrNotReady.
type TimeoutError struct {
	Title   string
	Timeout time.Duration
	Err     error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("player did not become ready within %s", e.Timeout)
}

func (e *TimeoutError) Unwrap() error {
	return e.Err
}

// Error is a playback failure reported by the backend.
type Error struct {
	Title string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("playing %q: %v", e.Title, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
