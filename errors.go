package waygate

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidKind is returned when a request carries an unrecognized
	// transition kind. Reported before any state mutation.
	ErrInvalidKind = errors.New("waygate: invalid transition kind")

	// ErrMissingPath is returned when a kind that requires a destination
	// path did not receive one.
	ErrMissingPath = errors.New("waygate: destination path is required")

	// ErrPageNotFound is returned by BackTo when the requested route is
	// not on the current page stack.
	ErrPageNotFound = errors.New("waygate: page not found in stack")

	// ErrUnsupportedKind is returned when the host reports no support for
	// the requested kind and the fallback policy is FallbackFail.
	ErrUnsupportedKind = errors.New("waygate: transition kind not supported by host")
)

// GuardRejectedError reports that a guard vetoed the transition. The host
// was never called and no history entry was written.
type GuardRejectedError struct {
	From  string
	To    string
	Guard int   // index in evaluation order
	Cause error // non-nil when the guard returned an error or panicked
}

func (e *GuardRejectedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("waygate: guard %d rejected %q: %v", e.Guard, e.To, e.Cause)
	}
	return fmt.Sprintf("waygate: guard %d rejected %q", e.Guard, e.To)
}

func (e *GuardRejectedError) Unwrap() error { return e.Cause }

// HostNavigationError reports that the host primitive failed. The wrapped
// error is the host's payload, unmodified.
type HostNavigationError struct {
	Kind Kind
	URL  string
	Err  error
}

func (e *HostNavigationError) Error() string {
	return fmt.Sprintf("waygate: host %s to %q failed: %v", e.Kind, e.URL, e.Err)
}

func (e *HostNavigationError) Unwrap() error { return e.Err }
