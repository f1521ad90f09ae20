package analysis

import (
	"errors"
	"fmt"
)

// ErrInFlight is returned by Submit while a previous request is still
// pending. At most one request may be outstanding per orchestrator.
var ErrInFlight = errors.New("analysis request already in flight")

// ErrNeedsReset is returned by Submit when the orchestrator still holds a
// completed result; Reset must be called before a new submission.
var ErrNeedsReset = errors.New("orchestrator holds a completed result; reset before submitting again")

// ServiceError is a non-success response from the analysis endpoint. The
// server-supplied message is carried through for display when present.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("analysis service returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("analysis service returned status %d: %s", e.StatusCode, e.Message)
}

// NetworkError is a submission failure before any response was obtained
// (connectivity, timeout). Recoverable by re-submission.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("analysis request failed: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// MalformedResponseError is a success status whose body did not conform to
// the expected shape. A contract violation, always surfaced, never
// silently defaulted.
type MalformedResponseError struct {
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed analysis response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }
