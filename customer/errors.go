package customer

import (
	"fmt"
	"net/http"

	"github.com/containerd/errdefs"
)

// ValidationError reports missing required fields. It is raised before any
// network call, so a caller seeing it knows the store was never contacted.
type ValidationError struct {
	// Fields holds the per-field failures as returned by ozzo-validation.
	Fields error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid customer input: %v", e.Fields)
}

func (e *ValidationError) Unwrap() error { return e.Fields }

func (e *ValidationError) Is(target error) bool {
	return target == errdefs.ErrInvalidArgument
}

// RemoteError is a rejection from the remote store. Code and Message are
// surfaced verbatim so the presentation layer can render them.
type RemoteError struct {
	Code       string
	Message    string
	StatusCode int
}

func (e *RemoteError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("remote store: %s (%s)", e.Message, e.Code)
	}
	return fmt.Sprintf("remote store: %s", e.Message)
}

// Is maps the HTTP status onto the errdefs sentinels so callers can
// classify with errdefs.IsNotFound, errdefs.IsConflict and friends.
func (e *RemoteError) Is(target error) bool {
	switch e.StatusCode {
	case http.StatusNotFound:
		return target == errdefs.ErrNotFound
	case http.StatusConflict:
		return target == errdefs.ErrConflict
	case http.StatusBadRequest:
		return target == errdefs.ErrInvalidArgument
	}
	return target == errdefs.ErrUnknown
}

// TransportError wraps a network or decoding failure. The call may or may
// not have reached the store; cached state is left untouched either way.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure during %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool {
	return target == errdefs.ErrUnavailable
}
