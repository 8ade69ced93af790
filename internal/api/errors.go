package api

import (
	"github.com/lttslabs/etlctl/internal/shared"
)

// ErrorKind is the error taxonomy every failed call resolves to.
type ErrorKind int

const (
	// KindBusiness: the backend processed the request but reports a
	// domain-level failure. The message carries the backend's reason.
	KindBusiness ErrorKind = iota
	// KindAuthExpired: the token is no longer accepted. The client has
	// already cleared the session and requested navigation to login.
	KindAuthExpired
	// KindTransport: no usable response (network error, timeout,
	// malformed body).
	KindTransport
)

// Fallback messages used when neither the body nor the transport offers one.
const (
	defaultFailureMessage = "request failed"
	expiredSessionMessage = "session expired, please log in again"
)

// Error is the typed error every failed API call returns.
type Error struct {
	Kind    ErrorKind
	Code    int    // business code, 0 when none was extracted
	Status  int    // HTTP status, 0 when the transport never responded
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap maps the kind onto the shared sentinel errors so callers can use
// errors.Is without importing this package's kinds.
func (e *Error) Unwrap() error {
	switch e.Kind {
	case KindAuthExpired:
		return shared.ErrSessionExpired
	case KindTransport:
		return shared.ErrAPIRequest
	default:
		return nil
	}
}
