package apierr

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

type Kind int

const (
	KindAuthFailure Kind = iota
	KindTimeout
	KindNotFound
	KindForbidden
	// KindConflict is a 412 precondition failure: inventory already taken
	// or a promo code exhausted.
	KindConflict
	KindServerError
	// KindCanceled means the caller gave up on the call, not that the
	// server refused it.
	KindCanceled
)

// statusClientClosedRequest is the non-standard status for a request the
// client abandoned.
const statusClientClosedRequest = 499

func (k Kind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindConflict:
		return "conflict"
	case KindServerError:
		return "server_error"
	case KindCanceled:
		return "canceled"
	default:
		return "auth_failure"
	}
}

// Error is a classified API failure. Message is the server-supplied text,
// passed on to users verbatim.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
	Body       []byte
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (status %d): %v", e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// statusError is implemented by transport errors that carry a response.
type statusError interface {
	error
	HTTPStatusCode() int
	ServerMessage() string
	ResponseBody() []byte
}

func Classify(err error) *Error {
	if err == nil {
		return nil
	}

	var classified *Error
	if errors.As(err, &classified) {
		return classified
	}

	var se statusError
	if errors.As(err, &se) {
		return &Error{
			Kind:       kindForStatus(se.HTTPStatusCode()),
			StatusCode: se.HTTPStatusCode(),
			Message:    se.ServerMessage(),
			Body:       se.ResponseBody(),
			Err:        err,
		}
	}

	if errors.Is(err, context.Canceled) {
		return &Error{Kind: KindCanceled, Err: err}
	}

	if isTimeout(err) {
		return &Error{Kind: KindTimeout, Err: err}
	}

	return &Error{Kind: KindAuthFailure, Err: err}
}

func KindOf(err error) Kind {
	return Classify(err).Kind
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

func kindForStatus(code int) Kind {
	switch code {
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusPreconditionFailed:
		return KindConflict
	case http.StatusInternalServerError:
		return KindServerError
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return KindTimeout
	default:
		return KindAuthFailure
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// HTTPStatus maps a failure to the status the widget's own HTTP surface
// answers with.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	switch KindOf(err) {
	case KindTimeout:
		return http.StatusGatewayTimeout
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusPreconditionFailed
	case KindServerError:
		return http.StatusBadGateway
	case KindCanceled:
		return statusClientClosedRequest
	default:
		return http.StatusUnauthorized
	}
}
