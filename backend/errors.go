package backend

import (
	"errors"
	"fmt"
)

// ValidationError is an input problem caught before any network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// TransportError means the request never completed (DNS, refused, timeout).
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("could not reach the scanning service (%s): %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServerError is a response the backend reported as a failure: a non-2xx
// status or a body without status "success".
type ServerError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s failed: server returned HTTP %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s failed", e.Op)
}

// ShapeError is a body that is not the JSON we expected (an HTML error
// page, a proxy splash, truncated JSON). It points at a deployment or
// configuration problem rather than something the user can fix.
type ShapeError struct {
	Op          string
	StatusCode  int
	ContentType string
	Err         error
}

func (e *ShapeError) Error() string {
	msg := fmt.Sprintf("unexpected response from the server during %s (content type %q); check the API base URL and backend deployment", e.Op, e.ContentType)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("unexpected HTTP %d response from the server during %s (content type %q); check the API base URL and backend deployment", e.StatusCode, e.Op, e.ContentType)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ShapeError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a server 404.
func IsNotFound(err error) bool {
	var se *ServerError
	return errors.As(err, &se) && se.StatusCode == 404
}

// UserMessage maps any client error to the one-line text shown to a user.
func UserMessage(err error) string {
	var ve *ValidationError
	var te *TransportError
	var se *ServerError
	var she *ShapeError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &ve):
		return ve.Message
	case errors.As(err, &te):
		return "Unable to connect to the scanning service. Please check your connection and try again."
	case errors.As(err, &se):
		if se.Message != "" {
			return se.Message
		}
		return "The server could not complete the request. Please try again later."
	case errors.As(err, &she):
		return "Server configuration error: the service returned an unexpected response."
	default:
		return err.Error()
	}
}
