package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// RequestError reports a response the caller cannot use: a non-2xx status,
// or a 2xx body that failed to decode.
type RequestError struct {
	Method     string
	URL        string
	StatusCode int
	// Body holds the start of the response body, if any.
	Body string
	// Err is set when a successful response could not be decoded.
	Err error
}

func (e *RequestError) Error() string {
	status := fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	status = strings.TrimSpace(status)
	msg := fmt.Sprintf("%s %s -> %s", e.Method, e.URL, status)
	if e.Err != nil {
		return fmt.Sprintf("%s: decoding response: %v", msg, e.Err)
	}
	if body := strings.TrimSpace(e.Body); body != "" {
		return fmt.Sprintf("%s: %s", msg, body)
	}
	return msg
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// TransportError reports a request that did not produce any response.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status carried by err, or 0 if err is not
// (and does not wrap) a RequestError.
func StatusCode(err error) int {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.StatusCode
	}
	return 0
}

// IsConflict reports whether err is a 409 response. The server uses it for
// duplicate (code, service) pairs.
func IsConflict(err error) bool {
	return StatusCode(err) == http.StatusConflict
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// IsTransport reports whether err wraps a TransportError.
func IsTransport(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}
