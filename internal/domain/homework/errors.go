// internal/domain/homework/errors.go
package homework

import (
	"errors"
	"fmt"
	"net/url"
)

// ErrEmptyResult means the API answered correctly but had no homework to report.
// It is not a failure: the poller skips the cycle quietly.
var ErrEmptyResult = errors.New("no homeworks in API response")

// ConnectionError is a transport-level failure talking to the API.
type ConnectionError struct {
	URL    string
	Params url.Values
	Err    error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("endpoint %s is unreachable (params %s): %v", e.URL, e.Params.Encode(), e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// APIStatusError is returned when the API answers with anything but 200 OK.
type APIStatusError struct {
	StatusCode int
	Reason     string
	Body       string
}

func (e *APIStatusError) Error() string {
	return fmt.Sprintf("API responded with %d %s: %s", e.StatusCode, e.Reason, e.Body)
}

// ShapeError means the response body does not look like a homework status answer.
type ShapeError struct {
	Reason string
	Err    error
}

func (e *ShapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed API response: %s: %v", e.Reason, e.Err)
	}
	return "malformed API response: " + e.Reason
}

func (e *ShapeError) Unwrap() error { return e.Err }

// MissingFieldError is returned when a homework record lacks a required field.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("homework record has no %q field", e.Field)
}

// UnknownStatusError is returned for status codes outside the Verdict Table.
type UnknownStatusError struct {
	Status       string
	HomeworkName string
}

func (e *UnknownStatusError) Error() string {
	return fmt.Sprintf("undocumented status %q for homework %q", e.Status, e.HomeworkName)
}
