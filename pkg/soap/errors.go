package soap

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrTransport  = errors.New("soap transport error")
	ErrTimeout    = errors.New("soap call timed out")
	ErrExtraction = errors.New("soap result extraction error")
)

// TransportError is returned when the upstream could not be reached or answered with a
// non-2xx status. StatusCode is 0 for network level failures.
type TransportError struct {
	Method     string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("soap %s: upstream returned status %d", e.Method, e.StatusCode)
	}

	return fmt.Sprintf("soap %s: %v", e.Method, e.Err)
}

func (e *TransportError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrTransport}
	}
	return []error{ErrTransport, e.Err}
}

// TimeoutError is returned when a call was cancelled because its own timeout elapsed
type TimeoutError struct {
	Method  string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("soap %s: no response within %s", e.Method, e.Timeout)
}

func (e *TimeoutError) Unwrap() error {
	return ErrTimeout
}

// ExtractionError means the result element was present but did not hold valid JSON.
// This is an upstream contract break rather than an empty result.
type ExtractionError struct {
	Method string
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("soap %s: invalid result payload: %v", e.Method, e.Err)
}

func (e *ExtractionError) Unwrap() []error {
	return []error{ErrExtraction, e.Err}
}
