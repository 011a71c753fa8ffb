package dataaggregator

import "github.com/sourcegraph/conc/panics"

// Result is the outcome of one sub-call, either a value or an error
type Result[T any] struct {
	Value T
	Err   error
}

func (r Result[T]) OK() bool {
	return r.Err == nil
}

// capture runs fn and records its outcome. A panic inside fn is recorded as an error.
func capture[T any](fn func() (T, error)) Result[T] {
	var result Result[T]

	var catcher panics.Catcher
	catcher.Try(func() {
		result.Value, result.Err = fn()
	})

	if recovered := catcher.Recovered(); recovered != nil {
		var empty T
		return Result[T]{Value: empty, Err: recovered.AsError()}
	}

	return result
}

// valueOr returns the result value when the call succeeded and it is non-nil, otherwise fallback
func valueOr[T any](r Result[[]T], fallback []T) []T {
	if !r.OK() || r.Value == nil {
		return fallback
	}
	return r.Value
}
