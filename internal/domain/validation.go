package domain

import "fmt"

// Result is the outcome of validating untrusted input: either a fully
// constructed value or the complete list of everything wrong with it.
// Independent checks are merged, never short-circuited, so a caller
// sees all failures at once.
type Result[T any] struct {
	value  T
	errors []string
}

func Success[T any](value T) Result[T] {
	return Result[T]{value: value}
}

func Failure[T any](errors ...string) Result[T] {
	return Result[T]{errors: errors}
}

func (r Result[T]) IsSuccess() bool {
	return len(r.errors) == 0
}

func (r Result[T]) IsFailure() bool {
	return len(r.errors) > 0
}

// Errors returns the accumulated failure messages in check order.
// Empty on success.
func (r Result[T]) Errors() []string {
	return r.errors
}

// Value returns the validated value. Calling it on a failed result is a
// programming error, not a recoverable condition.
func (r Result[T]) Value() T {
	if r.IsFailure() {
		panic(fmt.Sprintf("domain: Value called on a failed validation result: %v", r.errors))
	}
	return r.value
}

// collectErrors flattens the failures of independent checks, preserving
// check order.
func collectErrors(errorLists ...[]string) []string {
	var all []string
	for _, errs := range errorLists {
		all = append(all, errs...)
	}
	return all
}
