// Package searcherror defines the errors a search query can fail with.
//
// Errors caused by the query itself (unknown operators, malformed values,
// node kinds the engine cannot evaluate) match ErrBadRequest with errors.Is so
// callers can map them to a user-facing "bad request". Resolver failures do
// not match ErrBadRequest: they are backend problems, not user mistakes.
package searcherror

import (
	"errors"
	"fmt"
)

// ErrBadRequest classifies errors caused by the query the user typed.
var ErrBadRequest = errors.New("bad search query")

// UnsupportedNodeKindError is returned for a query node the dispatcher does
// not know how to evaluate.
type UnsupportedNodeKindError struct {
	Kind string
}

func (e *UnsupportedNodeKindError) Error() string {
	return fmt.Sprintf("search cannot handle %q nodes", e.Kind)
}

// Is reports ErrBadRequest.
func (e *UnsupportedNodeKindError) Is(target error) bool {
	return target == ErrBadRequest
}

// UnknownOperatorError is returned for a field modifier whose operator is not
// enabled in the registry.
type UnknownOperatorError struct {
	Operator string
}

func (e *UnknownOperatorError) Error() string {
	return fmt.Sprintf("unsupported search operator: %q", e.Operator)
}

// Is reports ErrBadRequest.
func (e *UnknownOperatorError) Is(target error) bool {
	return target == ErrBadRequest
}

// InvalidOperatorValueError is returned when a numeric or date operator value
// cannot be parsed.
type InvalidOperatorValueError struct {
	Operator string
	Value    string
	Err      error
}

func (e *InvalidOperatorValueError) Error() string {
	return fmt.Sprintf("invalid value for operator %q: '%s': %v", e.Operator, e.Value, e.Err)
}

func (e *InvalidOperatorValueError) Unwrap() error {
	return e.Err
}

// Is reports ErrBadRequest.
func (e *InvalidOperatorValueError) Is(target error) bool {
	return target == ErrBadRequest
}

// ResolverError wraps a failure of an entity resolver backend.
type ResolverError struct {
	Operator string
	Entity   string
	Err      error
}

func (e *ResolverError) Error() string {
	return fmt.Sprintf("%s lookup for operator %q failed: %v", e.Entity, e.Operator, e.Err)
}

func (e *ResolverError) Unwrap() error {
	return e.Err
}

// IsBadRequest reports whether err was caused by the query itself.
func IsBadRequest(err error) bool {
	return errors.Is(err, ErrBadRequest)
}
