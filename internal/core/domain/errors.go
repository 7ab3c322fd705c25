package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoSources indicates every configured catalog was empty or unreadable.
	// Ranking an empty pool is meaningless, so this is a configuration error
	// rather than an empty recommendation.
	ErrNoSources = errors.New("no sources available to rank")

	// ErrUnknownStrategy indicates an unrecognised diversification strategy name.
	ErrUnknownStrategy = errors.New("unknown diversification strategy")

	// ErrUnknownProvider indicates an unrecognised import provider.
	ErrUnknownProvider = errors.New("unknown import provider")

	// ErrInvalidWeights indicates scoring weights that do not sum to 1.0.
	ErrInvalidWeights = errors.New("scoring weights must sum to 1.0")
)

// ParseError describes a catalog row that could not become a Source.
// Loaders skip such rows; they never abort the whole load.
type ParseError struct {
	// Line is the 1-based line number in the input, 0 when unknown.
	Line int

	// Field is the column that failed.
	Field string

	// Reason explains the failure.
	Reason string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: field %q: %s", e.Line, e.Field, e.Reason)
	}
	return fmt.Sprintf("field %q: %s", e.Field, e.Reason)
}

// Is lets errors.Is match any ParseError against ErrInvalidInput.
func (e *ParseError) Is(target error) bool {
	return target == ErrInvalidInput
}
