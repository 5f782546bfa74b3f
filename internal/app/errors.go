package app

import (
	"errors"
)

var (
	ErrInvalidState      = errors.New("action not allowed in the current game status")
	ErrInvalidTurn       = errors.New("not this player's turn")
	ErrMissingContext    = errors.New("missing context for action")
	ErrUnresolvableTrick = errors.New("trick cannot be resolved")
	ErrInvalidInput      = errors.New("invalid input")
)

// ErrorKind is the category reported with a failed result.
type ErrorKind string

const (
	KindInvalidState      ErrorKind = "invalid_state"
	KindInvalidTurn       ErrorKind = "invalid_turn"
	KindMissingContext    ErrorKind = "missing_context"
	KindUnresolvableTrick ErrorKind = "unresolvable_trick"
	KindInvalidInput      ErrorKind = "invalid_input"
)

// KindOf maps an error returned by an action to its category.
func KindOf(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrInvalidState):
		return KindInvalidState
	case errors.Is(err, ErrInvalidTurn):
		return KindInvalidTurn
	case errors.Is(err, ErrMissingContext):
		return KindMissingContext
	case errors.Is(err, ErrUnresolvableTrick):
		return KindUnresolvableTrick
	default:
		return KindInvalidInput
	}
}
