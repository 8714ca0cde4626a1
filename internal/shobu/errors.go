package shobu

import "errors"

var (
	// ErrInvalidFormat is returned when board, position or move text can't be parsed.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrIllegalMove is returned when a well-formed move is not valid in the current position.
	ErrIllegalMove = errors.New("illegal move")
)
