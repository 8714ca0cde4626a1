package bot

import "errors"

var (
	ErrNotFound     = errors.New("bot not found")
	ErrTimeout      = errors.New("bot timed out")
	ErrFailed       = errors.New("bot failed")
	ErrEmptyReply   = errors.New("bot reply is empty")
	ErrInvalidReply = errors.New("bot reply is not a legal move")
)
