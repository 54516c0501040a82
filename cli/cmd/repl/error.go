package repl

import "errors"

// Sentinel errors.
var (
	ErrOutOfBounds    = errors.New("history index out of range")
	ErrUnknownCommand = errors.New("unknown command (try help)")
	ErrEditDeclined   = errors.New("edit declined")
)
