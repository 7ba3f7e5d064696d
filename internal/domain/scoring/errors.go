package scoring

import "errors"

// Sentinel kinds for scoring errors.
var (
	ErrUnknownTable = errors.New("unknown scoring table")
	ErrInvalidRule  = errors.New("invalid scoring rule")
)
