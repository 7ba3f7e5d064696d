package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound     = errors.New("evaluation not found")
	ErrInvalidLimit = errors.New("invalid leaderboard limit")
	ErrDuplicateID  = errors.New("duplicate evaluation id")
)
