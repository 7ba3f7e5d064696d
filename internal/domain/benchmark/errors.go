package benchmark

import "errors"

// Sentinel error kinds for this package.
var (
	ErrInvalidSnapshot = errors.New("invalid benchmark snapshot")
	ErrLoadSnapshot    = errors.New("load benchmark snapshot failed")
)
