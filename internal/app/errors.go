package service

import "errors"

// Sentinel error kinds for the service.
var (
	ErrNotLoaded = errors.New("no dataset loaded")
	ErrNoSource  = errors.New("no data source configured")
)
