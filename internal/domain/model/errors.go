package model

import "errors"

// Dataset-level failures. Both are fatal to a load; per-field problems never
// surface as errors.
var (
	ErrEmptyDataset = errors.New("empty dataset")
	ErrAcquisition  = errors.New("dataset acquisition failed")
)
