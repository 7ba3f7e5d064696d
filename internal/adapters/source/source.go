// Package source holds the acquisition collaborators that produce raw rows
// for the normalizer.
package source

import (
	"context"
	"fmt"

	"github.com/okian/brokerscore/internal/domain/model"
)

// Source returns the raw rows of one dataset. An empty result is reported as
// model.ErrEmptyDataset and any I/O failure as model.ErrAcquisition.
type Source interface {
	Fetch(ctx context.Context) ([]model.RawRecord, error)
}

// Static serves a fixed set of rows. Rows are copied on every Fetch.
type Static struct {
	rows []model.RawRecord
}

// NewStatic creates a Static source.
func NewStatic(rows []model.RawRecord) *Static {
	return &Static{rows: cloneRows(rows)}
}

// Fetch implements Source.
func (s *Static) Fetch(ctx context.Context) ([]model.RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrAcquisition, err)
	}
	if len(s.rows) == 0 {
		return nil, fmt.Errorf("static source: %w", model.ErrEmptyDataset)
	}
	return cloneRows(s.rows), nil
}

// Func adapts a plain function to Source.
type Func func(ctx context.Context) ([]model.RawRecord, error)

// Fetch implements Source.
func (f Func) Fetch(ctx context.Context) ([]model.RawRecord, error) { return f(ctx) }

func cloneRows(rows []model.RawRecord) []model.RawRecord {
	if rows == nil {
		return nil
	}
	out := make([]model.RawRecord, len(rows))
	for i, r := range rows {
		c := make(model.RawRecord, len(r))
		for k, v := range r {
			c[k] = v
		}
		out[i] = c
	}
	return out
}
