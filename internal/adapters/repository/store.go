// Package repository holds the ranked, in-memory evaluation store.
package repository

import (
	"context"

	"github.com/okian/brokerscore/internal/domain/model"
	"github.com/okian/brokerscore/internal/domain/types"
)

// Store provides access to the active evaluation dataset.
type Store interface {
	// Replace swaps the whole dataset atomically. Readers see either the old
	// or the new dataset, never a mix.
	Replace(ctx context.Context, evals []model.Evaluation) error

	// GetByID returns ErrNotFound if id is unknown.
	GetByID(ctx context.Context, id int) (model.Evaluation, error)
	// GetByName matches case-insensitively; the lowest id wins on duplicates.
	GetByName(ctx context.Context, name string) (model.Evaluation, error)

	// Rank returns the 1-based position of id ordered by total desc, id asc.
	Rank(ctx context.Context, id int) (types.Entry, error)
	// TopN returns the first n entries in rank order.
	TopN(ctx context.Context, n int) ([]types.Entry, error)

	// All returns the dataset in id order.
	All(ctx context.Context) []model.Evaluation
	// Count returns the number of evaluations.
	Count(ctx context.Context) int
}
