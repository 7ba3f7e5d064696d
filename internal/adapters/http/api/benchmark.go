package api

import (
	"context"
	"net/http"

	"github.com/okian/brokerscore/internal/domain/benchmark"
)

// BenchmarkDependencies exposes the active benchmark snapshot.
type BenchmarkDependencies interface {
	Benchmark(ctx context.Context) benchmark.Statistics
}

// BenchmarkHandler handles benchmark requests.
type BenchmarkHandler struct {
	deps BenchmarkDependencies
}

// NewBenchmarkHandler creates a new benchmark handler.
func NewBenchmarkHandler(deps BenchmarkDependencies) *BenchmarkHandler {
	return &BenchmarkHandler{deps: deps}
}

// HandleGetBenchmark handles GET /benchmark.
func (h *BenchmarkHandler) HandleGetBenchmark(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Benchmark(r.Context()))
}
