package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/okian/brokerscore/internal/domain/ranking"
)

// RankDependencies defines the interface for rank operations.
type RankDependencies interface {
	Rank(ctx context.Context, id int) (ranking.Position, error)
}

// RankHandler handles rank requests.
type RankHandler struct {
	deps RankDependencies
}

// NewRankHandler creates a new rank handler.
func NewRankHandler(deps RankDependencies) *RankHandler {
	return &RankHandler{deps: deps}
}

// HandleGetRank handles GET /rank/{id} requests.
func (h *RankHandler) HandleGetRank(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	id, ok := pathID(r, "/rank/")
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: id must be a positive integer", ErrBadRequest))
		return
	}
	pos, err := h.deps.Rank(r.Context(), id)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pos)
}
