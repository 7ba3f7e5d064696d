package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/okian/brokerscore/internal/domain/model"
	"github.com/okian/brokerscore/internal/domain/ranking"
	"github.com/okian/brokerscore/internal/domain/scoring"
)

// EvaluationDependencies defines the interface for evaluation lookups.
type EvaluationDependencies interface {
	All(ctx context.Context) ([]model.Evaluation, error)
	GetByID(ctx context.Context, id int) (model.Evaluation, error)
	GetByName(ctx context.Context, name string) (model.Evaluation, error)
	Rank(ctx context.Context, id int) (ranking.Position, error)
	Summary(ctx context.Context, id int) (scoring.Summary, error)
}

// EvaluationsHandler serves the /evaluations family of routes.
type EvaluationsHandler struct {
	deps EvaluationDependencies
}

// NewEvaluationsHandler creates a new evaluations handler.
func NewEvaluationsHandler(deps EvaluationDependencies) *EvaluationsHandler {
	return &EvaluationsHandler{deps: deps}
}

// evaluationDetail is one evaluation with its position and category summary.
type evaluationDetail struct {
	Evaluation model.Evaluation      `json:"evaluation"`
	Position   ranking.Position      `json:"position"`
	Summary    scoring.Summary       `json:"summary"`
	Latency    scoring.LatencyGrades `json:"latency"`
}

// HandleList handles GET /evaluations.
func (h *EvaluationsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	evals, err := h.deps.All(r.Context())
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, evals)
}

// HandleGet handles GET /evaluations/{id}.
func (h *EvaluationsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	id, ok := pathID(r, "/evaluations/")
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: id must be a positive integer", ErrBadRequest))
		return
	}
	h.writeDetail(w, r, id)
}

// HandleSearch handles GET /evaluations/search?name=.
func (h *EvaluationsHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	name := r.URL.Query().Get("name")
	if strings.TrimSpace(name) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: missing name", ErrBadRequest))
		return
	}
	e, err := h.deps.GetByName(r.Context(), name)
	if err != nil {
		writeFailure(w, err)
		return
	}
	h.writeDetail(w, r, e.ID)
}

func (h *EvaluationsHandler) writeDetail(w http.ResponseWriter, r *http.Request, id int) {
	ctx := r.Context()
	e, err := h.deps.GetByID(ctx, id)
	if err != nil {
		writeFailure(w, err)
		return
	}
	pos, err := h.deps.Rank(ctx, id)
	if err != nil {
		writeFailure(w, err)
		return
	}
	summary, err := h.deps.Summary(ctx, id)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, evaluationDetail{
		Evaluation: e,
		Position:   pos,
		Summary:    summary,
		Latency:    scoring.GradeEvaluation(e),
	})
}
