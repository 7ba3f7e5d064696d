package api

import (
	"context"
	"net/http"

	service "github.com/okian/brokerscore/internal/app"
)

// ReloadDependencies re-reads the evaluation source.
type ReloadDependencies interface {
	Load(ctx context.Context) (service.LoadReport, error)
}

// ReloadHandler handles reload requests.
type ReloadHandler struct {
	deps ReloadDependencies
}

// NewReloadHandler creates a new reload handler.
func NewReloadHandler(deps ReloadDependencies) *ReloadHandler {
	return &ReloadHandler{deps: deps}
}

// HandleReload handles POST /reload. On failure the previous dataset stays
// active and the error kind decides the status.
func (h *ReloadHandler) HandleReload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	report, err := h.deps.Load(r.Context())
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
