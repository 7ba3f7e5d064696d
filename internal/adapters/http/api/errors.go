package api

import (
	"errors"
	"net/http"

	"github.com/okian/brokerscore/internal/adapters/repository"
	service "github.com/okian/brokerscore/internal/app"
	"github.com/okian/brokerscore/internal/domain/model"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
	ErrServe      = errors.New("http serve failed")
)

// statusFor maps domain error kinds to an HTTP status and error code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, ErrBadRequest), errors.Is(err, repository.ErrInvalidLimit):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, service.ErrNotLoaded):
		return http.StatusServiceUnavailable, "not_loaded"
	case errors.Is(err, service.ErrNoSource):
		return http.StatusConflict, "no_source"
	case errors.Is(err, model.ErrEmptyDataset):
		return http.StatusUnprocessableEntity, "empty_dataset"
	case errors.Is(err, model.ErrAcquisition):
		return http.StatusBadGateway, "acquisition_failed"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
