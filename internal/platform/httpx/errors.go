package httpx

import (
	"errors"
	"net/http"

	"github.com/jana-studio/taller/internal/rowstore"
)

// Sentinel errors for the domain layer.
var (
	ErrNotFound   = errors.New("resource not found")
	ErrDuplicate  = errors.New("duplicate entry")
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflicting state")
)

// RespondError maps domain and row-store errors to HTTP responses using RFC7807.
// Configuration problems are reported apart from backend faults so a broken
// deployment is not mistaken for a transient failure.
func RespondError(w http.ResponseWriter, err error) {
	var backend *rowstore.BackendError
	switch {
	case errors.Is(err, rowstore.ErrNotConfigured):
		Problem(w, http.StatusServiceUnavailable, "Backend Not Configured", err.Error())
	case errors.As(err, &backend):
		Problem(w, http.StatusBadGateway, "Backend Error", backend.Error())
	case errors.Is(err, ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, ErrDuplicate):
		Problem(w, http.StatusConflict, "Duplicate", err.Error())
	case errors.Is(err, ErrConflict):
		Problem(w, http.StatusConflict, "Conflict", err.Error())
	case errors.Is(err, ErrValidation), errors.Is(err, rowstore.ErrInvalidRecord):
		Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
