package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jana-studio/taller/internal/rowstore"
)

func respond(t *testing.T, err error) (int, ProblemDetail) {
	t.Helper()
	rr := httptest.NewRecorder()
	RespondError(rr, err)
	var problem ProblemDetail
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &problem))
	return rr.Code, problem
}

func TestRespondErrorMapping(t *testing.T) {
	code, problem := respond(t, rowstore.ErrNotConfigured)
	require.Equal(t, http.StatusServiceUnavailable, code)
	require.Equal(t, "Backend Not Configured", problem.Title)

	backend := &rowstore.BackendError{Op: "fetch", Table: "budgets", Err: errors.New("timeout")}
	code, problem = respond(t, backend)
	require.Equal(t, http.StatusBadGateway, code)
	require.Equal(t, backend.Error(), problem.Detail)

	code, _ = respond(t, fmt.Errorf("%w: budget x", ErrNotFound))
	require.Equal(t, http.StatusNotFound, code)

	code, _ = respond(t, fmt.Errorf("%w: bad field", ErrValidation))
	require.Equal(t, http.StatusBadRequest, code)

	code, _ = respond(t, fmt.Errorf("%w: no id", rowstore.ErrInvalidRecord))
	require.Equal(t, http.StatusBadRequest, code)

	code, problem = respond(t, errors.New("boom"))
	require.Equal(t, http.StatusInternalServerError, code)
	// Internal detail is never leaked to the client.
	require.Empty(t, problem.Detail)
}

func TestValidateWrapsFieldErrors(t *testing.T) {
	type payload struct {
		Name string `validate:"required"`
	}

	require.NoError(t, Validate(payload{Name: "ok"}))

	err := Validate(payload{})
	require.ErrorIs(t, err, ErrValidation)
}
