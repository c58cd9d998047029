package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/siddheshp/ems-api-okta/internal/shared/apperror"
)

func TestToHTTP(t *testing.T) {
	t.Run("app error passes through", func(t *testing.T) {
		httpErr := apperror.ToHTTP(apperror.ErrForbidden)

		assert.Equal(t, http.StatusForbidden, httpErr.Status)
		assert.Equal(t, apperror.CodeForbidden, httpErr.Code)
		assert.Equal(t, "You do not have permission to access this resource", httpErr.Message)
		assert.Nil(t, httpErr.Details)
	})

	t.Run("wrapped cause surfaces as details", func(t *testing.T) {
		cause := errors.New("token verification failed: signature invalid")
		err := apperror.Wrap(cause, apperror.CodeUnauthenticated, "Invalid credentials", http.StatusUnauthorized)

		httpErr := apperror.ToHTTP(err)

		assert.Equal(t, http.StatusUnauthorized, httpErr.Status)
		assert.Equal(t, cause.Error(), httpErr.Details)
	})

	t.Run("app error nested in a chain is found", func(t *testing.T) {
		err := fmt.Errorf("handling request: %w", apperror.ErrNotFound)

		httpErr := apperror.ToHTTP(err)

		assert.Equal(t, http.StatusNotFound, httpErr.Status)
		assert.Equal(t, apperror.CodeNotFound, httpErr.Code)
	})

	t.Run("unknown error collapses to 500", func(t *testing.T) {
		httpErr := apperror.ToHTTP(errors.New("pq: connection refused"))

		assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
		assert.Equal(t, apperror.CodeInternalError, httpErr.Code)
		assert.NotContains(t, httpErr.Message, "connection refused")
	})
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("record not found")
	err := apperror.Wrap(cause, apperror.CodeNotFound, "Resource not found", http.StatusNotFound)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Resource not found: record not found", err.Error())
}

func TestMapValidationError(t *testing.T) {
	t.Run("non-validator error maps to a generic 400", func(t *testing.T) {
		err := apperror.MapValidationError(errors.New("unexpected EOF"))

		httpErr := apperror.ToHTTP(err)
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		assert.Equal(t, apperror.CodeInvalidInput, httpErr.Code)
	})
}
