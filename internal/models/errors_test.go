package models

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Status(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, NewNotFoundError("Match", "m1").Status())
	assert.Equal(t, http.StatusBadRequest, NewValidationError("bad").Status())
	assert.Equal(t, http.StatusBadGateway, NewBackendError("update", errors.New("x")).Status())
	assert.Equal(t, http.StatusInternalServerError, NewInternalError(errors.New("x")).Status())
	assert.Equal(t, http.StatusInternalServerError, (&AppError{Code: "SOMETHING"}).Status())
}

func TestAsAppError(t *testing.T) {
	notFound := NewNotFoundError("Match", "m1")
	assert.Same(t, notFound, AsAppError(fmt.Errorf("wrapped: %w", notFound)))

	boom := errors.New("connection reset")
	got := AsAppError(boom)
	assert.Equal(t, CodeBackend, got.Code)
	assert.ErrorIs(t, got, boom)
	assert.Equal(t, "backend call failed: connection reset", got.Error())
}
