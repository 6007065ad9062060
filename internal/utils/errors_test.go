package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		code Code
		want int
	}{
		{CodeInvalidArgument, http.StatusBadRequest},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeForbidden, http.StatusForbidden},
		{CodeNotFound, http.StatusNotFound},
		{CodeConflict, http.StatusConflict},
		{CodeUnavailable, http.StatusServiceUnavailable},
		{CodeInternal, http.StatusInternalServerError},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, HTTPStatus(E(c.code, "Op", "msg", nil)), string(c.code))
	}

	assert.Equal(t, http.StatusNotFound, HTTPStatus(fmt.Errorf("load: %w", ErrNotFound)))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}

func TestIsCodeSeesThroughWrapping(t *testing.T) {
	inner := E(CodeConflict, "Repo.Create", "duplicate", nil)
	wrapped := fmt.Errorf("apply: %w", inner)

	assert.True(t, IsCode(wrapped, CodeConflict))
	assert.False(t, IsCode(wrapped, CodeNotFound))
	assert.False(t, IsCode(errors.New("plain"), CodeConflict))
}

func TestAppErrorMessage(t *testing.T) {
	err := E(CodeInternal, "JobService.Create", "failed to create job", errors.New("pq: down"))
	assert.Equal(t, "JobService.Create: failed to create job: pq: down", err.Error())
	assert.EqualError(t, errors.Unwrap(err), "pq: down")
}

func TestEFields(t *testing.T) {
	err := EFields("AuthService.Register", []FieldError{{Field: "email", Message: "is required"}})
	assert.True(t, IsCode(err, CodeInvalidArgument))

	var ae *AppError
	assert.True(t, errors.As(err, &ae))
	assert.Len(t, ae.Fields, 1)
}
