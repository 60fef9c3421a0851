package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "nil error",
			err:  nil,
			want: "",
		},
		{
			name: "app error uses its message",
			err:  BadRequest("start time is required", errors.New("details")),
			want: "start time is required",
		},
		{
			name: "wrapped app error",
			err:  fmt.Errorf("handler: %w", NotFound("appointment", nil)),
			want: "appointment not found",
		},
		{
			name: "json envelope prefers response.message",
			err:  errors.New(`{"message":"outer","response":{"message":"inner"}}`),
			want: "inner",
		},
		{
			name: "json envelope falls back to message",
			err:  errors.New(`{"message":"outer","response":{}}`),
			want: "outer",
		},
		{
			name: "json without either field",
			err:  errors.New(`{"code":500}`),
			want: `{"code":500}`,
		},
		{
			name: "plain error string",
			err:  errors.New("connection refused"),
			want: "connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractMessage(tt.err))
		})
	}
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		err  *AppError
		want int
	}{
		{NotFound("appointment", nil), http.StatusNotFound},
		{BadRequest("bad", nil), http.StatusBadRequest},
		{Unauthorized("", nil), http.StatusUnauthorized},
		{Forbidden("no", nil), http.StatusForbidden},
		{Conflict("overlap", nil), http.StatusConflict},
		{GuardViolation(errors.New("guard")), http.StatusUnprocessableEntity},
		{Internal("", nil), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.StatusCode())
	}
}

func TestDefaultMessages(t *testing.T) {
	assert.Equal(t, "unauthorized", Unauthorized("", nil).Message)
	assert.Equal(t, "internal server error", Internal("", nil).Message)
}

func TestUnwrap(t *testing.T) {
	inner := errors.New("inner")
	err := Internal("boom", inner)
	assert.ErrorIs(t, err, inner)
}
