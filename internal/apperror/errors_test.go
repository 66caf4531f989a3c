package apperror

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKinds(t *testing.T) {
	cause := context.DeadlineExceeded

	tests := []struct {
		name      string
		err       *DomainError
		kind      error
		status    int
		retryable bool
	}{
		{"validation", Validation("title", "title is required"), ErrValidation, http.StatusBadRequest, false},
		{"not found", NotFound("document no longer exists"), ErrNotFound, http.StatusNotFound, false},
		{"load", LoadFailure(cause), ErrLoadFailure, http.StatusServiceUnavailable, true},
		{"save", SaveFailure(cause), ErrSaveFailure, http.StatusServiceUnavailable, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("service: %w", tt.err)

			assert.ErrorIs(t, wrapped, tt.kind)
			assert.Equal(t, tt.status, tt.err.Status)
			assert.Equal(t, tt.retryable, tt.err.Retryable())

			de, ok := As(wrapped)
			require.True(t, ok)
			assert.Same(t, tt.err, de)

			for _, other := range []error{ErrValidation, ErrNotFound, ErrLoadFailure, ErrSaveFailure} {
				if other != tt.kind {
					assert.False(t, errors.Is(wrapped, other))
				}
			}
		})
	}
}

func TestCauseIsReachable(t *testing.T) {
	err := SaveFailure(context.DeadlineExceeded)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "SAVE_FAILURE")
}

func TestValidationField(t *testing.T) {
	err := Validation("content_html", "content is required")
	assert.Equal(t, "content_html", err.Field)
	assert.Equal(t, "VALIDATION_ERROR: content is required", err.Error())

	_, ok := As(errors.New("plain"))
	assert.False(t, ok)
}
