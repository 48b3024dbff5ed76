package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("phone", "is required")
	assert.Equal(t, "validation failed on phone: is required", err.Error())

	var vErr *ValidationError
	assert.True(t, stderrors.As(error(err), &vErr))
	assert.Equal(t, "phone", vErr.Field)
}

func TestStoreError_Unwrap(t *testing.T) {
	err := NewStoreError("listings", "get", ErrNotFound)
	assert.True(t, stderrors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "collection=listings")
	assert.Contains(t, err.Error(), "op=get")
}

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{ErrNotFound, ErrInvalidInput, ErrQueueFull}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i == j {
				continue
			}
			assert.False(t, stderrors.Is(a, b))
		}
	}
}
