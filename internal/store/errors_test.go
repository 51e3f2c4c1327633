package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taskbook/taskbook-api/internal/domain"
)

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	assert.True(t, IsNotFoundError(ErrNotFound))
	assert.True(t, IsNotFoundError(ErrTaskNotFound))
	assert.True(t, IsNotFoundError(fmt.Errorf("lookup: %w", ErrTaskNotFound)))

	assert.False(t, IsNotFoundError(nil))
	assert.False(t, IsNotFoundError(errors.New("something else")))
	assert.False(t, IsNotFoundError(domain.ErrValidation))
}

func TestIsValidationError(t *testing.T) {
	t.Parallel()

	assert.True(t, IsValidationError(domain.ErrValidation))
	assert.True(t, IsValidationError(domain.ErrTaskTitleEmpty))
	assert.True(t, IsValidationError(domain.ErrTaskTitleTooLong))
	assert.True(t, IsValidationError(ErrInvalidEntity))
	assert.True(t, IsValidationError(fmt.Errorf("entry 1: %w", domain.ErrTaskTitleEmpty)))

	assert.False(t, IsValidationError(nil))
	assert.False(t, IsValidationError(ErrTaskNotFound))
}

func TestStoreError(t *testing.T) {
	t.Parallel()

	t.Run("formats with a wrapped error", func(t *testing.T) {
		inner := errors.New("disk full")
		err := NewStoreError("task", "create", "insert failed", inner)

		assert.Equal(t, "create operation on task failed: insert failed: disk full", err.Error())
		assert.ErrorIs(t, err, inner, "Unwrap should expose the original error")
	})

	t.Run("formats without a wrapped error", func(t *testing.T) {
		err := NewStoreError("task", "delete", "no rows", nil)
		assert.Equal(t, "delete operation on task failed: no rows", err.Error())
	})

	t.Run("preserves sentinel matching through the wrapper", func(t *testing.T) {
		err := NewStoreError("task", "get", "missing", ErrTaskNotFound)
		assert.True(t, IsNotFoundError(err))
	})
}
