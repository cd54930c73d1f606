package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMatchesByCode(t *testing.T) {
	cloned := Clone(ErrReadOnly, "week 2025-W07 is read-only")
	assert.True(t, errors.Is(cloned, ErrReadOnly))
	assert.False(t, errors.Is(cloned, ErrForbidden), "same status, different code")

	wrapped := fmt.Errorf("drop: %w", Wrap(errors.New("db"), ErrInternal.Code, ErrInternal.Status, "save failed"))
	assert.True(t, errors.Is(wrapped, ErrInternal))
}

func TestFromError(t *testing.T) {
	assert.Nil(t, FromError(nil))

	plain := FromError(errors.New("boom"))
	assert.Equal(t, ErrInternal.Code, plain.Code)
	assert.Equal(t, http.StatusInternalServerError, plain.Status)
	assert.Equal(t, "internal server error: boom", plain.Error())

	nested := FromError(fmt.Errorf("ctx: %w", ErrNotFound))
	assert.Same(t, ErrNotFound, nested)
}

func TestCloneKeepsOriginal(t *testing.T) {
	clone := Clone(ErrValidation, "invalid day")
	assert.Equal(t, "invalid day", clone.Message)
	assert.Equal(t, "validation failed", ErrValidation.Message)
	assert.Equal(t, "validation failed", Clone(ErrValidation, "").Message)
	assert.Nil(t, Clone(nil, "x"))
}
