package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasCode(t *testing.T) {
	t.Run("matches direct error", func(t *testing.T) {
		err := New(CodeValidation, "scaled out of range")
		assert.True(t, HasCode(err, CodeValidation))
		assert.False(t, HasCode(err, CodeFormat))
	})

	t.Run("matches through fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("decode: %w", MissingField("actor"))
		assert.True(t, HasCode(err, CodeMissingField))
		assert.Equal(t, "actor", FieldOf(err))
	})

	t.Run("foreign errors have no code", func(t *testing.T) {
		err := errors.New("boom")
		assert.False(t, HasCode(err, CodeInternal))
		assert.Equal(t, CodeInternal, CodeOf(err))
	})
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("already used")
	err := Wrap(cause, CodeInvariantViolation, "stored already set")

	require.ErrorIs(t, err, cause)
	assert.True(t, Is(err, CodeInvariantViolation))
	assert.Contains(t, err.Error(), "already used")
}

func TestAtPath(t *testing.T) {
	t.Run("prefixes existing field", func(t *testing.T) {
		err := AtPath(MissingField("id"), "object")
		assert.Equal(t, "object.id", FieldOf(err))
	})

	t.Run("sets field when empty", func(t *testing.T) {
		err := AtPath(New(CodeValidation, "bad"), "result.score")
		assert.Equal(t, "result.score", FieldOf(err))
	})

	t.Run("does not mutate the original", func(t *testing.T) {
		orig := MissingField("name")
		_ = AtPath(orig, "account")
		assert.Equal(t, "name", orig.Field)
	})

	t.Run("passes foreign errors through", func(t *testing.T) {
		cause := errors.New("boom")
		assert.Same(t, cause, AtPath(cause, "actor"))
	})
}

func TestErrorMessage(t *testing.T) {
	err := UnsupportedType("actor.objectType", "Robot")
	assert.Equal(t, `actor.objectType: unsupported objectType (got "Robot")`, err.Error())
}
