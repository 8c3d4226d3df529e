package domainerrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("db down")
	err := Wrap(cause, CodeInternal, "failed to load venues")

	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.True(t, HasCode(err, CodeInternal))
	assert.Equal(t, "failed to load venues: db down", err.Error())
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, CodeInternal, "ignored"))
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeNotFound, CodeOf(New(CodeNotFound, "round not found")))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")))
	assert.False(t, Is(errors.New("plain"), CodeValidation))
}
