package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIVersion(t *testing.T) {
	v, err := ParseAPIVersion("v1")
	require.NoError(t, err)
	assert.Equal(t, APIVersionV1, v)
	assert.Equal(t, "/api/v1", v.Path())
	assert.True(t, v.IsAtLeast(APIVersionV1))
	assert.False(t, APIVersion("v9").IsAtLeast(APIVersionV1))

	_, err = ParseAPIVersion("v0")
	assert.Error(t, err)
	assert.True(t, APIVersion("").IsNil())
}
