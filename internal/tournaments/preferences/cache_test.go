package preferences

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"debatetab/internal/tournaments/models"
	"debatetab/internal/tournaments/store"
)

func TestCacheWithoutRedisPassesThrough(t *testing.T) {
	ctx := context.Background()
	source := store.NewInMemoryStore()
	cache := New(source, nil)

	prefs, err := cache.LoadPreferences(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultPreferences(), prefs)

	prefs.MotionTabReleased = true
	require.NoError(t, cache.SavePreferences(ctx, 1, prefs))

	loaded, err := cache.LoadPreferences(ctx, 1)
	require.NoError(t, err)
	assert.True(t, loaded.MotionTabReleased)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "debatetab:prefs:42", key(42))
}
