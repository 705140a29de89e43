package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedPreview struct {
	UserID string   `json:"user_id"`
	Rows   []string `json:"rows"`
}

func TestMemoryCache_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	require.NoError(t, c.Set(ctx, "import:preview:1", cachedPreview{UserID: "u1", Rows: []string{"a"}}, time.Minute))

	var got cachedPreview
	require.NoError(t, c.Get(ctx, "import:preview:1", &got))
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, []string{"a"}, got.Rows)

	require.NoError(t, c.Delete(ctx, "import:preview:1"))
	assert.ErrorIs(t, c.Get(ctx, "import:preview:1", &got), ErrCacheMiss)
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache().(*memoryCache)

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "short", "value", time.Minute))
	require.NoError(t, c.Set(ctx, "forever", "value", 0))

	now = now.Add(2 * time.Minute)

	var value string
	assert.ErrorIs(t, c.Get(ctx, "short", &value), ErrCacheMiss)
	require.NoError(t, c.Get(ctx, "forever", &value))
	assert.Equal(t, "value", value)
}

func TestMemoryCache_TakeIsOneShot(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	require.NoError(t, c.Set(ctx, "import:preview:a", cachedPreview{UserID: "u1"}, time.Minute))

	var got cachedPreview
	require.NoError(t, c.Take(ctx, "import:preview:a", &got))
	assert.Equal(t, "u1", got.UserID)

	assert.ErrorIs(t, c.Take(ctx, "import:preview:a", &got), ErrCacheMiss)
	assert.ErrorIs(t, c.Get(ctx, "import:preview:a", &got), ErrCacheMiss)
}

func TestMemoryCache_TakeConcurrentClaims(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	require.NoError(t, c.Set(ctx, "import:preview:a", "payload", time.Minute))

	const workers = 16
	var wg sync.WaitGroup
	var winners atomic.Int32
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var value string
			if c.Take(ctx, "import:preview:a", &value) == nil {
				winners.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), winners.Load())
}
