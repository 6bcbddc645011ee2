package throttle

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_Allow(t *testing.T) {
	ctx := context.Background()

	t.Run("permits up to the limit inside one window", func(t *testing.T) {
		clock := time.Unix(1700000000, 0)
		m := NewMemoryWithClock(func() time.Time { return clock })

		for i := 0; i < 3; i++ {
			ok, err := m.Allow(ctx, "kakao", 3, time.Minute)
			require.NoError(t, err)
			assert.True(t, ok)
		}

		ok, err := m.Allow(ctx, "kakao", 3, time.Minute)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("window slides as time passes", func(t *testing.T) {
		clock := time.Unix(1700000000, 0)
		m := NewMemoryWithClock(func() time.Time { return clock })

		ok, err := m.Allow(ctx, "kakao", 1, time.Minute)
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = m.Allow(ctx, "kakao", 1, time.Minute)
		require.NoError(t, err)
		assert.False(t, ok)

		clock = clock.Add(61 * time.Second)
		ok, err = m.Allow(ctx, "kakao", 1, time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("keys are independent", func(t *testing.T) {
		clock := time.Unix(1700000000, 0)
		m := NewMemoryWithClock(func() time.Time { return clock })

		ok, err := m.Allow(ctx, "kakao", 1, time.Minute)
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = m.Allow(ctx, "sms", 1, time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}
