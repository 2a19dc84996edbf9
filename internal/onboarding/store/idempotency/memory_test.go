package idempotency

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGuard(t *testing.T) {
	t.Run("first sighting is not seen", func(t *testing.T) {
		guard := NewMemoryGuard()

		seen, err := guard.MarkSeen(context.Background(), "tx-1")
		require.NoError(t, err)
		assert.False(t, seen)
	})

	t.Run("second sighting is seen", func(t *testing.T) {
		guard := NewMemoryGuard()

		_, err := guard.MarkSeen(context.Background(), "tx-1")
		require.NoError(t, err)

		seen, err := guard.MarkSeen(context.Background(), "tx-1")
		require.NoError(t, err)
		assert.True(t, seen)
	})

	t.Run("distinct transactions do not collide", func(t *testing.T) {
		guard := NewMemoryGuard()

		_, err := guard.MarkSeen(context.Background(), "tx-1")
		require.NoError(t, err)

		seen, err := guard.MarkSeen(context.Background(), "tx-2")
		require.NoError(t, err)
		assert.False(t, seen)
	})

	t.Run("expired entries are forgotten", func(t *testing.T) {
		guard := NewMemoryGuard()
		current := time.Now()
		guard.now = func() time.Time { return current }

		_, err := guard.MarkSeen(context.Background(), "tx-1")
		require.NoError(t, err)

		current = current.Add(DefaultTTL + time.Minute)
		seen, err := guard.MarkSeen(context.Background(), "tx-1")
		require.NoError(t, err)
		assert.False(t, seen)
	})
}
