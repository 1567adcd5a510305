package lock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestMemoryLockerExclusive(t *testing.T) {
	l := NewMemoryLocker()
	defer l.Close()
	ctx := context.Background()

	ok, err := l.TryLock(ctx, "transfer:wio:ref-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = l.TryLock(ctx, "transfer:wio:ref-1", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, _ = l.TryLock(ctx, "transfer:wio:ref-2", time.Minute)
	assert.True(t, ok)

	require.NoError(t, l.Unlock(ctx, "transfer:wio:ref-1"))
	ok, _ = l.TryLock(ctx, "transfer:wio:ref-1", time.Minute)
	assert.True(t, ok)
}

func TestMemoryLockerExpires(t *testing.T) {
	clk := &fakeClock{now: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)}
	l := NewMemoryLocker(WithClock(clk.Now))
	defer l.Close()
	ctx := context.Background()

	ok, _ := l.TryLock(ctx, "k", 30*time.Second)
	require.True(t, ok)

	clk.Advance(29 * time.Second)
	ok, _ = l.TryLock(ctx, "k", 30*time.Second)
	assert.False(t, ok)

	clk.Advance(2 * time.Second)
	ok, _ = l.TryLock(ctx, "k", 30*time.Second)
	assert.True(t, ok)
}

func TestMemoryLockerCloseTwice(t *testing.T) {
	l := NewMemoryLocker()
	assert.NoError(t, l.Close())
	assert.NoError(t, l.Close())
}

func TestRedisKeyPrefix(t *testing.T) {
	l := &RedisLocker{prefix: "finbridge"}
	assert.Equal(t, "finbridge:lock:transfer:rakbank:r1", l.wrapKey("transfer:rakbank:r1"))
	l.prefix = ""
	assert.Equal(t, "k", l.wrapKey("k"))
}
