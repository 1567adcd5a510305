package lock

import (
	"context"
	"sync"
	"time"
)

// MemoryLocker holds locks in process memory. It is only safe for a single instance.
type MemoryLocker struct {
	held          map[string]time.Time // key -> expiry
	mutex         sync.Mutex
	now           func() time.Time
	cleanupTicker *time.Ticker
	done          chan struct{}
	closeOnce     sync.Once
}

// NewMemoryLocker creates an in-memory locker.
func NewMemoryLocker(opts ...MemoryOption) *MemoryLocker {
	cfg := &MemoryConfig{
		CleanupInterval: time.Minute,
		Now:             time.Now,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	ml := &MemoryLocker{
		held:          make(map[string]time.Time),
		now:           cfg.Now,
		cleanupTicker: time.NewTicker(cfg.CleanupInterval),
		done:          make(chan struct{}),
	}
	go ml.cleanupExpired()
	return ml
}

// TryLock acquires key for ttl. It returns false when the key is held and unexpired.
func (ml *MemoryLocker) TryLock(_ context.Context, key string, ttl time.Duration) (bool, error) {
	ml.mutex.Lock()
	defer ml.mutex.Unlock()

	now := ml.now()
	if exp, ok := ml.held[key]; ok && now.Before(exp) {
		return false, nil
	}
	ml.held[key] = now.Add(ttl)
	return true, nil
}

// Unlock releases key. Releasing an absent key is a no-op.
func (ml *MemoryLocker) Unlock(_ context.Context, key string) error {
	ml.mutex.Lock()
	delete(ml.held, key)
	ml.mutex.Unlock()
	return nil
}

func (ml *MemoryLocker) cleanupExpired() {
	for {
		select {
		case <-ml.done:
			return
		case <-ml.cleanupTicker.C:
			ml.mutex.Lock()
			now := ml.now()
			for key, exp := range ml.held {
				if !now.Before(exp) {
					delete(ml.held, key)
				}
			}
			ml.mutex.Unlock()
		}
	}
}

// Close stops the cleanup goroutine.
func (ml *MemoryLocker) Close() error {
	ml.closeOnce.Do(func() {
		ml.cleanupTicker.Stop()
		close(ml.done)
	})
	return nil
}
