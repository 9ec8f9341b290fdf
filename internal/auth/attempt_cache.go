package auth

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	DefaultMaxLoginAttempts = 50
	DefaultAttemptCacheTTL  = 15 * time.Minute
	DefaultAttemptCacheSize = 100
)

// LoginAttemptCache counts consecutive failed logins per username so the gate
// can lock accounts under brute force. Entries expire a fixed window after
// their last write and the least recently used username is evicted once the
// cache is full. Locking lives entirely inside the cache; callers never
// coordinate access themselves.
type LoginAttemptCache struct {
	mu          sync.Mutex
	entries     *lru.LRU[string, int]
	maxAttempts int
}

func NewLoginAttemptCache(maxAttempts, capacity int, ttl time.Duration) *LoginAttemptCache {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxLoginAttempts
	}
	if capacity <= 0 {
		capacity = DefaultAttemptCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultAttemptCacheTTL
	}

	return &LoginAttemptCache{
		entries:     lru.NewLRU[string, int](capacity, nil, ttl),
		maxAttempts: maxAttempts,
	}
}

// RecordFailure increments the counter for username, creating it at 1 when
// absent. Re-adding the entry restarts its expiry window. The mutex makes the
// read-modify-write atomic: two concurrent failures never collapse into one.
func (c *LoginAttemptCache) RecordFailure(username string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	attempts, _ := c.entries.Get(username)
	c.entries.Add(username, attempts+1)
}

// Clear removes the entry for username. Idempotent; clearing an absent entry
// is a no-op.
func (c *LoginAttemptCache) Clear(username string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries.Remove(username)
}

// HasExceededLimit reports whether username has reached the configured
// maximum. A missing or expired entry counts as zero.
func (c *LoginAttemptCache) HasExceededLimit(username string) bool {
	return c.Attempts(username) >= c.maxAttempts
}

// Attempts returns the current counter for username, zero when untracked.
func (c *LoginAttemptCache) Attempts(username string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	attempts, _ := c.entries.Get(username)
	return attempts
}
