package resolver

import (
	"context"
	"strings"
	"sync"

	"nexuslink/internal/models"
)

// IdentityCache provides a thread-safe in-memory cache of resolved
// identities keyed by normalized username.
type IdentityCache struct {
	mu    sync.RWMutex
	cache map[string]models.ExternalIdentity
}

func NewIdentityCache() *IdentityCache {
	return &IdentityCache{
		cache: make(map[string]models.ExternalIdentity),
	}
}

func (c *IdentityCache) Get(username string) (*models.ExternalIdentity, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	id, found := c.cache[normalizeUsername(username)]
	if !found {
		return nil, false
	}
	return &id, true
}

func (c *IdentityCache) Set(username string, id models.ExternalIdentity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[normalizeUsername(username)] = id
}

// Size reports the number of cached entries.
func (c *IdentityCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}

func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// Cached wraps a resolver so repeated lookups of the same username skip the
// network. Misses are not cached: a username can come into existence later.
type Cached struct {
	inner Resolver
	cache *IdentityCache
}

func NewCached(inner Resolver) *Cached {
	return &Cached{inner: inner, cache: NewIdentityCache()}
}

func (r *Cached) Resolve(ctx context.Context, username string) (*models.ExternalIdentity, error) {
	if id, ok := r.cache.Get(username); ok {
		return id, nil
	}

	id, err := r.inner.Resolve(ctx, username)
	if err != nil || id == nil {
		return id, err
	}

	r.cache.Set(username, *id)
	return id, nil
}
