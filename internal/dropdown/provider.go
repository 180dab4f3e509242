// internal/dropdown/provider.go
package dropdown

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/Marga-Ghale/bpo-console/internal/backend"
	"github.com/Marga-Ghale/bpo-console/internal/types"
)

var ErrUnknownKind = errors.New("unknown dropdown kind")

// Fetcher is the slice of the backend client the provider needs.
type Fetcher interface {
	Dropdown(ctx context.Context, req *backend.DropdownRequest) (interface{}, error)
}

// Cache stores normalized option lists. Get reports a miss with ok=false.
type Cache interface {
	Get(ctx context.Context, key string) (opts []Option, ok bool, err error)
	Set(ctx context.Context, key string, opts []Option, ttl time.Duration) error
	DeletePrefix(ctx context.Context, prefix string) error
}

// Provider fetches reference lists and caches them for the lifetime of a
// user session. It never merges lists.
type Provider struct {
	fetcher Fetcher
	cache   Cache
	ttl     time.Duration
}

func NewProvider(fetcher Fetcher, cache Cache, ttl time.Duration) *Provider {
	if cache == nil {
		cache = NewMemoryCache()
	}
	return &Provider{fetcher: fetcher, cache: cache, ttl: ttl}
}

func cacheKey(session string, kind types.DropdownKind, projectID *int64) string {
	key := fmt.Sprintf("dropdown:%s:%s", session, kind)
	if projectID != nil {
		key = fmt.Sprintf("%s:%d", key, *projectID)
	}
	return key
}

// Options returns the normalized list for kind. projectID scopes the agents
// list to one project and is ignored otherwise.
func (p *Provider) Options(ctx context.Context, session string, kind types.DropdownKind, projectID *int64) ([]Option, error) {
	if !types.IsValidDropdownKind(kind) {
		return nil, ErrUnknownKind
	}
	if kind != types.DropdownAgents {
		projectID = nil
	}

	key := cacheKey(session, kind, projectID)
	if opts, ok, err := p.cache.Get(ctx, key); err != nil {
		log.Printf("⚠️ [Dropdown] cache read %s: %v", key, err)
	} else if ok {
		return opts, nil
	}

	raw, err := p.fetcher.Dropdown(ctx, &backend.DropdownRequest{
		DropdownType: string(kind),
		ProjectID:    projectID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s options: %w", kind, err)
	}

	// The generic endpoint sometimes answers with every list keyed by kind.
	if m, ok := raw.(map[string]interface{}); ok {
		if v, ok := m[string(kind)]; ok {
			raw = v
		}
	}

	opts := Normalize(raw)
	if err := p.cache.Set(ctx, key, opts, p.ttl); err != nil {
		log.Printf("⚠️ [Dropdown] cache write %s: %v", key, err)
	}
	return opts, nil
}

// Invalidate drops every cached list of a session.
func (p *Provider) Invalidate(ctx context.Context, session string) error {
	return p.cache.DeletePrefix(ctx, fmt.Sprintf("dropdown:%s:", session))
}

// ============================================
// In-process cache
// ============================================

type memoryEntry struct {
	opts      []Option
	expiresAt time.Time
}

type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry), now: time.Now}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]Option, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok || c.now().After(e.expiresAt) {
		return nil, false, nil
	}
	return e.opts, true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, opts []Option, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = memoryEntry{opts: opts, expiresAt: c.now().Add(ttl)}
	return nil
}

func (c *MemoryCache) DeletePrefix(_ context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
	return nil
}

// Purge removes expired entries and returns how many were dropped.
func (c *MemoryCache) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	n := 0
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
			n++
		}
	}
	return n
}
