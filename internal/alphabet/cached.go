package alphabet

import (
	"context"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the cached resolver when no size is configured.
const DefaultCacheSize = 128

type cacheKey struct {
	lang   string
	script string
}

// Cached memoizes successful lookups of another resolver. Failures are not
// cached. Safe for concurrent use.
type Cached struct {
	next  Resolver
	cache *lru.Cache[cacheKey, Layout]
}

// NewCached wraps next with an LRU of the given size. A size below 1 uses
// DefaultCacheSize.
func NewCached(next Resolver, size int) (*Cached, error) {
	if size < 1 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[cacheKey, Layout](size)
	if err != nil {
		return nil, fmt.Errorf("alphabet cache: %w", err)
	}
	return &Cached{next: next, cache: cache}, nil
}

// Resolve implements Resolver.
func (c *Cached) Resolve(ctx context.Context, lang, script string) (Layout, error) {
	key := cacheKey{
		lang:   strings.ToLower(strings.TrimSpace(lang)),
		script: strings.ToLower(strings.TrimSpace(script)),
	}
	if layout, ok := c.cache.Get(key); ok {
		return layout, nil
	}

	layout, err := c.next.Resolve(ctx, lang, script)
	if err != nil {
		return Layout{}, err
	}
	c.cache.Add(key, layout)
	return layout, nil
}

// Len returns the number of cached layouts.
func (c *Cached) Len() int {
	return c.cache.Len()
}
