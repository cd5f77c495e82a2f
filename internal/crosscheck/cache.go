package crosscheck

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/adverify/supplyval/internal/sellers"
)

// lookupResult is the memoized outcome of one directory lookup. A nil
// directory with a nil error means no directory exists for the domain.
type lookupResult struct {
	dir *sellers.Directory
	err error
}

// directoryCache memoizes directory lookups per ad-system domain for the
// duration of one cross-check call. The mutex guards the result map against
// parallel first-accesses; singleflight collapses concurrent fetches of the
// same domain into a single provider call.
type directoryCache struct {
	provider sellers.Provider

	group   singleflight.Group
	mu      sync.Mutex
	results map[string]*lookupResult
}

func newDirectoryCache(provider sellers.Provider) *directoryCache {
	return &directoryCache{
		provider: provider,
		results:  make(map[string]*lookupResult),
	}
}

// get returns the cached lookup result for a domain, fetching it at most
// once no matter how many records reference the domain.
func (c *directoryCache) get(ctx context.Context, domain string) *lookupResult {
	key := strings.ToLower(strings.TrimSpace(domain))

	c.mu.Lock()
	if result, ok := c.results[key]; ok {
		c.mu.Unlock()
		return result
	}
	c.mu.Unlock()

	v, _, _ := c.group.Do(key, func() (interface{}, error) {
		dir, err := c.provider.GetByDomain(ctx, key)
		result := &lookupResult{dir: dir, err: err}

		c.mu.Lock()
		c.results[key] = result
		c.mu.Unlock()

		return result, nil
	})

	return v.(*lookupResult)
}
