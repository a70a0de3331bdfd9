package linkcache

import (
	"context"
	"sync"

	"golang.org/x/xerrors"

	"wikiracer/resolver"
)

// Compile-time check for ensuring Cache implements Resolver.
var _ resolver.Resolver = (*Cache)(nil)

// ErrEmptyTitle is returned when a lookup is attempted with an empty title.
var ErrEmptyTitle = xerrors.New("empty page title")

// TitleIndexer is implemented by objects that want to be notified of every
// page title the cache encounters, e.g. to power title suggestions.
type TitleIndexer interface {
	IndexTitle(title string) error
}

// Cache is a memoizing adapter around a Resolver. The first lookup of a title
// performs exactly one upstream resolution and stores the result; entries are
// never evicted for the lifetime of the backing store.
//
// Entries are keyed by the exact input title, not the post-redirect canonical
// title: an article reached under two different spellings is cached twice.
// This trades duplicate entries for one fewer round trip per lookup.
type Cache struct {
	res     resolver.Resolver
	store   Store
	indexer TitleIndexer

	mu       sync.Mutex
	inflight map[string]*call
}

// call tracks a single in-flight upstream resolution so that concurrent
// lookups of the same unresolved title coalesce into one external call.
type call struct {
	done  chan struct{}
	links []string
	err   error
}

// New returns a Cache that memoizes lookups through res into store. The
// indexer may be nil.
func New(res resolver.Resolver, store Store, indexer TitleIndexer) *Cache {
	return &Cache{
		res:      res,
		store:    store,
		indexer:  indexer,
		inflight: make(map[string]*call),
	}
}

// ResolveLinks implements resolver.Resolver; it is the cache's get-or-populate
// operation. Resolution failures are surfaced immediately and are not cached,
// so a title that later becomes resolvable is not permanently shadowed.
func (c *Cache) ResolveLinks(ctx context.Context, title string) ([]string, error) {
	if title == "" {
		return nil, ErrEmptyTitle
	}

	if links, ok, err := c.store.Get(title); err != nil {
		return nil, xerrors.Errorf("link cache get for %q: %w", title, err)
	} else if ok {
		return links, nil
	}

	c.mu.Lock()
	if inflight, exists := c.inflight[title]; exists {
		c.mu.Unlock()
		select {
		case <-inflight.done:
			return copyLinks(inflight.links), inflight.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	// The miss above was observed outside the lock: another lookup may have
	// populated the entry and retired its in-flight record in the meantime.
	// Re-check before resolving upstream so each title costs at most one
	// external call.
	if links, ok, err := c.store.Get(title); err != nil {
		c.mu.Unlock()
		return nil, xerrors.Errorf("link cache get for %q: %w", title, err)
	} else if ok {
		c.mu.Unlock()
		return links, nil
	}

	inflight := &call{done: make(chan struct{})}
	c.inflight[title] = inflight
	c.mu.Unlock()

	inflight.links, inflight.err = c.populate(ctx, title)
	close(inflight.done)

	c.mu.Lock()
	delete(c.inflight, title)
	c.mu.Unlock()

	return copyLinks(inflight.links), inflight.err
}

// copyLinks hands out a fresh slice so no two callers share the resolver's
// backing array.
func copyLinks(links []string) []string {
	if links == nil {
		return nil
	}
	linksCopy := make([]string, len(links))
	copy(linksCopy, links)
	return linksCopy
}

func (c *Cache) populate(ctx context.Context, title string) ([]string, error) {
	links, err := c.res.ResolveLinks(ctx, title)
	if err != nil {
		return nil, err
	}

	if err = c.store.Put(title, links); err != nil {
		return nil, xerrors.Errorf("link cache put for %q: %w", title, err)
	}

	if c.indexer != nil {
		// Suggestion indexing is best effort; a failed index update must not
		// fail the lookup itself.
		_ = c.indexer.IndexTitle(title)
		for _, link := range links {
			_ = c.indexer.IndexTitle(link)
		}
	}

	return links, nil
}

// Close releases the backing store.
func (c *Cache) Close() error {
	return c.store.Close()
}
