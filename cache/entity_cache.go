// Package cache holds the entity handler's in-memory cache of loaded
// entities: a hash-keyed map of reference-counted, immutable entries with
// explicit weak retention. The cache itself holds one reference per
// entry; UnloadNonReferencedEntities drops every entry whose only
// remaining reference is the cache's own.
package cache

import (
	"sync"

	"github.com/cooolrik/pds-go/models"
)

// entry is one cached entity plus its reference count. refs starts at 2 on
// first intern: one for the cache's own retention, one for the Handle
// returned to the caller that triggered the intern.
type entry struct {
	entity models.Entity
	refs   int
}

// EntityCache is a hash -> entity map guarded by a single readers-writer
// lock. Lookup, intern, release and drop all take the write lock, since
// each of them changes an entry's reference count; only Len takes the read
// lock, so concurrent lookups do not run in parallel. The lock is never held across file I/O or
// deserialization -- callers build the decoded entity first and only then
// call Intern.
type EntityCache struct {
	mu      sync.RWMutex
	entries map[[32]byte]*entry
}

// New returns an empty cache.
func New() *EntityCache {
	return &EntityCache{entries: map[[32]byte]*entry{}}
}

// Handle is a strong reference to a cached entity. Callers that want to
// pin an entity beyond the current call hold onto a Handle and call
// Release when done; letting every outstanding Handle for a hash go out of
// scope (via Release) makes that entry eligible for the next
// UnloadNonReferencedEntities pass.
type Handle struct {
	c      *EntityCache
	hash   [32]byte
	entity models.Entity
}

// Entity returns the handle's underlying entity. The returned value is
// immutable and must not be mutated by callers.
func (h *Handle) Entity() models.Entity { return h.entity }

// Release drops this handle's reference. It is safe to call at most once
// per Handle; calling it more than once double-releases the entry and will
// make it eligible for eviction early.
func (h *Handle) Release() {
	h.c.mu.Lock()
	defer h.c.mu.Unlock()
	if e, ok := h.c.entries[h.hash]; ok {
		e.refs--
	}
}

// Intern inserts entity under hash if absent, or returns a new Handle to
// the existing entry if present -- two concurrent callers racing to add
// equivalent content both end up with a single cache entry. existed
// reports whether hash was already cached.
func (c *EntityCache) Intern(hash [32]byte, e models.Entity) (handle *Handle, existed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ex, ok := c.entries[hash]; ok {
		ex.refs++
		return &Handle{c: c, hash: hash, entity: ex.entity}, true
	}
	c.entries[hash] = &entry{entity: e, refs: 2}
	return &Handle{c: c, hash: hash, entity: e}, false
}

// Lookup returns a Handle to the cached entity under hash, or (nil, false)
// if it is not loaded.
func (c *EntityCache) Lookup(hash [32]byte) (*Handle, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[hash]
	if !ok {
		return nil, false
	}
	e.refs++
	return &Handle{c: c, hash: hash, entity: e.entity}, true
}

// UnloadNonReferencedEntities drops every entry whose reference count has
// fallen back to 1 -- only the cache's own retention remains.
func (c *EntityCache) UnloadNonReferencedEntities() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for hash, e := range c.entries {
		if e.refs <= 1 {
			delete(c.entries, hash)
		}
	}
}

// Len returns the number of entries currently cached, for diagnostics and
// tests.
func (c *EntityCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
