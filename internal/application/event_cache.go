package application

import (
	"sync"
	"time"
)

// eventCache stores recently read events, including their attendee counts,
// so hot event detail reads avoid repeated store round trips. Entries are
// short lived; every successful RSVP invalidates the affected event.
type eventCache struct {
	mu         sync.RWMutex
	now        func() time.Time
	ttl        time.Duration
	maxEntries int
	entries    map[string]eventCacheEntry
}

type eventCacheEntry struct {
	event     Event
	expiresAt time.Time
}

func newEventCache(ttl time.Duration, maxEntries int, now func() time.Time) *eventCache {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	if maxEntries <= 0 {
		maxEntries = 256
	}
	if now == nil {
		now = time.Now
	}
	return &eventCache{
		now:        now,
		ttl:        ttl,
		maxEntries: maxEntries,
		entries:    make(map[string]eventCacheEntry),
	}
}

func (c *eventCache) Get(eventID string) (Event, bool) {
	if c == nil {
		return Event{}, false
	}
	c.mu.RLock()
	entry, ok := c.entries[eventID]
	c.mu.RUnlock()
	if !ok {
		return Event{}, false
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, eventID)
		c.mu.Unlock()
		return Event{}, false
	}
	return entry.event, true
}

func (c *eventCache) Store(event Event) {
	if c == nil {
		return
	}
	expiry := c.now().Add(c.ttl)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.cleanupLocked()
	if len(c.entries) >= c.maxEntries {
		c.evictOneLocked()
	}
	c.entries[event.ID] = eventCacheEntry{event: event, expiresAt: expiry}
}

func (c *eventCache) Invalidate(eventID string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	delete(c.entries, eventID)
	c.mu.Unlock()
}

func (c *eventCache) cleanupLocked() {
	now := c.now()
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
}

func (c *eventCache) evictOneLocked() {
	for key := range c.entries {
		delete(c.entries, key)
		return
	}
}
