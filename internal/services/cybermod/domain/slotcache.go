package domain

import (
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/louisbranch/pound-of-flesh/internal/platform/timeouts"
	"golang.org/x/sync/singleflight"
)

const (
	// MaxSlotCacheTTL bounds how stale a cached slot count may be.
	MaxSlotCacheTTL = timeouts.SlotCacheMaxTTL
	// DefaultSlotCacheSize is the number of actors kept.
	DefaultSlotCacheSize = 256
)

// SlotCache memoizes CalculateSlots per actor. Entries are keyed by actor ID
// and a fingerprint of every input CalculateSlots reads, so a changed actor
// always misses. A nil cache computes directly.
type SlotCache struct {
	entries *expirable.LRU[string, Slots]
	group   singleflight.Group
}

// NewSlotCache returns a cache with ttl clamped to (0, MaxSlotCacheTTL].
func NewSlotCache(size int, ttl time.Duration) *SlotCache {
	if size <= 0 {
		size = DefaultSlotCacheSize
	}
	if ttl <= 0 || ttl > MaxSlotCacheTTL {
		ttl = MaxSlotCacheTTL
	}
	return &SlotCache{entries: expirable.NewLRU[string, Slots](size, nil, ttl)}
}

// Slots returns the cached or freshly computed slots for actor.
func (c *SlotCache) Slots(actor Actor) Slots {
	if c == nil || c.entries == nil {
		return CalculateSlots(actor)
	}
	key := slotKey(actor)
	if slots, ok := c.entries.Get(key); ok {
		return slots
	}
	value, _, _ := c.group.Do(key, func() (any, error) {
		slots := CalculateSlots(actor)
		c.entries.Add(key, slots)
		return slots, nil
	})
	return value.(Slots)
}

// Invalidate drops every entry.
func (c *SlotCache) Invalidate() {
	if c == nil || c.entries == nil {
		return
	}
	c.entries.Purge()
}

// Len reports the number of live entries.
func (c *SlotCache) Len() int {
	if c == nil || c.entries == nil {
		return 0
	}
	return c.entries.Len()
}

// slotKey fingerprints everything slot capacity depends on. Fields are
// length-prefixed so free text cannot shift one field into the next.
func slotKey(actor Actor) string {
	h := xxhash.New()
	writeField(h, strconv.Itoa(actor.Stats.Strength))
	writeField(h, strconv.Itoa(actor.Stats.Intellect))
	for _, item := range actor.Items {
		writeField(h, item.ID)
		writeField(h, item.Name)
		writeField(h, item.Description)
		writeField(h, strconv.FormatBool(item.Cyber.Installed))
	}
	return actor.ID + ":" + strconv.FormatUint(h.Sum64(), 16)
}

func writeField(h *xxhash.Digest, value string) {
	_, _ = h.WriteString(strconv.Itoa(len(value)))
	_, _ = h.WriteString(":")
	_, _ = h.WriteString(value)
}
