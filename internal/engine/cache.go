package engine

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/snapmark/photo-overlay/internal/imaging"
)

const (
	// DefaultCacheCapacity is the entry count beyond which eviction runs.
	DefaultCacheCapacity = 100
	// evictBatchSize entries are dropped per eviction, oldest first.
	evictBatchSize = 20
)

// Fingerprint digests the semantically relevant inputs of a request
// into a deterministic cache key.
//
// Settings are serialized canonically before hashing: struct fields in
// declaration order and map keys sorted (encoding/json guarantees
// both), so structurally equal settings always produce the same key no
// matter how their extension maps were built.
func Fingerprint(inputPath string, overlay imaging.OverlaySettings, frame imaging.FrameSettings, variant RequestVariant) (string, error) {
	overlayJSON, err := json.Marshal(overlay)
	if err != nil {
		return "", fmt.Errorf("failed to serialize overlay settings: %w", err)
	}
	frameJSON, err := json.Marshal(frame)
	if err != nil {
		return "", fmt.Errorf("failed to serialize frame settings: %w", err)
	}

	h := sha256.New()
	h.Write([]byte(inputPath))
	h.Write([]byte{0})
	h.Write(overlayJSON)
	h.Write([]byte{0})
	h.Write(frameJSON)
	h.Write([]byte{0})
	h.Write([]byte(variant))
	return hex.EncodeToString(h.Sum(nil)), nil
}

// cacheEntry is an immutable rendered result. The cache never mutates
// an entry, only replaces or evicts it, and it owns its byte slices
// outright: put and get copy, so no caller ever aliases cached data.
type cacheEntry struct {
	preview    []byte
	full       []byte
	insertedAt time.Time
	seq        uint64
}

// resultCache memoizes rendered bytes with bounded capacity and coarse
// batch eviction: once the entry count exceeds the capacity, the 20
// entries with the oldest insertion timestamp are dropped, insertion
// order breaking ties.
type resultCache struct {
	mu       sync.RWMutex
	entries  map[string]cacheEntry
	capacity int
	seq      uint64
}

func newResultCache(capacity int) *resultCache {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	return &resultCache{
		entries:  make(map[string]cacheEntry),
		capacity: capacity,
	}
}

func (c *resultCache) get(key string) (cacheEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[key]
	if !ok {
		return cacheEntry{}, false
	}
	entry.preview = cloneBytes(entry.preview)
	entry.full = cloneBytes(entry.full)
	return entry, true
}

func (c *resultCache) put(key string, preview, full []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	c.entries[key] = cacheEntry{
		preview:    cloneBytes(preview),
		full:       cloneBytes(full),
		insertedAt: time.Now(),
		seq:        c.seq,
	}

	if len(c.entries) > c.capacity {
		c.evictOldestLocked(evictBatchSize)
	}
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

func (c *resultCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// evictOldestLocked drops the n oldest entries. Caller holds c.mu.
func (c *resultCache) evictOldestLocked(n int) {
	type aged struct {
		key string
		at  time.Time
		seq uint64
	}
	all := make([]aged, 0, len(c.entries))
	for k, e := range c.entries {
		all = append(all, aged{key: k, at: e.insertedAt, seq: e.seq})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].at.Equal(all[j].at) {
			return all[i].seq < all[j].seq
		}
		return all[i].at.Before(all[j].at)
	})
	if n > len(all) {
		n = len(all)
	}
	for _, e := range all[:n] {
		delete(c.entries, e.key)
	}
}
