package mcpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/erraggy/schematools/inferrer"
)

// cacheEntry holds a cached decoded input with LRU ordering and TTL expiry.
// The value is either a decoded data value (any) or a *inferrer.Schema;
// the cache key's kind prefix keeps the two populations apart.
type cacheEntry struct {
	value     any
	insertAt  time.Time
	expiresAt time.Time
}

// inputCacheStore provides a session-scoped cache for decoded inputs.
// File inputs are keyed by (absolutePath, modTime) so edits invalidate
// naturally. Inline inputs are keyed by a SHA-256 hash. Entries expire
// after cfg.CacheTTL and a background sweeper removes expired entries.
//
// Cached values are shared across tool calls. That is safe because the
// inference engine never mutates its inputs: extend clones before
// merging and the builder only reads the decoded value.
type inputCacheStore struct {
	mu             sync.Mutex
	entries        map[string]*cacheEntry
	maxSize        int
	sweeperStarted atomic.Bool
}

var inputCache = &inputCacheStore{
	entries: make(map[string]*cacheEntry),
	maxSize: cfg.CacheMaxSize,
}

// get returns a cached value and whether it was present. Expired
// entries are lazily removed. The bool distinguishes a miss from a
// cached JSON null.
func (c *inputCacheStore) get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
			delete(c.entries, key)
			return nil, false
		}
		// Touch entry for LRU.
		e.insertAt = time.Now()
		return e.value, true
	}
	return nil, false
}

// put stores a value with the given TTL, evicting the oldest entry if
// at capacity.
func (c *inputCacheStore) put(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	entry := &cacheEntry{value: value, insertAt: now, expiresAt: now.Add(ttl)}

	// If already cached, just update.
	if _, ok := c.entries[key]; ok {
		c.entries[key] = entry
		return
	}

	// Evict oldest if at capacity.
	if len(c.entries) >= c.maxSize {
		var oldestKey string
		var oldestTime time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.insertAt.Before(oldestTime) {
				oldestKey = k
				oldestTime = e.insertAt
			}
		}
		if oldestKey != "" {
			delete(c.entries, oldestKey)
		}
	}

	c.entries[key] = entry
}

// sweep removes all expired entries from the cache.
func (c *inputCacheStore) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, e := range c.entries {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// startSweeper launches a background goroutine that periodically removes expired entries.
// It is safe to call multiple times; only the first call spawns a sweeper.
// It stops when ctx is cancelled.
func (c *inputCacheStore) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	if !c.sweeperStarted.CompareAndSwap(false, true) {
		return
	}
	var sweeping atomic.Bool
	go func() {
		defer c.sweeperStarted.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if !sweeping.CompareAndSwap(false, true) {
					continue
				}
				c.sweep()
				sweeping.Store(false)
			}
		}
	}()
}

// reset clears all cached entries. Used in tests.
func (c *inputCacheStore) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// size returns the number of cached entries.
func (c *inputCacheStore) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// makeCacheKey creates a cache key for a file or inline input. The kind
// prefix ("data" or "schema") separates decoded values from parsed
// schema documents. Returns empty string when the input cannot be keyed.
func makeCacheKey(kind, file, content string) string {
	switch {
	case file != "":
		absPath, err := filepath.Abs(file)
		if err != nil {
			return ""
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return "" // Can't stat, don't cache.
		}
		return fmt.Sprintf("%s:file:%s:%d", kind, absPath, info.ModTime().UnixNano())
	case content != "":
		h := sha256.Sum256([]byte(content))
		return fmt.Sprintf("%s:content:%s", kind, hex.EncodeToString(h[:]))
	default:
		return ""
	}
}

// checkInlineSize enforces the configured inline input limit.
func checkInlineSize(content string) error {
	if int64(len(content)) > cfg.MaxInputBytes {
		return fmt.Errorf("inline input size %d bytes exceeds maximum %d bytes; use file input instead, or set SCHEMATOOLS_MAX_INPUT_BYTES to increase",
			len(content), cfg.MaxInputBytes)
	}
	return nil
}

// resolveData decodes example data from a file path or inline content,
// using the cache for both. Exactly one of file or data must be
// provided. Returns the decoded value and a source name for logging.
func resolveData(file, data string) (any, string, error) {
	count := 0
	if file != "" {
		count++
	}
	if data != "" {
		count++
	}
	if count != 1 {
		return nil, "", fmt.Errorf("exactly one of file or data must be provided (got %d)", count)
	}

	if err := checkInlineSize(data); err != nil {
		return nil, "", err
	}

	sourceName := "inline data"
	if file != "" {
		sourceName = file
	}

	var key string
	if cfg.CacheEnabled {
		key = makeCacheKey("data", file, data)
	}
	if key != "" {
		if v, ok := inputCache.get(key); ok {
			return v, sourceName, nil
		}
	}

	raw := []byte(data)
	if file != "" {
		var err error
		raw, err = os.ReadFile(file)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read data file: %w", err)
		}
	}
	value, _, err := inferrer.DecodeValue(raw)
	if err != nil {
		return nil, "", err
	}

	// Cache the value for future calls (key is empty when caching is disabled).
	if key != "" {
		inputCache.put(key, value, cfg.CacheTTL)
	}

	return value, sourceName, nil
}

// resolveSchema loads a schema document from a file path or inline
// content, using the cache for both. Exactly one of file or content
// must be provided; callers validate which wire fields carry them.
func resolveSchema(file, content string) (*inferrer.Schema, error) {
	count := 0
	if file != "" {
		count++
	}
	if content != "" {
		count++
	}
	if count != 1 {
		return nil, fmt.Errorf("exactly one of a schema file or inline schema must be provided (got %d)", count)
	}

	if err := checkInlineSize(content); err != nil {
		return nil, err
	}

	var key string
	if cfg.CacheEnabled {
		key = makeCacheKey("schema", file, content)
	}
	if key != "" {
		if v, ok := inputCache.get(key); ok {
			if s, ok := v.(*inferrer.Schema); ok {
				return s, nil
			}
		}
	}

	var schema *inferrer.Schema
	var err error
	if file != "" {
		schema, err = inferrer.LoadSchema(file)
	} else {
		schema, _, err = inferrer.ParseSchema([]byte(content))
	}
	if err != nil {
		return nil, err
	}

	if key != "" {
		inputCache.put(key, schema, cfg.CacheTTL)
	}

	return schema, nil
}
