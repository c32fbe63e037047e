// File path: internal/cache/summary.go
package cache

import (
	"encoding/json"
	"sync"

	"github.com/cjhueck/ga-suche/internal/common"
)

const summaryFileName = "lecture-summaries.json"

// Heading is one generated intermediate heading, anchored before the
// paragraph whose index it names.
type Heading struct {
	Index string `json:"index"`
	Text  string `json:"text"`
	Level string `json:"level"`
}

// Entry is a cached lecture summary. Early cache files stored a bare string
// per lecture; UnmarshalJSON accepts that legacy shape and normalizes it to
// the structured form at the read boundary, so nothing downstream ever
// branches on value shape. New writes are always structured.
type Entry struct {
	Summary  string    `json:"summary"`
	Headings []Heading `json:"headings"`
}

func (e *Entry) UnmarshalJSON(data []byte) error {
	var legacy string
	if err := json.Unmarshal(data, &legacy); err == nil {
		e.Summary = legacy
		e.Headings = []Heading{}
		return nil
	}
	type structured Entry
	var s structured
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*e = Entry(s)
	if e.Headings == nil {
		e.Headings = []Heading{}
	}
	return nil
}

// SummaryCache memoizes generated lecture summaries keyed by lecture
// identity. It is the only mutable shared state besides the overview cache;
// concurrent writers race benignly with last-write-wins.
type SummaryCache struct {
	mu      sync.RWMutex
	entries map[string]Entry
	storage *Storage
}

// LoadSummaryCache reads the persisted cache. A missing or unreadable file
// degrades to an empty cache, never an error.
func LoadSummaryCache(storage *Storage) *SummaryCache {
	logger := common.Logger()
	c := &SummaryCache{entries: make(map[string]Entry), storage: storage}
	if storage == nil {
		return c
	}
	entries := make(map[string]Entry)
	found, err := storage.LoadJSON(summaryFileName, &entries)
	if err != nil {
		logger.Warn("cache: summary cache unreadable, starting empty", "error", err)
		return c
	}
	if found {
		c.entries = entries
		logger.Info("cache: summaries loaded", "lectures", len(entries))
	} else {
		logger.Info("cache: no persisted summaries, starting empty")
	}
	return c
}

// Get returns the cached entry for a lecture identity.
func (c *SummaryCache) Get(lectureID string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[lectureID]
	return entry, ok
}

// Has reports whether a summary is cached for the lecture.
func (c *SummaryCache) Has(lectureID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[lectureID]
	return ok
}

// Len returns the number of cached summaries.
func (c *SummaryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Put stores the entry and persists the whole cache. The in-memory update
// sticks even when persistence fails, trading durability for availability;
// the return value reports whether the write reached the durable store.
func (c *SummaryCache) Put(lectureID string, entry Entry) bool {
	if entry.Headings == nil {
		entry.Headings = []Heading{}
	}
	c.mu.Lock()
	c.entries[lectureID] = entry
	snapshot := make(map[string]Entry, len(c.entries))
	for k, v := range c.entries {
		snapshot[k] = v
	}
	c.mu.Unlock()
	if c.storage == nil {
		return false
	}
	return c.storage.SaveJSON(summaryFileName, snapshot)
}
