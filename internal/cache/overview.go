// File path: internal/cache/overview.go
package cache

import (
	"strings"
	"sync"

	"github.com/cjhueck/ga-suche/internal/common"
	"github.com/cjhueck/ga-suche/internal/corpus"
)

const overviewFileName = "ga-overviews.json"

// LectureOverview is one lecture's row inside a volume overview, ordered by
// lecture number.
type LectureOverview struct {
	ID            string `json:"ID"`
	LectureNumber int    `json:"lectureNumber,omitempty"`
	Title         string `json:"title,omitempty"`
	Date          string `json:"date,omitempty"`
	Location      string `json:"location,omitempty"`
	Summary       string `json:"summary,omitempty"`
	HasSummary    bool   `json:"hasSummary"`
}

// OverviewEntry is a derived, re-creatable projection of one volume. It is
// never patched in place: a stale entry is deleted and lazily rebuilt.
type OverviewEntry struct {
	GaNumber     string            `json:"gaNumber"`
	GaTitle      string            `json:"gaTitle,omitempty"`
	Lectures     []LectureOverview `json:"lectures"`
	LectureCount int               `json:"lectureCount"`
}

// OverviewCache memoizes volume overviews. Keys are matched
// case-insensitively because volume identifiers arrive in mixed case from
// different call sites; the original spelling is preserved in the entry.
type OverviewCache struct {
	mu      sync.RWMutex
	entries map[string]OverviewEntry
	storage *Storage
}

// LoadOverviewCache reads the persisted overview cache, degrading to empty
// on any failure.
func LoadOverviewCache(storage *Storage) *OverviewCache {
	logger := common.Logger()
	c := &OverviewCache{entries: make(map[string]OverviewEntry), storage: storage}
	if storage == nil {
		return c
	}
	entries := make(map[string]OverviewEntry)
	found, err := storage.LoadJSON(overviewFileName, &entries)
	if err != nil {
		logger.Warn("cache: overview cache unreadable, starting empty", "error", err)
		return c
	}
	if found {
		normalized := make(map[string]OverviewEntry, len(entries))
		for key, entry := range entries {
			normalized[strings.ToLower(key)] = entry
		}
		c.entries = normalized
		logger.Info("cache: overviews loaded", "volumes", len(normalized))
	}
	return c
}

// Get resolves a volume identifier case-insensitively.
func (c *OverviewCache) Get(gaNumber string) (OverviewEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[normalizeVolume(gaNumber)]
	return entry, ok
}

// Put stores the overview under its normalized key and persists the cache.
func (c *OverviewCache) Put(gaNumber string, entry OverviewEntry) bool {
	c.mu.Lock()
	c.entries[normalizeVolume(gaNumber)] = entry
	snapshot := make(map[string]OverviewEntry, len(c.entries))
	for k, v := range c.entries {
		snapshot[k] = v
	}
	c.mu.Unlock()
	if c.storage == nil {
		return false
	}
	return c.storage.SaveJSON(overviewFileName, snapshot)
}

// Len returns the number of cached volume overviews.
func (c *OverviewCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Invalidate deletes the overview for the volume a lecture belongs to. It
// must run whenever that lecture's summary is (re)written so the next
// overview read regenerates from fresh summaries.
func (c *OverviewCache) Invalidate(lectureID string) {
	key := normalizeVolume(corpus.Volume(lectureID))
	c.mu.Lock()
	_, existed := c.entries[key]
	if existed {
		delete(c.entries, key)
	}
	var snapshot map[string]OverviewEntry
	if existed && c.storage != nil {
		snapshot = make(map[string]OverviewEntry, len(c.entries))
		for k, v := range c.entries {
			snapshot[k] = v
		}
	}
	c.mu.Unlock()
	if snapshot != nil {
		c.storage.SaveJSON(overviewFileName, snapshot)
	}
	if existed {
		common.Logger().Debug("cache: overview invalidated", "volume", key)
	}
}

func normalizeVolume(gaNumber string) string {
	return strings.ToLower(strings.TrimSpace(gaNumber))
}
