// File path: internal/cache/overview_test.go
package cache

import "testing"

func sampleOverview() OverviewEntry {
	return OverviewEntry{
		GaNumber: "GA052",
		GaTitle:  "Spirituelle Seelenlehre",
		Lectures: []LectureOverview{
			{ID: "GA052/1", LectureNumber: 1, HasSummary: false},
			{ID: "GA052/2", LectureNumber: 2, Summary: "kurz", HasSummary: true},
		},
		LectureCount: 2,
	}
}

func TestOverviewCacheCaseInsensitiveKeys(t *testing.T) {
	cache := LoadOverviewCache(nil)
	cache.Put("GA052", sampleOverview())

	for _, key := range []string{"GA052", "ga052", " Ga052 "} {
		entry, ok := cache.Get(key)
		if !ok {
			t.Fatalf("lookup %q failed", key)
		}
		if entry.GaNumber != "GA052" {
			t.Fatalf("original spelling lost for %q: %q", key, entry.GaNumber)
		}
	}
}

func TestOverviewCacheInvalidateByLectureID(t *testing.T) {
	cache := LoadOverviewCache(nil)
	cache.Put("GA052", sampleOverview())

	// A summary write for any lecture of the volume drops the projection.
	cache.Invalidate("ga052/2")
	if _, ok := cache.Get("GA052"); ok {
		t.Fatal("overview must be gone after invalidation")
	}
	// Invalidating an uncached volume is a no-op.
	cache.Invalidate("GA999/1")
}

func TestOverviewCachePersistsAcrossLoads(t *testing.T) {
	storage := testStorage(t)
	cache := LoadOverviewCache(storage)
	if !cache.Put("GA052", sampleOverview()) {
		t.Fatal("expected durable write")
	}

	reloaded := LoadOverviewCache(storage)
	entry, ok := reloaded.Get("ga052")
	if !ok {
		t.Fatal("overview missing after reload")
	}
	if entry.LectureCount != 2 || len(entry.Lectures) != 2 {
		t.Fatalf("reloaded entry broken: %+v", entry)
	}
}

func TestOverviewCacheInvalidatePersists(t *testing.T) {
	storage := testStorage(t)
	cache := LoadOverviewCache(storage)
	cache.Put("GA052", sampleOverview())
	cache.Invalidate("GA052/1")

	if reloaded := LoadOverviewCache(storage); reloaded.Len() != 0 {
		t.Fatalf("invalidation must reach the durable store, got %d entries", reloaded.Len())
	}
}
