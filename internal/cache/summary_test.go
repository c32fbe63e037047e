// File path: internal/cache/summary_test.go
package cache

import (
	"os"
	"path/filepath"
	"testing"
)

func testStorage(t *testing.T) *Storage {
	t.Helper()
	storage, err := NewStorage(t.TempDir())
	if err != nil {
		t.Fatalf("storage: %v", err)
	}
	return storage
}

func TestSummaryCacheRoundTrip(t *testing.T) {
	storage := testStorage(t)
	cache := LoadSummaryCache(storage)
	entry := Entry{
		Summary:  "Der Vortrag behandelt das Denken.",
		Headings: []Heading{{Index: "n5x6ru", Text: "Einleitung", Level: "h3"}},
	}
	if !cache.Put("GA052/7", entry) {
		t.Fatal("expected durable write to succeed")
	}

	reloaded := LoadSummaryCache(storage)
	got, ok := reloaded.Get("GA052/7")
	if !ok {
		t.Fatal("entry missing after reload")
	}
	if got.Summary != entry.Summary {
		t.Fatalf("summary mismatch: %q", got.Summary)
	}
	if len(got.Headings) != 1 || got.Headings[0].Level != "h3" {
		t.Fatalf("headings mismatch: %+v", got.Headings)
	}
}

func TestSummaryCacheNormalizesLegacyStrings(t *testing.T) {
	dir := t.TempDir()
	raw := `{"GA052/7": "alter nackter text", "GA052/8": {"summary": "neu", "headings": []}}`
	if err := os.WriteFile(filepath.Join(dir, "lecture-summaries.json"), []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}
	storage, err := NewStorage(dir)
	if err != nil {
		t.Fatal(err)
	}
	cache := LoadSummaryCache(storage)

	legacy, ok := cache.Get("GA052/7")
	if !ok {
		t.Fatal("legacy entry missing")
	}
	if legacy.Summary != "alter nackter text" {
		t.Fatalf("legacy summary not normalized: %q", legacy.Summary)
	}
	if legacy.Headings == nil || len(legacy.Headings) != 0 {
		t.Fatalf("legacy headings must normalize to empty, got %v", legacy.Headings)
	}
	if structured, ok := cache.Get("GA052/8"); !ok || structured.Summary != "neu" {
		t.Fatalf("structured entry broken: %+v", structured)
	}
}

func TestSummaryCacheUnreadableFileStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "lecture-summaries.json"), []byte("kein json"), 0o644); err != nil {
		t.Fatal(err)
	}
	storage, err := NewStorage(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cache := LoadSummaryCache(storage); cache.Len() != 0 {
		t.Fatalf("corrupt file must yield empty cache, got %d entries", cache.Len())
	}
}

func TestSummaryCacheMemoryOnlyWithoutStorage(t *testing.T) {
	cache := LoadSummaryCache(nil)
	if cache.Put("GA052/7", Entry{Summary: "nur im speicher"}) {
		t.Fatal("nil storage must report a non-durable write")
	}
	if entry, ok := cache.Get("GA052/7"); !ok || entry.Summary != "nur im speicher" {
		t.Fatal("in-memory entry must stick despite failed persistence")
	}
}

func TestSummaryCachePutDefaultsHeadings(t *testing.T) {
	cache := LoadSummaryCache(nil)
	cache.Put("GA052/7", Entry{Summary: "ohne headings"})
	entry, _ := cache.Get("GA052/7")
	if entry.Headings == nil {
		t.Fatal("stored entry must never carry nil headings")
	}
}
