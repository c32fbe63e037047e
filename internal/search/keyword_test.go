// File path: internal/search/keyword_test.go
package search

import (
	"testing"

	"github.com/cjhueck/ga-suche/internal/corpus"
)

func TestKeywordScoresAndMatchedTerms(t *testing.T) {
	chunks := []corpus.Chunk{
		{ID: "GA1/1", Index: "x1", Content: "Kant und die Erkenntnistheorie"},
	}
	engine := NewEngine(chunks, nil, DefaultSynonyms())

	results := engine.Keyword("kant")
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	res := results[0]
	if res.KeywordScore < 1 {
		t.Fatalf("expected score >= 1, got %f", res.KeywordScore)
	}
	found := false
	for _, term := range res.MatchedTerms {
		if term == "kant" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected 'kant' in matched terms, got %v", res.MatchedTerms)
	}
}

func TestKeywordExcludesZeroScores(t *testing.T) {
	chunks := []corpus.Chunk{
		{ID: "GA1/1", Index: "a", Content: "nichts relevantes"},
		{ID: "GA1/2", Index: "b", Content: "hier steht alpha"},
	}
	engine := NewEngine(chunks, nil, Synonyms{})
	results := engine.Keyword("alpha")
	if len(results) != 1 {
		t.Fatalf("zero-score passages must be excluded, got %d results", len(results))
	}
	for _, res := range results {
		if res.KeywordScore <= 0 {
			t.Fatalf("result with non-positive score: %f", res.KeywordScore)
		}
	}
}

func TestKeywordCountsOverlappingMatches(t *testing.T) {
	chunks := []corpus.Chunk{
		{ID: "GA1/1", Index: "a", Content: "aaaa"},
	}
	engine := NewEngine(chunks, nil, Synonyms{})
	results := engine.Keyword("aa")
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	// "aaaa" contains "aa" at offsets 0, 1 and 2.
	if results[0].KeywordScore != 3 {
		t.Fatalf("expected overlapping count 3, got %f", results[0].KeywordScore)
	}
}

func TestKeywordFieldWeights(t *testing.T) {
	chunks := []corpus.Chunk{
		{ID: "alpha/1", Index: "a", Title: "alpha", Content: "alpha"},
	}
	engine := NewEngine(chunks, nil, Synonyms{})
	results := engine.Keyword("alpha")
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	// content*1 + title*3 + id*5
	if results[0].KeywordScore != 1+3+5 {
		t.Fatalf("expected weighted score 9, got %f", results[0].KeywordScore)
	}
}

func TestKeywordStableTieOrder(t *testing.T) {
	chunks := []corpus.Chunk{
		{ID: "GA1/1", Index: "a", Content: "alpha"},
		{ID: "GA1/2", Index: "b", Content: "alpha"},
		{ID: "GA1/3", Index: "c", Content: "alpha alpha"},
	}
	engine := NewEngine(chunks, nil, Synonyms{})
	results := engine.Keyword("alpha")
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].ID != "GA1/3" {
		t.Fatalf("highest score first, got %s", results[0].ID)
	}
	if results[1].ID != "GA1/1" || results[2].ID != "GA1/2" {
		t.Fatalf("equal scores must keep corpus order, got %s, %s", results[1].ID, results[2].ID)
	}
}
