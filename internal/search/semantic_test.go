// File path: internal/search/semantic_test.go
package search

import (
	"math"
	"strings"
	"testing"

	"github.com/cjhueck/ga-suche/internal/corpus"
)

func rerankOne(t *testing.T, content, query string, keywordScore float64) Result {
	t.Helper()
	engine := NewEngine(nil, nil, Synonyms{})
	results := engine.Rerank([]Result{{
		Chunk:        corpus.Chunk{ID: "GA1/1", Index: "a", Content: content},
		KeywordScore: keywordScore,
	}}, query)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	return results[0]
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestRerankProximityBonusAtZeroDistance(t *testing.T) {
	// Both words first occur at offset 0 ("kants" starts with "kant"), so the
	// pair contributes the maximum bonus in both directions.
	content := "kants " + strings.Repeat("z", 494)
	res := rerankOne(t, content, "kant kants", 10)
	// Exactly 500 runes: no length penalty. No domain vocabulary present.
	if !almostEqual(res.FinalScore, 10+20) {
		t.Fatalf("expected 30, got %f", res.FinalScore)
	}
	if res.KeywordScore != 10 {
		t.Fatalf("keyword score must be preserved, got %f", res.KeywordScore)
	}
}

func TestRerankProximityWindowIsExclusive(t *testing.T) {
	// "beta" at offset 100: distance 100 is outside the window.
	at100 := "alpha" + strings.Repeat("z", 95) + "beta" + strings.Repeat("z", 500-104)
	res := rerankOne(t, at100, "alpha beta", 10)
	if !almostEqual(res.FinalScore, 10) {
		t.Fatalf("distance 100 must earn no bonus, got %f", res.FinalScore)
	}

	// "beta" at offset 99: distance 99 earns 10-9.9 per direction.
	at99 := "alpha" + strings.Repeat("z", 94) + "beta" + strings.Repeat("z", 500-103)
	res = rerankOne(t, at99, "alpha beta", 10)
	if !almostEqual(res.FinalScore, 10+2*(10-9.9)) {
		t.Fatalf("expected 10.2, got %f", res.FinalScore)
	}
}

func TestRerankDomainVocabularyBonus(t *testing.T) {
	content := "erkenntnis und wahrheit" + strings.Repeat("z", 500-23)
	res := rerankOne(t, content, "unauffindbar", 5)
	if !almostEqual(res.FinalScore, 5+2*domainBonus) {
		t.Fatalf("expected two domain bonuses, got %f", res.FinalScore)
	}
}

func TestRerankLengthPenaltyClamps(t *testing.T) {
	// Very short passage: penalty clamps at 0.5.
	res := rerankOne(t, "zzz", "unauffindbar", 8)
	if !almostEqual(res.FinalScore, 4) {
		t.Fatalf("expected clamped penalty halving the score, got %f", res.FinalScore)
	}

	// 250 runes: penalty (500-250)/500 = 0.5 exactly, same clamp boundary.
	res = rerankOne(t, strings.Repeat("z", 250), "unauffindbar", 8)
	if !almostEqual(res.FinalScore, 4) {
		t.Fatalf("expected penalty 0.5 at 250 runes, got %f", res.FinalScore)
	}
}

func TestRerankProximityCountsRunes(t *testing.T) {
	// The filler between the words is 89 runes but 149 bytes; rune distance
	// 94 is inside the window while the byte distance 154 is not.
	content := "alpha" + strings.Repeat("ä", 60) + strings.Repeat("z", 29) + "beta" + strings.Repeat("z", 402)
	res := rerankOne(t, content, "alpha beta", 10)
	if !almostEqual(res.FinalScore, 10+2*(10-9.4)) {
		t.Fatalf("expected rune-based distance 94 to earn a bonus, got %f", res.FinalScore)
	}
}

func TestRerankLengthCountsRunes(t *testing.T) {
	// 500 umlauts are 1000 bytes but 500 runes: no penalty.
	res := rerankOne(t, strings.Repeat("ö", 500), "unauffindbar", 8)
	if !almostEqual(res.FinalScore, 8) {
		t.Fatalf("expected rune-based length, got %f", res.FinalScore)
	}
}

func TestRerankStableOrderOnTies(t *testing.T) {
	engine := NewEngine(nil, nil, Synonyms{})
	content := strings.Repeat("z", 500)
	results := engine.Rerank([]Result{
		{Chunk: corpus.Chunk{ID: "GA1/1", Index: "a", Content: content}, KeywordScore: 5},
		{Chunk: corpus.Chunk{ID: "GA1/2", Index: "b", Content: content}, KeywordScore: 5},
	}, "unauffindbar")
	if results[0].ID != "GA1/1" || results[1].ID != "GA1/2" {
		t.Fatalf("ties must keep input order, got %s, %s", results[0].ID, results[1].ID)
	}
}

func TestRerankIgnoresShortQueryWords(t *testing.T) {
	words := splitQueryWords("ist öl da alpha")
	// "öl" is two runes, "da" two; only "ist" (3) and "alpha" survive.
	if len(words) != 2 || words[0] != "ist" || words[1] != "alpha" {
		t.Fatalf("unexpected query words: %v", words)
	}
}
