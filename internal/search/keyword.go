// File path: internal/search/keyword.go
package search

import (
	"sort"
	"strings"

	"github.com/cjhueck/ga-suche/internal/common"
	"github.com/cjhueck/ga-suche/internal/corpus"
)

// Result is a passage augmented with ranking state. KeywordScore accumulates
// the lexical score, MatchedTerms records which surface forms contributed,
// and FinalScore is filled by Rerank. Results are transient and recomputed
// per request.
type Result struct {
	corpus.Chunk
	KeywordScore  float64  `json:"keywordScore"`
	MatchedTerms  []string `json:"matchedTerms"`
	SemanticScore float64  `json:"semanticScore,omitempty"`
	FinalScore    float64  `json:"finalScore,omitempty"`
}

// Engine runs every search path against the frozen corpus.
type Engine struct {
	chunks   []corpus.Chunk
	lectures []*corpus.Lecture
	synonyms Synonyms
}

// NewEngine builds an engine over the loaded corpus. The lecture slice may
// be empty, which disables the fulltext path.
func NewEngine(chunks []corpus.Chunk, lectures []*corpus.Lecture, synonyms Synonyms) *Engine {
	if synonyms == nil {
		synonyms = DefaultSynonyms()
	}
	return &Engine{chunks: chunks, lectures: lectures, synonyms: synonyms}
}

// Expand exposes synonym expansion for callers that report the expanded
// term set.
func (e *Engine) Expand(query string) []string {
	return e.synonyms.Expand(query)
}

// SynonymCount returns the number of configured synonym concepts.
func (e *Engine) SynonymCount() int {
	return len(e.synonyms)
}

// LectureCount returns the number of lectures available to the fulltext
// path.
func (e *Engine) LectureCount() int {
	return len(e.lectures)
}

// ChunkCount returns the size of the passage collection.
func (e *Engine) ChunkCount() int {
	return len(e.chunks)
}

// Keyword expands the query and scores every passage, returning matches
// sorted by descending score. The sort is stable so equally scored passages
// keep their corpus order.
func (e *Engine) Keyword(query string) []Result {
	terms := e.synonyms.Expand(query)
	results := make([]Result, 0, 64)
	for _, chunk := range e.chunks {
		score, matched := scoreChunk(chunk, terms)
		if score <= 0 {
			continue
		}
		results = append(results, Result{
			Chunk:        chunk,
			KeywordScore: score,
			MatchedTerms: matched,
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].KeywordScore > results[j].KeywordScore
	})
	common.Logger().Debug("search: keyword pass", "query", query, "terms", len(terms), "hits", len(results))
	return results
}

// scoreChunk counts overlapping occurrences of each surface form in the
// passage content, title and identity, weighted 1/3/5. A term contributes
// to the matched set iff it occurs at all.
func scoreChunk(chunk corpus.Chunk, terms []string) (float64, []string) {
	content := strings.ToLower(chunk.Content)
	title := strings.ToLower(chunk.Title)
	id := strings.ToLower(chunk.ID)

	var score float64
	var matched []string
	for _, term := range terms {
		contentCount := countOverlapping(content, term)
		titleCount := countOverlapping(title, term)
		idCount := countOverlapping(id, term)
		if contentCount == 0 && titleCount == 0 && idCount == 0 {
			continue
		}
		score += float64(contentCount) + float64(titleCount)*3 + float64(idCount)*5
		matched = append(matched, term)
	}
	return score, matched
}

// countOverlapping counts substring occurrences advancing one byte per
// match, so "aaa" contains "aa" twice.
func countOverlapping(haystack, needle string) int {
	if needle == "" {
		return 0
	}
	count := 0
	for pos := 0; ; {
		idx := strings.Index(haystack[pos:], needle)
		if idx < 0 {
			break
		}
		count++
		pos += idx + 1
	}
	return count
}
