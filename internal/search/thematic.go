// File path: internal/search/thematic.go
package search

import (
	"sort"
	"strings"

	"github.com/cjhueck/ga-suche/internal/common"
)

// German function words dropped during term extraction.
var stopWords = map[string]struct{}{
	"wie": {}, "ist": {}, "das": {}, "verhältnis": {}, "von": {}, "und": {},
	"der": {}, "die": {}, "des": {}, "den": {}, "dem": {}, "ein": {},
	"eine": {}, "einem": {}, "einen": {}, "was": {}, "welche": {},
	"welcher": {}, "zwischen": {}, "bei": {}, "nach": {}, "für": {},
	"mit": {}, "aus": {}, "über": {}, "sich": {}, "zur": {},
}

const punctuation = ".,;:!?"

// ExtractTerms splits a natural-language question into its salient terms:
// lowercased, punctuation stripped, whitespace split, then filtered for
// stopwords and short tokens. An empty result is not an error; Thematic
// degrades to a whole-query search.
func ExtractTerms(query string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if strings.ContainsRune(punctuation, r) {
			return ' '
		}
		return r
	}, strings.ToLower(query))

	var terms []string
	for _, word := range strings.Fields(cleaned) {
		if len([]rune(word)) <= 3 {
			continue
		}
		if _, stop := stopWords[word]; stop {
			continue
		}
		terms = append(terms, word)
	}
	return terms
}

// Thematic decomposes the query into terms, runs a keyword search per term
// and merges per-passage scores. The first term to surface a passage stores
// its score verbatim; each later term adds half of its score, so repeated
// discovery keeps lifting a passage with decaying weight. Matched-term sets
// are unioned.
func (e *Engine) Thematic(query string) []Result {
	logger := common.Logger()
	terms := ExtractTerms(query)
	if len(terms) == 0 {
		logger.Debug("search: no key terms extracted, using whole query", "query", query)
		return e.Keyword(query)
	}
	logger.Debug("search: thematic terms", "query", query, "terms", terms)

	type mergedResult struct {
		result Result
		seen   map[string]struct{}
	}
	merged := make(map[string]*mergedResult)
	var discovery []string

	for _, term := range terms {
		for _, res := range e.Keyword(term) {
			key := res.ID + "\x00" + res.Index
			entry, ok := merged[key]
			if !ok {
				seen := make(map[string]struct{}, len(res.MatchedTerms))
				for _, t := range res.MatchedTerms {
					seen[t] = struct{}{}
				}
				matched := make([]string, len(res.MatchedTerms))
				copy(matched, res.MatchedTerms)
				res.MatchedTerms = matched
				merged[key] = &mergedResult{result: res, seen: seen}
				discovery = append(discovery, key)
				continue
			}
			entry.result.KeywordScore += res.KeywordScore * 0.5
			for _, t := range res.MatchedTerms {
				if _, dup := entry.seen[t]; dup {
					continue
				}
				entry.seen[t] = struct{}{}
				entry.result.MatchedTerms = append(entry.result.MatchedTerms, t)
			}
		}
	}

	results := make([]Result, 0, len(discovery))
	for _, key := range discovery {
		results = append(results, merged[key].result)
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].KeywordScore > results[j].KeywordScore
	})
	logger.Debug("search: thematic pass", "terms", len(terms), "hits", len(results))
	return results
}
