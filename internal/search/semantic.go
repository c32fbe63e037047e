// File path: internal/search/semantic.go
package search

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Domain vocabulary rewarded with a flat bonus during re-ranking.
var domainTerms = []string{
	"erkenntnis", "wahrheit", "wirklichkeit", "geist", "seele",
	"bewusstsein", "denken", "anschauung", "begriff",
}

const (
	proximityWindow  = 100
	idealLength      = 500
	maxLengthPenalty = 0.5
	domainBonus      = 2.0
)

// Rerank adjusts keyword-derived scores with three signals: clustering of
// query words in the content, presence of domain vocabulary, and closeness
// of the passage length to an ideal. KeywordScore is preserved; the
// adjusted value lands in SemanticScore and FinalScore. The returned slice
// is sorted descending by final score, stable over the input order.
func (e *Engine) Rerank(results []Result, query string) []Result {
	queryWords := splitQueryWords(query)
	out := make([]Result, len(results))
	for i, res := range results {
		content := strings.ToLower(res.Content)
		score := res.KeywordScore

		// Ordered pairs on purpose: each clustered pair counts once per
		// direction, mirroring how repeated co-occurrence compounds.
		// Distances count runes; byte offsets would overstate them in
		// umlaut-heavy text.
		for _, word := range queryWords {
			wordIdx := strings.Index(content, word)
			if wordIdx < 0 {
				continue
			}
			wordPos := utf8.RuneCountInString(content[:wordIdx])
			for _, other := range queryWords {
				if other == word {
					continue
				}
				otherIdx := strings.Index(content, other)
				if otherIdx < 0 {
					continue
				}
				distance := wordPos - utf8.RuneCountInString(content[:otherIdx])
				if distance < 0 {
					distance = -distance
				}
				if distance < proximityWindow {
					bonus := 10 - float64(distance)/10
					if bonus > 0 {
						score += bonus
					}
				}
			}
		}

		for _, term := range domainTerms {
			if strings.Contains(content, term) {
				score += domainBonus
			}
		}

		length := utf8.RuneCountInString(content)
		delta := float64(length - idealLength)
		if delta < 0 {
			delta = -delta
		}
		penalty := delta / idealLength
		if penalty > maxLengthPenalty {
			penalty = maxLengthPenalty
		}
		score *= 1 - penalty

		res.SemanticScore = score
		res.FinalScore = score
		out[i] = res
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].FinalScore > out[j].FinalScore
	})
	return out
}

func splitQueryWords(query string) []string {
	var words []string
	for _, word := range strings.Fields(strings.ToLower(query)) {
		if utf8.RuneCountInString(word) > 2 {
			words = append(words, word)
		}
	}
	return words
}
