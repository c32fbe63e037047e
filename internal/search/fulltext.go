// File path: internal/search/fulltext.go
package search

import (
	"strings"

	"github.com/cjhueck/ga-suche/internal/common"
	"github.com/cjhueck/ga-suche/internal/corpus"
)

// ParagraphMatch is one selected paragraph of the fulltext scan, carrying
// the owning lecture's metadata and flags for which search words occur in
// the paragraph itself.
type ParagraphMatch struct {
	ID             string `json:"ID"`
	Title          string `json:"title,omitempty"`
	FileName       string `json:"fileName,omitempty"`
	Location       string `json:"location,omitempty"`
	Date           string `json:"date,omitempty"`
	ParagraphIndex int    `json:"paragraphIndex"`
	Index          string `json:"index,omitempty"`
	Content        string `json:"content"`
	HasWord1       bool   `json:"hasWord1"`
	HasWord2       bool   `json:"hasWord2"`
}

// Fulltext scans every lecture's paragraph sequence for one or two literal
// words. With a single word, every paragraph containing it is selected.
// With two words and no window, the selection is the pure union. With a
// window, a paragraph holding both words is selected alone; a paragraph
// holding only one word is paired with the first neighbor within the window
// that holds the other, scanning outward in index order and stopping at the
// first hit. A global (lecture, position) set keeps every paragraph from
// being emitted twice, including paragraphs reached once as an origin and
// once as somebody's neighbor.
func (e *Engine) Fulltext(word1, word2 string, maxDistance *int) []ParagraphMatch {
	logger := common.Logger()
	w1 := strings.ToLower(word1)
	w2 := strings.ToLower(word2)

	results := make([]ParagraphMatch, 0, 32)
	added := make(map[string]map[int]struct{})

	emit := func(lecture *corpus.Lecture, pos int) {
		seen, ok := added[lecture.ID]
		if !ok {
			seen = make(map[int]struct{})
			added[lecture.ID] = seen
		}
		if _, dup := seen[pos]; dup {
			return
		}
		seen[pos] = struct{}{}
		para := lecture.Paragraphs[pos]
		body := para.Body()
		lower := strings.ToLower(body)
		results = append(results, ParagraphMatch{
			ID:             lecture.ID,
			Title:          lecture.Title,
			FileName:       lecture.FileName,
			Location:       lecture.Location,
			Date:           lecture.Date,
			ParagraphIndex: pos,
			Index:          para.Index,
			Content:        body,
			HasWord1:       strings.Contains(lower, w1),
			HasWord2:       w2 != "" && strings.Contains(lower, w2),
		})
	}

	for _, lecture := range e.lectures {
		paragraphs := lecture.Paragraphs
		for pos := range paragraphs {
			lower := strings.ToLower(paragraphs[pos].Body())
			hasWord1 := strings.Contains(lower, w1)
			hasWord2 := w2 != "" && strings.Contains(lower, w2)

			switch {
			case w2 == "":
				if hasWord1 {
					emit(lecture, pos)
				}
			case maxDistance == nil:
				if hasWord1 || hasWord2 {
					emit(lecture, pos)
				}
			default:
				if hasWord1 && hasWord2 {
					emit(lecture, pos)
					continue
				}
				var missing string
				switch {
				case hasWord1:
					missing = w2
				case hasWord2:
					missing = w1
				default:
					continue
				}
				lo := pos - *maxDistance
				if lo < 0 {
					lo = 0
				}
				hi := pos + *maxDistance
				if hi > len(paragraphs)-1 {
					hi = len(paragraphs) - 1
				}
				for i := lo; i <= hi; i++ {
					if i == pos {
						continue
					}
					neighbor := strings.ToLower(paragraphs[i].Body())
					if strings.Contains(neighbor, missing) {
						emit(lecture, pos)
						emit(lecture, i)
						break
					}
				}
			}
		}
	}
	logger.Debug("search: fulltext pass", "word1", word1, "word2", word2, "hits", len(results))
	return results
}
