// File path: internal/corpus/types.go
package corpus

import "strings"

// Chunk is a short indexed excerpt of lecture text, the atomic unit of
// keyword search. Field names mirror the JSON produced by the extraction
// pipeline.
type Chunk struct {
	ID       string `json:"ID"`
	Index    string `json:"index"`
	Title    string `json:"title,omitempty"`
	FileName string `json:"fileName,omitempty"`
	Content  string `json:"content"`
}

// Paragraph is one ordered unit of a full lecture. Older extraction runs
// stored the body under "text" instead of "content"; Body hides that.
type Paragraph struct {
	Index   string `json:"index,omitempty"`
	Content string `json:"content,omitempty"`
	Text    string `json:"text,omitempty"`
}

// Body returns the paragraph text regardless of which field carries it.
func (p Paragraph) Body() string {
	if p.Content != "" {
		return p.Content
	}
	return p.Text
}

// Lecture is a full transcribed talk: an ordered paragraph sequence plus
// volume metadata. Paragraph order defines adjacency for proximity search
// and must never be reordered.
type Lecture struct {
	ID            string      `json:"ID"`
	Title         string      `json:"title,omitempty"`
	FileName      string      `json:"fileName,omitempty"`
	Location      string      `json:"location,omitempty"`
	Date          string      `json:"date,omitempty"`
	GaNumber      string      `json:"gaNumber,omitempty"`
	GaTitle       string      `json:"gaTitle,omitempty"`
	LectureNumber int         `json:"lectureNumber,omitempty"`
	Paragraphs    []Paragraph `json:"paragraphs"`
}

// Volume returns the volume part of a lecture identity ("GA052" for
// "GA052/7"). Identities without a slash are their own volume.
func Volume(lectureID string) string {
	if idx := strings.Index(lectureID, "/"); idx >= 0 {
		return lectureID[:idx]
	}
	return lectureID
}
