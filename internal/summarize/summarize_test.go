// File path: internal/summarize/summarize_test.go
package summarize

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/cjhueck/ga-suche/internal/corpus"
	"github.com/cjhueck/ga-suche/internal/search"
)

// stubProvider returns a canned response or error and records the prompt.
type stubProvider struct {
	response string
	err      error
	prompt   string
}

func (p *stubProvider) Generate(_ context.Context, prompt string, _ int) (string, error) {
	p.prompt = prompt
	if p.err != nil {
		return "", p.err
	}
	return p.response, nil
}

func (p *stubProvider) Name() string { return "stub" }

func sampleResults() []search.Result {
	return []search.Result{
		{Chunk: corpus.Chunk{ID: "GA052/7", Index: "n5x6ru", FileName: "GA052 - Siebter Vortrag", Content: "Steiner über Kant."}, KeywordScore: 4},
		{Chunk: corpus.Chunk{ID: "GA052/8", Index: "p2q3r4", Content: "Weiteres zum Denken."}, KeywordScore: 2},
	}
}

func TestAnalysisFallbackWithoutProvider(t *testing.T) {
	out := Analysis(context.Background(), nil, "kant", sampleResults(), "genau")
	if !strings.HasPrefix(out, `# Analyse zu: "kant"`) {
		t.Fatalf("expected deterministic digest, got %q", out)
	}
	if !strings.Contains(out, "**Quellen**: GA052 - Siebter Vortrag, GA052/8") {
		t.Fatalf("source line missing or wrong: %q", out)
	}
}

func TestAnalysisFallbackOnGenerationError(t *testing.T) {
	provider := &stubProvider{err: errors.New("kaputt")}
	out := Analysis(context.Background(), provider, "kant", sampleResults(), "genau")
	if !strings.HasPrefix(out, "# Analyse zu:") {
		t.Fatalf("generation failure must fall back, got %q", out)
	}
}

func TestAnalysisLinksCitations(t *testing.T) {
	provider := &stubProvider{response: "Steiner kritisiert Kants Erkenntnisgrenze (GA052/7:n5x6ru)."}
	out := Analysis(context.Background(), provider, "kant", sampleResults(), "genau")
	if !strings.Contains(out, `class="ga-reference" data-id="GA052/7" data-index="n5x6ru"`) {
		t.Fatalf("citation not linked: %q", out)
	}
	if !strings.Contains(provider.prompt, "GA052/7:n5x6ru") {
		t.Fatal("prompt must advertise the available references")
	}
}

func TestAnalysisPromptContainsPassages(t *testing.T) {
	provider := &stubProvider{response: "ok"}
	Analysis(context.Background(), provider, "kant", sampleResults(), "ausführlich")
	if !strings.Contains(provider.prompt, "Steiner über Kant.") {
		t.Fatal("passage content missing from prompt")
	}
	if !strings.Contains(provider.prompt, "ausführlich") {
		t.Fatal("depth missing from prompt")
	}
}

func testLecture() *corpus.Lecture {
	return &corpus.Lecture{
		ID:    "GA052/7",
		Title: "Siebter Vortrag",
		Paragraphs: []corpus.Paragraph{
			{Index: "^a1b2c3", Content: "Erster Absatz."},
			{Content: "Zweiter Absatz ohne Index."},
		},
	}
}

func TestLectureSummaryFallbackWithoutProvider(t *testing.T) {
	entry := LectureSummary(context.Background(), nil, testLecture())
	if !strings.Contains(entry.Summary, "2 Absätze") {
		t.Fatalf("fallback must mention the paragraph count, got %q", entry.Summary)
	}
	if entry.Headings == nil || len(entry.Headings) != 0 {
		t.Fatalf("fallback headings must be empty, got %v", entry.Headings)
	}
}

func TestLectureSummaryParsesFencedJSON(t *testing.T) {
	provider := &stubProvider{response: "```json\n{\"summary\": \"Kurz und gut.\", \"headings\": [{\"index\": \"^a1b2c3\", \"text\": \"Anfang\", \"level\": \"h3\"}]}\n```"}
	entry := LectureSummary(context.Background(), provider, testLecture())
	if entry.Summary != "Kurz und gut." {
		t.Fatalf("summary not parsed: %q", entry.Summary)
	}
	if len(entry.Headings) != 1 || entry.Headings[0].Level != "h3" {
		t.Fatalf("headings not parsed: %+v", entry.Headings)
	}
}

func TestLectureSummaryKeepsRawTextWhenUnparseable(t *testing.T) {
	provider := &stubProvider{response: "Das ist kein JSON."}
	entry := LectureSummary(context.Background(), provider, testLecture())
	if entry.Summary != "Das ist kein JSON." {
		t.Fatalf("raw text must survive as summary, got %q", entry.Summary)
	}
	if len(entry.Headings) != 0 {
		t.Fatalf("unparseable response must yield no headings, got %v", entry.Headings)
	}
}

func TestRenderParagraphsMarksIndices(t *testing.T) {
	rendered := renderParagraphs(testLecture())
	if !strings.Contains(rendered, "[Index: ^a1b2c3]") {
		t.Fatalf("explicit index marker missing: %q", rendered)
	}
	if !strings.Contains(rendered, "[Index: para_1]") {
		t.Fatalf("positional fallback marker missing: %q", rendered)
	}
}

func TestTruncateForPromptKeepsRuneBoundaries(t *testing.T) {
	// The leading ASCII byte shifts every umlaut off the even byte offsets,
	// so both cut points land inside a two-byte rune unless adjusted.
	text := "x" + strings.Repeat("ä", 400000)
	out := truncateForPrompt(text)
	if !utf8.ValidString(out) {
		t.Fatal("truncation must not split a UTF-8 sequence")
	}
	if !strings.Contains(out, "[... Mittlerer Teil des Vortrags ausgelassen ...]") {
		t.Fatalf("ellipsis marker missing: %q", out[:80])
	}
	if !strings.HasPrefix(out, "x") || !strings.HasSuffix(out, "ä") {
		t.Fatal("opening and closing stretches must survive")
	}
}

func TestRenderParagraphsSkipsEmpty(t *testing.T) {
	lecture := &corpus.Lecture{ID: "GA052/7", Paragraphs: []corpus.Paragraph{
		{Content: "   "},
		{Content: "Inhalt."},
	}}
	rendered := renderParagraphs(lecture)
	if strings.Contains(rendered, "para_0") || !strings.Contains(rendered, "Inhalt.") {
		t.Fatalf("blank paragraphs must be skipped: %q", rendered)
	}
}
