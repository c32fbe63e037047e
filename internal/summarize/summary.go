// File path: internal/summarize/summary.go
package summarize

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/cjhueck/ga-suche/internal/cache"
	"github.com/cjhueck/ga-suche/internal/common"
	"github.com/cjhueck/ga-suche/internal/corpus"
	"github.com/cjhueck/ga-suche/internal/llm"
)

const (
	summaryMaxTokens = 4000
	// Beyond this estimate the lecture is truncated and headings are
	// skipped; the model only sees the opening and closing stretches.
	headingTokenLimit = 180000
	truncatedHalfSize = 360000
)

// LectureSummary generates a summary plus intermediate headings for one
// lecture. Provider absence, generation failure and unparseable output all
// degrade without error: the worst case is a deterministic template entry.
func LectureSummary(ctx context.Context, provider llm.Provider, lecture *corpus.Lecture) cache.Entry {
	logger := common.Logger()
	if provider == nil {
		logger.Debug("summarize: no provider, using fallback summary", "lecture", lecture.ID)
		return fallbackSummary(lecture)
	}

	fullText := renderParagraphs(lecture)
	estimatedTokens := len(fullText) / 4
	logger.Debug("summarize: lecture prepared", "lecture", lecture.ID, "paragraphs", len(lecture.Paragraphs), "est_tokens", estimatedTokens)

	headingsDisabled := false
	textToSummarize := fullText
	if estimatedTokens > headingTokenLimit {
		logger.Info("summarize: lecture too long, headings disabled", "lecture", lecture.ID, "est_tokens", estimatedTokens)
		headingsDisabled = true
		textToSummarize = truncateForPrompt(fullText)
	}

	raw, err := provider.Generate(ctx, buildSummaryPrompt(lecture, textToSummarize, headingsDisabled), summaryMaxTokens)
	if err != nil {
		logger.Warn("summarize: summary generation failed, using fallback", "lecture", lecture.ID, "error", err)
		return fallbackSummary(lecture)
	}
	return parseSummaryResponse(raw, lecture.ID)
}

// truncateForPrompt keeps the opening and closing stretches of an over-long
// lecture. Both cuts back off to a rune boundary so no UTF-8 sequence is
// split.
func truncateForPrompt(text string) string {
	head := truncatedHalfSize
	for head > 0 && !utf8.RuneStart(text[head]) {
		head--
	}
	tail := len(text) - truncatedHalfSize
	for tail < len(text) && !utf8.RuneStart(text[tail]) {
		tail++
	}
	return text[:head] +
		"\n\n[... Mittlerer Teil des Vortrags ausgelassen ...]\n\n" +
		text[tail:]
}

func renderParagraphs(lecture *corpus.Lecture) string {
	var parts []string
	for i, para := range lecture.Paragraphs {
		body := para.Body()
		if strings.TrimSpace(body) == "" {
			continue
		}
		index := para.Index
		if index == "" {
			index = fmt.Sprintf("para_%d", i)
		}
		parts = append(parts, fmt.Sprintf("[Index: %s]\n%s", index, body))
	}
	return strings.Join(parts, "\n\n")
}

// parseSummaryResponse decodes the model's JSON answer, tolerating markdown
// code fences. An unparseable answer becomes a headless entry carrying the
// raw text as summary.
func parseSummaryResponse(raw, lectureID string) cache.Entry {
	logger := common.Logger()
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	var entry struct {
		Summary  string          `json:"summary"`
		Headings []cache.Heading `json:"headings"`
	}
	if err := json.Unmarshal([]byte(cleaned), &entry); err != nil || entry.Summary == "" {
		logger.Warn("summarize: unparseable summary response, keeping raw text", "lecture", lectureID, "error", err)
		return cache.Entry{Summary: cleaned, Headings: []cache.Heading{}}
	}
	if entry.Headings == nil {
		entry.Headings = []cache.Heading{}
	}
	logger.Debug("summarize: summary parsed", "lecture", lectureID, "headings", len(entry.Headings))
	return cache.Entry{Summary: entry.Summary, Headings: entry.Headings}
}

func buildSummaryPrompt(lecture *corpus.Lecture, text string, headingsDisabled bool) string {
	display := lecture.FileName
	if display == "" {
		display = lecture.Title
	}
	if display == "" {
		display = lecture.ID
	}

	var b strings.Builder
	if headingsDisabled {
		b.WriteString("Erstelle eine Zusammenfassung für diesen Vortrag von Rudolf Steiner.\n\n")
	} else {
		b.WriteString("Erstelle eine Zusammenfassung und Zwischenüberschriften für diesen Vortrag von Rudolf Steiner.\n\n")
	}
	fmt.Fprintf(&b, "VORTRAG: %s\n", display)
	if lecture.Location != "" {
		fmt.Fprintf(&b, "ORT: %s\n", lecture.Location)
	}
	if lecture.Date != "" {
		fmt.Fprintf(&b, "DATUM: %s\n", lecture.Date)
	}
	fmt.Fprintf(&b, "\nDer Vortrag hat %d Absätze.\n\n", len(lecture.Paragraphs))

	b.WriteString("AUFGABE:\n1. Schreibe eine prägnante ZUSAMMENFASSUNG (100-150 Wörter) der Kernaussagen\n")
	if !headingsDisabled {
		b.WriteString(`2. Erstelle eine hierarchische Gliederung mit:
   - 3-6 HAUPTÜBERSCHRIFTEN (H3) für die großen thematischen Abschnitte
   - Jeweils 2-4 UNTERÜBERSCHRIFTEN (H4) pro Hauptabschnitt
3. Ordne jede Überschrift einem Absatz-Index zu

WICHTIG ZUR INDEX-ZUORDNUNG:
- Jeder Absatz im Text ist markiert mit [Index: XXXXX] (z.B. [Index: ^1e6ps7])
- Verwende EXAKT diesen Index in deiner Antwort
- Der Index gibt an, VOR welchem Absatz die Überschrift eingefügt wird
- Überschriften sollten gleichmäßig über den Vortrag verteilt sein
- H4-Überschriften folgen logisch unter ihren H3-Hauptüberschriften
`)
	}

	b.WriteString("\nAUSGABEFORMAT (als JSON):\n{\n  \"summary\": \"Deine Zusammenfassung in 100-150 Wörtern\"")
	if headingsDisabled {
		b.WriteString("\n}\n\nWICHTIG:\n- Gib NUR das JSON zurück, keinen anderen Text\n- Gib ein leeres headings-Array zurück: \"headings\": []\n")
	} else {
		b.WriteString(`,
  "headings": [
    {"index": "^1e6ps7", "text": "Die griechische Philosophie", "level": "h3"},
    {"index": "^3k8mw2", "text": "Sokrates und die Selbsterkenntnis", "level": "h4"}
  ]
}

WICHTIG:
- Gib NUR das JSON zurück, keinen anderen Text
- Setze für Hauptüberschriften "level": "h3" und für Unterüberschriften "level": "h4"
- Verwende die EXAKTEN Index-Strings aus dem Text (mit ^ am Anfang)
- Überschriften sollen das kommende Thema ankündigen
`)
	}

	fmt.Fprintf(&b, "\nVORTRAG-TEXT:\n%s\n\nAUSGABE (JSON):", text)
	return b.String()
}

// fallbackSummary is the deterministic entry used when no text generation
// is available.
func fallbackSummary(lecture *corpus.Lecture) cache.Entry {
	display := lecture.FileName
	if display == "" {
		display = lecture.Title
	}
	if display == "" {
		display = lecture.ID
	}
	return cache.Entry{
		Summary: fmt.Sprintf(
			"Automatische Zusammenfassung nicht verfügbar (kein API-Schlüssel konfiguriert). Der Vortrag %q enthält %d Absätze. Für eine detaillierte KI-Zusammenfassung benötigt das System einen API-Schlüssel in der .env Datei.",
			display, len(lecture.Paragraphs),
		),
		Headings: []cache.Heading{},
	}
}
