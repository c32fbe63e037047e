// File path: internal/summarize/analysis.go
package summarize

import (
	"context"
	"fmt"
	"strings"

	"github.com/cjhueck/ga-suche/internal/common"
	"github.com/cjhueck/ga-suche/internal/llm"
	"github.com/cjhueck/ga-suche/internal/refs"
	"github.com/cjhueck/ga-suche/internal/search"
)

const (
	analysisContextLimit  = 15
	fallbackSourceLimit   = 10
	defaultAnalysisTokens = 8192
)

// depthTokens maps the requested analysis depth to the generation budget.
var depthTokens = map[string]int{
	"allgemein":   2000,
	"genau":       3500,
	"ausführlich": 6000,
}

// Analysis composes an LLM analysis of the ranked passages for a query and
// rewrites its citations into clickable references. Provider absence or any
// generation failure degrades to a deterministic local digest; the request
// never fails on the collaborator's account.
func Analysis(ctx context.Context, provider llm.Provider, query string, results []search.Result, depth string) string {
	logger := common.Logger()
	if provider == nil {
		logger.Debug("summarize: no provider, using fallback analysis", "query", query)
		return fallbackAnalysis(query, results)
	}

	top := results
	if len(top) > analysisContextLimit {
		top = top[:analysisContextLimit]
	}
	maxTokens, ok := depthTokens[depth]
	if !ok {
		maxTokens = defaultAnalysisTokens
	}

	text, err := provider.Generate(ctx, buildAnalysisPrompt(query, top, depth), maxTokens)
	if err != nil {
		logger.Warn("summarize: analysis generation failed, using fallback", "error", err)
		return fallbackAnalysis(query, results)
	}

	sources := make([]refs.Source, 0, len(top))
	for _, res := range top {
		sources = append(sources, refs.Source{ID: res.ID, Index: res.Index})
	}
	return refs.NewLinker(sources).Link(text)
}

func buildAnalysisPrompt(query string, results []search.Result, depth string) string {
	var context strings.Builder
	available := make([]string, 0, len(results))
	for i, res := range results {
		if i > 0 {
			context.WriteString("\n\n---\n\n")
		}
		ref := res.ID + ":" + res.Index
		available = append(available, ref)
		display := res.FileName
		if display == "" {
			display = res.Title
		}
		fmt.Fprintf(&context, "[%s] %s\n%s", ref, display, res.Content)
	}

	return fmt.Sprintf(`Analysieren Sie die folgenden Textstellen aus Rudolf Steiners Werk zur Frage: %q

ANALYSE-TIEFE: %s

QUELLENANGABEN:
- Verwenden Sie das Format GA###/##:index nach jeder spezifischen Aussage
- Verfügbare Referenzen: %s
- Format: GA###/##:index (z.B. GA052/7:n5x6ru)
- WICHTIG: Verwenden Sie immer das vollständige Format mit :index
- Beispiel: "Steiner kritisiert Kants Erkenntnisgrenze (GA052/7:n5x6ru)."

ANWEISUNGEN:
- Arbeiten Sie nur mit den gegebenen Textpassagen
- Fassen Sie thematische Verbindungen zusammen
- Strukturieren Sie nach wichtigsten Aspekten
- Verwenden Sie die vollständigen Referenzen GA###/##:index für jede spezifische Aussage

TEXTPASSAGEN:
%s

ANALYSE:`, query, depth, strings.Join(available, ", "), context.String())
}

// fallbackAnalysis builds a deterministic digest from local data only.
func fallbackAnalysis(query string, results []search.Result) string {
	top := results
	if len(top) > fallbackSourceLimit {
		top = top[:fallbackSourceLimit]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Analyse zu: %q\n\nBasierend auf %d Textstellen:\n\n", query, len(results))
	names := make([]string, 0, len(top))
	for i, res := range top {
		preview := res.Content
		if len([]rune(preview)) > 250 {
			preview = string([]rune(preview)[:250])
		}
		display := res.FileName
		if display == "" {
			display = res.ID
		}
		names = append(names, display)
		fmt.Fprintf(&b, "## %d. %s\n\n\"%s...\"\n\n", i+1, display, preview)
	}
	fmt.Fprintf(&b, "**Quellen**: %s", strings.Join(names, ", "))
	return b.String()
}
