// File path: internal/refs/linker.go
package refs

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/cjhueck/ga-suche/internal/common"
)

// citationPattern recognizes in-text citation tokens of the form
// GA###/#:index, optionally parenthesized and with an optional caret before
// the index. The caret is a stable-ID marker with no semantic meaning.
var citationPattern = regexp.MustCompile(`(?i)\(?(GA\d{3}[a-z]?/\d+:\^?[a-z0-9]+)\)?`)

// Source is the passage data a resolved citation links back to.
type Source struct {
	ID    string
	Index string
}

// Linker rewrites citation tokens in generated prose into anchor
// placeholders pointing at the passages that justified them. Unresolvable
// citations are left as plain text.
type Linker struct {
	sources map[string]Source
}

// NewLinker builds the citation lookup. Every source is registered under its
// raw index and the caret-stripped index, each additionally in lowercase, so
// prose may cite any of the spellings.
func NewLinker(sources []Source) *Linker {
	l := &Linker{sources: make(map[string]Source, len(sources)*4)}
	for _, src := range sources {
		if src.ID == "" || src.Index == "" {
			continue
		}
		l.register(src.ID+":"+src.Index, src)
		if stripped := strings.TrimPrefix(src.Index, "^"); stripped != src.Index {
			l.register(src.ID+":"+stripped, src)
		}
	}
	return l
}

func (l *Linker) register(key string, src Source) {
	if _, exists := l.sources[key]; !exists {
		l.sources[key] = src
	}
	lower := strings.ToLower(key)
	if _, exists := l.sources[lower]; !exists {
		l.sources[lower] = src
	}
}

// resolve tries the fallback chain: exact token, caret-stripped token, then
// the lowercase of each. The first hit wins.
func (l *Linker) resolve(token string) (Source, bool) {
	candidates := []string{token}
	if idx := strings.Index(token, ":^"); idx >= 0 {
		candidates = append(candidates, token[:idx+1]+token[idx+2:])
	}
	for _, c := range candidates {
		candidates = append(candidates, strings.ToLower(c))
	}
	for _, c := range candidates {
		if src, ok := l.sources[c]; ok {
			return src, true
		}
	}
	return Source{}, false
}

// Link replaces every recognized citation in text with an anchor carrying
// the source identity and index as data attributes; the visible label is
// only the GA.../N part. Matches are collected left to right with their
// offsets, then applied right to left so earlier offsets stay valid while
// replacement lengths differ from match lengths. Running Link over already
// linked text is a no-op: the emitted anchors contain no substring matching
// the citation grammar.
func (l *Linker) Link(text string) string {
	matches := citationPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text
	}
	logger := common.Logger()
	linked := 0
	out := text
	for i := len(matches) - 1; i >= 0; i-- {
		m := matches[i]
		start, end := m[0], m[1]
		token := text[m[2]:m[3]]
		src, ok := l.resolve(token)
		if !ok {
			logger.Debug("refs: unresolved citation", "token", token)
			continue
		}
		display := token
		if idx := strings.Index(token, ":"); idx >= 0 {
			display = token[:idx]
		}
		replacement := fmt.Sprintf(
			`<a href="#" class="ga-reference" data-id="%s" data-index="%s">%s</a>`,
			html.EscapeString(src.ID), html.EscapeString(src.Index), html.EscapeString(display),
		)
		out = out[:start] + replacement + out[end:]
		linked++
	}
	logger.Debug("refs: citations linked", "found", len(matches), "linked", linked)
	return out
}
