// File path: internal/search/synonyms.go
package search

import (
	"encoding/json"
	"os"
	"sort"
	"strings"

	"github.com/cjhueck/ga-suche/internal/common"
)

// Synonyms maps a concept name to its surface forms. Only membership
// matters; list order never influences scoring.
type Synonyms map[string][]string

// DefaultSynonyms is the built-in table used whenever no override file
// exists. It is never merged with a partial override: an override file
// replaces it entirely.
func DefaultSynonyms() Synonyms {
	return Synonyms{
		"kant":              {"kant", "kants", "kantisch", "kantische", "kantischen", "immanuel kant", "kategorischer imperativ", "ding an sich"},
		"erkenntnistheorie": {"erkenntnistheorie", "epistemologie", "erkenntnis", "erkenntnislehre"},
		"bewusstsein":       {"bewusstsein", "bewußtsein", "seelenleben", "geistesleben", "seele"},
		"philosophie":       {"philosophie", "weltanschauung", "denken", "gedanke", "philosophisch"},
		"anthroposophie":    {"anthroposophie", "geisteswissenschaft", "übersinnlich", "geistige welt"},
		"ätherleib":         {"ätherleib", "lebensleib", "bildekräfteleib", "ätherischer leib", "aetherleib"},
		"astralleib":        {"astralleib", "empfindungsleib", "seelenleib", "astraler leib"},
		"ich":               {"ich", "ich-organisation", "geist-selbst", "ich-wesenheit"},
	}
}

// LoadSynonyms reads the synonym table from path. When the file is absent
// the default table is used and written back so operators can edit it; a
// failed write-back only degrades to the in-memory default.
func LoadSynonyms(path string) Synonyms {
	logger := common.Logger()
	data, err := os.ReadFile(path)
	if err == nil {
		var table Synonyms
		if err := json.Unmarshal(data, &table); err == nil && len(table) > 0 {
			logger.Info("search: synonyms loaded", "path", path, "concepts", len(table))
			return table
		}
		logger.Warn("search: synonym file unreadable, using defaults", "path", path, "error", err)
		return DefaultSynonyms()
	}
	table := DefaultSynonyms()
	if encoded, err := json.MarshalIndent(table, "", "  "); err == nil {
		if err := os.WriteFile(path, encoded, 0o644); err != nil {
			logger.Warn("search: could not write default synonyms", "path", path, "error", err)
		} else {
			logger.Info("search: default synonyms written", "path", path, "concepts", len(table))
		}
	}
	return table
}

// Expand turns a raw query into the set of equivalent lowercase surface
// forms, always including the lowercased query itself. Matching is
// deliberately bidirectional and coarse: if the query contains a surface
// form or a surface form contains the query, the whole concept expands.
// The result is sorted for deterministic iteration.
func (s Synonyms) Expand(query string) []string {
	queryLower := strings.ToLower(query)
	expanded := map[string]struct{}{queryLower: {}}
	for _, forms := range s {
		matched := false
		for _, form := range forms {
			formLower := strings.ToLower(form)
			if strings.Contains(queryLower, formLower) || strings.Contains(formLower, queryLower) {
				matched = true
				break
			}
		}
		if matched {
			for _, form := range forms {
				expanded[strings.ToLower(form)] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(expanded))
	for term := range expanded {
		out = append(out, term)
	}
	sort.Strings(out)
	return out
}
