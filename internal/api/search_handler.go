// File path: internal/api/search_handler.go
package api

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/cjhueck/ga-suche/internal/common"
	"github.com/cjhueck/ga-suche/internal/search"
	"github.com/cjhueck/ga-suche/internal/summarize"
)

const (
	defaultHybridLimit   = 20
	defaultThematicLimit = 30
	thematicSourceLimit  = 10
)

type hybridSearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

// handleHybridSearch runs the keyword + semantic re-ranking pipeline for a
// single query.
func (s *Server) handleHybridSearch(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	var req hybridSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("query erforderlich"))
		return
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultHybridLimit
	}
	logger.Info("api: hybrid search", "query", req.Query, "limit", limit)

	keywordResults := s.engine.Keyword(req.Query)
	if len(keywordResults) == 0 {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"query":        req.Query,
			"results":      []search.Result{},
			"resultCount":  0,
			"totalMatches": 0,
			"searchMethod": "hybrid-keyword",
			"message":      "Keine Treffer gefunden",
		})
		return
	}
	ranked := s.engine.Rerank(keywordResults, req.Query)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"query":        req.Query,
		"results":      ranked,
		"resultCount":  len(ranked),
		"totalMatches": len(keywordResults),
		"searchMethod": "hybrid-keyword-semantic",
	})
}

type thematicSearchRequest struct {
	Query string `json:"query"`
	Depth string `json:"depth"`
	Limit int    `json:"limit"`
}

type thematicSource struct {
	ID           string   `json:"ID"`
	Index        string   `json:"index"`
	Title        string   `json:"title,omitempty"`
	FileName     string   `json:"fileName,omitempty"`
	Score        int      `json:"score"`
	MatchedTerms []string `json:"matchedTerms"`
}

// handleThematicSearch decomposes the question into terms, merges per-term
// rankings, re-ranks semantically and composes an LLM analysis with linked
// citations over the top passages.
func (s *Server) handleThematicSearch(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	var req thematicSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("query erforderlich"))
		return
	}
	depth := req.Depth
	if depth == "" {
		depth = "allgemein"
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultThematicLimit
	}
	logger.Info("api: thematic search", "query", req.Query, "depth", depth, "limit", limit)

	keywordResults := s.engine.Thematic(req.Query)
	if len(keywordResults) == 0 {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"query":   req.Query,
			"content": "Keine relevanten Textstellen gefunden.",
			"sources": []thematicSource{},
		})
		return
	}

	ranked := s.engine.Rerank(keywordResults, req.Query)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	analysis := summarize.Analysis(r.Context(), s.provider, req.Query, ranked, depth)

	sources := make([]thematicSource, 0, thematicSourceLimit)
	for _, res := range ranked {
		if len(sources) >= thematicSourceLimit {
			break
		}
		sources = append(sources, thematicSource{
			ID:           res.ID,
			Index:        res.Index,
			Title:        res.Title,
			FileName:     res.FileName,
			Score:        int(math.Round(res.FinalScore)),
			MatchedTerms: res.MatchedTerms,
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"query":        req.Query,
		"content":      analysis,
		"sources":      sources,
		"searchMethod": "hybrid-thematic-unified",
		"totalMatches": len(keywordResults),
		"llmUsed":      s.provider != nil,
	})
}

type fulltextSearchRequest struct {
	Word1     string `json:"word1"`
	Word2     string `json:"word2"`
	Proximity *int   `json:"proximity"`
}

// handleFulltextSearch scans lecture paragraph sequences for one or two
// literal words, optionally within a bounded paragraph window.
func (s *Server) handleFulltextSearch(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	var req fulltextSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if strings.TrimSpace(req.Word1) == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("mindestens ein Suchwort erforderlich"))
		return
	}
	if req.Proximity != nil && *req.Proximity < 0 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("proximity muss >= 0 sein"))
		return
	}
	logger.Info("api: fulltext search", "word1", req.Word1, "word2", req.Word2)

	var proximity *int
	if strings.TrimSpace(req.Word2) != "" {
		proximity = req.Proximity
	}
	results := s.engine.Fulltext(strings.TrimSpace(req.Word1), strings.TrimSpace(req.Word2), proximity)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"query": map[string]interface{}{
			"word1":     req.Word1,
			"word2":     req.Word2,
			"proximity": req.Proximity,
		},
		"results":     results,
		"resultCount": len(results),
	})
}
