// File path: internal/api/server.go
package api

import (
	"encoding/json"
	"net/http"
	"time"

	chi "github.com/go-chi/chi/v5"

	"github.com/cjhueck/ga-suche/internal/cache"
	"github.com/cjhueck/ga-suche/internal/catalog"
	"github.com/cjhueck/ga-suche/internal/common"
	"github.com/cjhueck/ga-suche/internal/corpus"
	"github.com/cjhueck/ga-suche/internal/llm"
	"github.com/cjhueck/ga-suche/internal/search"
)

// Server wires the search engine, caches and collaborators to the HTTP
// surface. All state is constructed once at startup and shared by
// reference; the corpus is immutable, the caches synchronize internally.
type Server struct {
	router    chi.Router
	corpus    *corpus.Store
	engine    *search.Engine
	catalog   *catalog.Store
	provider  llm.Provider
	summaries *cache.SummaryCache
	overviews *cache.OverviewCache
}

// Deps carries the collaborators the server needs. Catalog and Provider
// may be nil: handlers degrade to corpus listings and deterministic
// fallback generation.
type Deps struct {
	Corpus    *corpus.Store
	Engine    *search.Engine
	Catalog   *catalog.Store
	Provider  llm.Provider
	Summaries *cache.SummaryCache
	Overviews *cache.OverviewCache
}

func NewServer(deps Deps) *Server {
	srv := &Server{
		router:    chi.NewRouter(),
		corpus:    deps.Corpus,
		engine:    deps.Engine,
		catalog:   deps.Catalog,
		provider:  deps.Provider,
		summaries: deps.Summaries,
		overviews: deps.Overviews,
	}
	srv.routes()
	common.Logger().Info("api: server ready")
	return srv
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	logger := common.Logger()
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug("request", "method", r.Method, "path", r.URL.Path, "dur", time.Since(start), "remote", r.RemoteAddr)
		})
	})

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	s.router.Get("/debug/status", s.handleStatus)
	s.router.Post("/api/hybrid-search", s.handleHybridSearch)
	s.router.Post("/api/thematic-hybrid-search", s.handleThematicSearch)
	s.router.Post("/api/fulltext-search", s.handleFulltextSearch)
	s.router.Post("/api/summarize-lecture", s.handleSummarizeLecture)
	s.router.Get("/api/full-lecture/{lectureId}", s.handleFullLecture)
	s.router.Get("/api/full-lecture/{gaNumber}/{lectureNum}", s.handleFullLectureByNumber)
	s.router.Get("/api/lectures/list", s.handleLectureList)
	s.router.Get("/api/ga-overview/{gaNumber}", s.handleOverview)
	s.router.Get("/api/logs", s.handleLogs)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	catalogued := 0
	if s.catalog != nil {
		if count, err := s.catalog.Count(r.Context()); err == nil {
			catalogued = count
		}
	}
	providerName := "none"
	if s.provider != nil {
		providerName = s.provider.Name()
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"server":             "ga-suche",
		"status":             "running",
		"chunksLoaded":       s.engine.ChunkCount(),
		"lecturesLoaded":     s.engine.LectureCount(),
		"synonymGroups":      s.engine.SynonymCount(),
		"summariesCached":    s.summaries.Len(),
		"overviewsCached":    s.overviews.Len(),
		"lecturesCatalogued": catalogued,
		"llmConfigured":      s.provider != nil,
		"llmProvider":        providerName,
	})
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	entries := common.LogEntries()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(entries),
		"entries": entries,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	logger := common.Logger()
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", err)
	} else {
		logger.Warn("request failed", "status", status, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
