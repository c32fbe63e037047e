// File path: cmd/ga-suche/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/cjhueck/ga-suche/internal/api"
	"github.com/cjhueck/ga-suche/internal/cache"
	"github.com/cjhueck/ga-suche/internal/catalog"
	"github.com/cjhueck/ga-suche/internal/common"
	"github.com/cjhueck/ga-suche/internal/corpus"
	"github.com/cjhueck/ga-suche/internal/llm"
	"github.com/cjhueck/ga-suche/internal/search"
)

func main() {
	logger := common.Logger()

	if err := godotenv.Load(); err != nil {
		logger.Warn("ga-suche: .env file not loaded", "error", err)
	} else {
		logger.Info("ga-suche: environment loaded from .env")
	}

	addr := flag.String("addr", ":3003", "listen address")
	dataDir := flag.String("data", defaultDataDir(), "directory holding corpus and cache files")
	catalogPath := flag.String("catalog", "", "path to the SQLite lecture catalog (default <data>/catalog.db)")
	flag.Parse()

	logger.Info("ga-suche: startup initiated", "addr", *addr, "data", *dataDir)

	// The chunk collection is the primary corpus source: without it the
	// process must not start serving.
	store, err := corpus.Load(*dataDir)
	if err != nil {
		logger.Error("ga-suche: corpus load failed", "error", err)
		fmt.Println("corpus error:", err)
		os.Exit(1)
	}

	synonyms := search.LoadSynonyms(filepath.Join(*dataDir, "synonyms.json"))
	engine := search.NewEngine(store.Chunks(), store.Lectures(), synonyms)

	storage, err := cache.NewStorage(*dataDir)
	if err != nil {
		logger.Warn("ga-suche: cache storage unavailable, caches are memory-only", "error", err)
		storage = nil
	}
	summaries := cache.LoadSummaryCache(storage)
	overviews := cache.LoadOverviewCache(storage)

	cat := openCatalog(*catalogPath, *dataDir, store)

	provider := llm.NewProvider()

	server := api.NewServer(api.Deps{
		Corpus:    store,
		Engine:    engine,
		Catalog:   cat,
		Provider:  provider,
		Summaries: summaries,
		Overviews: overviews,
	})

	logger.Info("ga-suche: server listening", "addr", *addr, "health", "/healthz")
	fmt.Printf("Serving on %s\n", *addr)
	if err := http.ListenAndServe(*addr, server); err != nil {
		logger.Error("ga-suche: server stopped", "error", err)
		fmt.Println("server stopped:", err)
	}
}

// openCatalog builds and seeds the lecture registry. Catalog failure is
// non-fatal: the API degrades to corpus-store listings.
func openCatalog(path, dataDir string, store *corpus.Store) *catalog.Store {
	logger := common.Logger()
	if strings.TrimSpace(path) == "" {
		path = filepath.Join(dataDir, "catalog.db")
	}
	cat, err := catalog.Open(path)
	if err != nil {
		logger.Warn("ga-suche: catalog unavailable", "path", path, "error", err)
		return nil
	}
	if err := cat.Seed(context.Background(), store.Lectures()); err != nil {
		logger.Warn("ga-suche: catalog seed failed", "error", err)
		cat.Close()
		return nil
	}
	return cat
}

func defaultDataDir() string {
	if env := strings.TrimSpace(os.Getenv("GA_SUCHE_DATA")); env != "" {
		return env
	}
	return "data"
}
