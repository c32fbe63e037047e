// File path: internal/api/overview_handler.go
package api

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	chi "github.com/go-chi/chi/v5"

	"github.com/cjhueck/ga-suche/internal/cache"
	"github.com/cjhueck/ga-suche/internal/common"
	"github.com/cjhueck/ga-suche/internal/corpus"
)

// handleOverview serves the derived volume overview: the volume's lectures
// in order, each with its cached summary when one exists. Overviews are
// cached case-insensitively and rebuilt lazily after invalidation; the
// refresh flag forces a rebuild.
func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	gaNumber := strings.TrimSpace(chi.URLParam(r, "gaNumber"))
	if gaNumber == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("GA-Nummer erforderlich"))
		return
	}
	refresh := r.URL.Query().Get("refresh") == "true"
	if refresh {
		s.overviews.Invalidate(gaNumber)
	}

	if entry, ok := s.overviews.Get(gaNumber); ok {
		logger.Debug("api: overview cache hit", "volume", gaNumber)
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"overview":  entry,
			"fromCache": true,
		})
		return
	}

	entry, ok := s.buildOverview(r, gaNumber)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{
			"error":     fmt.Sprintf("Keine Vorträge für Band: %s", gaNumber),
			"available": s.corpus.SampleIDs("", 10),
		})
		return
	}
	s.overviews.Put(gaNumber, entry)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"overview":  entry,
		"fromCache": false,
	})
}

func (s *Server) buildOverview(r *http.Request, gaNumber string) (cache.OverviewEntry, bool) {
	entry := cache.OverviewEntry{GaNumber: gaNumber}

	if s.catalog != nil {
		if records, err := s.catalog.VolumeLectures(r.Context(), gaNumber); err == nil && len(records) > 0 {
			entry.GaNumber = records[0].GaNumber
			entry.GaTitle = records[0].GaTitle
			for _, rec := range records {
				entry.Lectures = append(entry.Lectures, s.overviewRow(rec.ID, rec.LectureNumber, rec.Title, rec.Date, rec.Location))
			}
			entry.LectureCount = len(entry.Lectures)
			return entry, true
		}
	}

	// Catalog unavailable: derive the volume membership from the corpus.
	var matched []*corpus.Lecture
	for _, lecture := range s.corpus.Lectures() {
		volume := lecture.GaNumber
		if volume == "" {
			volume = corpus.Volume(lecture.ID)
		}
		if strings.EqualFold(volume, gaNumber) {
			matched = append(matched, lecture)
		}
	}
	if len(matched) == 0 {
		return cache.OverviewEntry{}, false
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].LectureNumber < matched[j].LectureNumber
	})
	if matched[0].GaNumber != "" {
		entry.GaNumber = matched[0].GaNumber
	}
	entry.GaTitle = matched[0].GaTitle
	for _, lecture := range matched {
		entry.Lectures = append(entry.Lectures, s.overviewRow(lecture.ID, lecture.LectureNumber, lecture.Title, lecture.Date, lecture.Location))
	}
	entry.LectureCount = len(entry.Lectures)
	return entry, true
}

func (s *Server) overviewRow(id string, number int, title, date, location string) cache.LectureOverview {
	row := cache.LectureOverview{
		ID:            id,
		LectureNumber: number,
		Title:         title,
		Date:          date,
		Location:      location,
	}
	if summary, ok := s.summaries.Get(id); ok {
		row.Summary = summary.Summary
		row.HasSummary = true
	}
	return row
}
