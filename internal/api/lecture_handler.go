// File path: internal/api/lecture_handler.go
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	chi "github.com/go-chi/chi/v5"

	"github.com/cjhueck/ga-suche/internal/common"
	"github.com/cjhueck/ga-suche/internal/corpus"
	"github.com/cjhueck/ga-suche/internal/summarize"
)

type summarizeRequest struct {
	LectureID       string `json:"lectureId"`
	ForceRegenerate bool   `json:"forceRegenerate"`
}

// handleSummarizeLecture serves a lecture summary cache-first. A fresh
// summary is persisted and invalidates the volume overview; a failed
// persist still leaves the in-memory entry in place.
func (s *Server) handleSummarizeLecture(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	var req summarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if strings.TrimSpace(req.LectureID) == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("lecture ID erforderlich"))
		return
	}

	lecture, found := s.corpus.Lecture(req.LectureID)
	lectureID := req.LectureID
	paragraphCount := 0
	if found {
		lectureID = lecture.ID
		paragraphCount = len(lecture.Paragraphs)
	}

	if !req.ForceRegenerate {
		if entry, ok := s.summaries.Get(lectureID); ok {
			logger.Debug("api: summary cache hit", "lecture", lectureID)
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"lectureId":      lectureID,
				"summary":        entry.Summary,
				"headings":       entry.Headings,
				"fromCache":      true,
				"paragraphCount": paragraphCount,
			})
			return
		}
	}

	if !found {
		s.writeLectureNotFound(w, r.Context(), req.LectureID, "")
		return
	}

	logger.Info("api: generating summary", "lecture", lectureID, "force", req.ForceRegenerate)
	entry := summarize.LectureSummary(r.Context(), s.provider, lecture)
	saved := s.summaries.Put(lectureID, entry)
	s.overviews.Invalidate(lectureID)
	if !saved {
		logger.Warn("api: summary kept in memory only", "lecture", lectureID)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"lectureId":      lectureID,
		"summary":        entry.Summary,
		"headings":       entry.Headings,
		"fromCache":      false,
		"paragraphCount": paragraphCount,
		"saved":          saved,
	})
}

// handleFullLecture resolves a lecture by its full identity (no slash, e.g.
// a volume-only identity) case-insensitively.
func (s *Server) handleFullLecture(w http.ResponseWriter, r *http.Request) {
	lectureID := chi.URLParam(r, "lectureId")
	s.serveLecture(w, r, lectureID, "")
}

// handleFullLectureByNumber resolves the composite GA###/N identity.
func (s *Server) handleFullLectureByNumber(w http.ResponseWriter, r *http.Request) {
	gaNumber := chi.URLParam(r, "gaNumber")
	lectureNum := chi.URLParam(r, "lectureNum")
	s.serveLecture(w, r, gaNumber+"/"+lectureNum, gaNumber)
}

func (s *Server) serveLecture(w http.ResponseWriter, r *http.Request, lectureID, volume string) {
	logger := common.Logger()
	lecture, found := s.corpus.Lecture(lectureID)
	if !found {
		logger.Warn("api: lecture not found", "lecture", lectureID)
		s.writeLectureNotFound(w, r.Context(), lectureID, volume)
		return
	}
	hasIndices := false
	for _, para := range lecture.Paragraphs {
		if para.Index != "" {
			hasIndices = true
			break
		}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"lecture":        lecture,
		"paragraphCount": len(lecture.Paragraphs),
		"hasIndices":     hasIndices,
	})
}

// writeLectureNotFound reports an unknown identity together with a bounded
// sample of valid ones, preferring the catalog's ordered sample.
func (s *Server) writeLectureNotFound(w http.ResponseWriter, ctx context.Context, lectureID, volume string) {
	var available []string
	if s.catalog != nil {
		if ids, err := s.catalog.SampleIDs(ctx, volume, 10); err == nil {
			available = ids
		}
	}
	if available == nil {
		available = s.corpus.SampleIDs(volume, 10)
	}
	writeJSON(w, http.StatusNotFound, map[string]interface{}{
		"error":     fmt.Sprintf("Vortrag nicht gefunden: %s", lectureID),
		"available": available,
	})
}

// handleLectureList enumerates loaded lecture identities.
func (s *Server) handleLectureList(w http.ResponseWriter, r *http.Request) {
	ids := s.corpus.LectureIDs()
	var sample *corpus.Lecture
	if lectures := s.corpus.Lectures(); len(lectures) > 0 {
		sample = lectures[0]
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(ids),
		"lectures": ids,
		"sample":   sample,
	})
}
