// File path: internal/corpus/store.go
package corpus

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/cjhueck/ga-suche/internal/common"
)

var (
	chunkFilePattern   = regexp.MustCompile(`(?i)^steiner-search-(\d{3}[a-z]?)-(\d{3}[a-z]?).*\.json$`)
	lectureFilePattern = regexp.MustCompile(`(?i)^steiner-full-lectures-(\d{3}[a-z]?)-(\d{3}[a-z]?).*\.json$`)
)

// ErrNoChunkFiles is returned when the data directory holds no chunk files.
// Chunk data is the primary corpus source; without it the process must not
// start serving.
var ErrNoChunkFiles = errors.New("no steiner-search-*.json files found")

// Store holds the corpus loaded once at startup: the flat chunk list and the
// full lectures keyed by identity. Both are frozen after Load; concurrent
// readers need no locking.
type Store struct {
	chunks   []Chunk
	lectures map[string]*Lecture
	order    []string
	byUpper  map[string]string
}

type chunkFile struct {
	Chunks []Chunk `json:"chunks"`
}

type lectureFile struct {
	Lectures []Lecture `json:"lectures"`
}

// Load reads every chunk and lecture file in dir. A missing or empty chunk
// set is fatal; missing lecture files degrade the store to
// passage-search-only mode.
func Load(dir string) (*Store, error) {
	logger := common.Logger()
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read data dir: %w", err)
	}
	var chunkFiles, lectureFiles []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		switch {
		case chunkFilePattern.MatchString(name):
			chunkFiles = append(chunkFiles, name)
		case lectureFilePattern.MatchString(name):
			lectureFiles = append(lectureFiles, name)
		}
	}
	sort.Strings(chunkFiles)
	sort.Strings(lectureFiles)
	logger.Info("corpus: data files located", "chunk_files", len(chunkFiles), "lecture_files", len(lectureFiles))

	if len(chunkFiles) == 0 {
		return nil, ErrNoChunkFiles
	}

	s := &Store{
		lectures: make(map[string]*Lecture),
		byUpper:  make(map[string]string),
	}
	for _, name := range chunkFiles {
		var parsed chunkFile
		if err := readJSONFile(filepath.Join(dir, name), &parsed); err != nil {
			return nil, fmt.Errorf("load chunks from %s: %w", name, err)
		}
		s.chunks = append(s.chunks, parsed.Chunks...)
		logger.Info("corpus: chunks loaded", "file", name, "chunks", len(parsed.Chunks))
	}
	if len(s.chunks) == 0 {
		return nil, fmt.Errorf("chunk files present but empty: %w", ErrNoChunkFiles)
	}

	for _, name := range lectureFiles {
		var parsed lectureFile
		if err := readJSONFile(filepath.Join(dir, name), &parsed); err != nil {
			logger.Warn("corpus: lecture file skipped", "file", name, "error", err)
			continue
		}
		for i := range parsed.Lectures {
			lecture := parsed.Lectures[i]
			if lecture.ID == "" {
				continue
			}
			if _, exists := s.lectures[lecture.ID]; !exists {
				s.order = append(s.order, lecture.ID)
			}
			s.lectures[lecture.ID] = &lecture
			s.byUpper[strings.ToUpper(lecture.ID)] = lecture.ID
		}
		logger.Info("corpus: lectures loaded", "file", name, "lectures", len(parsed.Lectures))
	}
	if len(s.lectures) == 0 {
		logger.Warn("corpus: no full lectures available; fulltext search and summaries disabled")
	}
	logger.Info("corpus: ready", "chunks", len(s.chunks), "lectures", len(s.lectures))
	return s, nil
}

func readJSONFile(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// Chunks returns the full passage collection in source order.
func (s *Store) Chunks() []Chunk {
	return s.chunks
}

// Lectures yields every lecture in load order.
func (s *Store) Lectures() []*Lecture {
	out := make([]*Lecture, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.lectures[id])
	}
	return out
}

// Lecture resolves a lecture identity case-insensitively. The stored key
// keeps its original case; only the lookup is folded.
func (s *Store) Lecture(id string) (*Lecture, bool) {
	canonical, ok := s.byUpper[strings.ToUpper(strings.TrimSpace(id))]
	if !ok {
		return nil, false
	}
	return s.lectures[canonical], true
}

// LectureIDs returns all lecture identities in load order.
func (s *Store) LectureIDs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// SampleIDs returns up to limit lecture identities, optionally restricted to
// a volume prefix, for not-found responses.
func (s *Store) SampleIDs(volume string, limit int) []string {
	if limit <= 0 {
		limit = 10
	}
	prefix := strings.ToUpper(strings.TrimSpace(volume))
	var out []string
	for _, id := range s.order {
		if prefix != "" && !strings.HasPrefix(strings.ToUpper(id), prefix) {
			continue
		}
		out = append(out, id)
		if len(out) >= limit {
			break
		}
	}
	return out
}
