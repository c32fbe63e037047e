// File path: internal/catalog/store.go
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/cjhueck/ga-suche/internal/common"
	"github.com/cjhueck/ga-suche/internal/corpus"
)

// Store is the SQLite lecture registry. It is a derived index over the
// corpus, seeded at startup and used for bounded identity samples, ordered
// per-volume listings and counts; the corpus store stays the source of
// truth.
type Store struct {
	db *sqlx.DB
}

// LectureRecord is one catalog row.
type LectureRecord struct {
	ID            string `db:"id" json:"ID"`
	GaNumber      string `db:"ga_number" json:"gaNumber"`
	GaTitle       string `db:"ga_title" json:"gaTitle,omitempty"`
	Title         string `db:"title" json:"title,omitempty"`
	FileName      string `db:"file_name" json:"fileName,omitempty"`
	Location      string `db:"location" json:"location,omitempty"`
	Date          string `db:"date" json:"date,omitempty"`
	LectureNumber int    `db:"lecture_number" json:"lectureNumber,omitempty"`
}

var schemaStatements = []string{
	`PRAGMA journal_mode = WAL;`,
	`CREATE TABLE IF NOT EXISTS lectures (
                id TEXT PRIMARY KEY COLLATE NOCASE,
                ga_number TEXT NOT NULL COLLATE NOCASE,
                ga_title TEXT NOT NULL DEFAULT '',
                title TEXT NOT NULL DEFAULT '',
                file_name TEXT NOT NULL DEFAULT '',
                location TEXT NOT NULL DEFAULT '',
                date TEXT NOT NULL DEFAULT '',
                lecture_number INTEGER NOT NULL DEFAULT 0
        );`,
	`CREATE INDEX IF NOT EXISTS idx_lectures_volume ON lectures(ga_number, lecture_number);`,
}

// Open constructs a Store backed by the SQLite database at path, migrating
// the schema on first use.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("catalog path required")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve catalog path: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", abs)
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping catalog: %w", err)
	}
	store := &Store{db: db}
	if err := store.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// Close releases the underlying database resources.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	tx, err := s.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	for i, stmt := range schemaStatements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			tx.Rollback()
			return fmt.Errorf("execute schema statement %d: %w", i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration: %w", err)
	}
	return nil
}

// Seed upserts every lecture's metadata row. Re-seeding with the same
// corpus is idempotent.
func (s *Store) Seed(ctx context.Context, lectures []*corpus.Lecture) error {
	if s == nil || s.db == nil {
		return errors.New("catalog not initialised")
	}
	tx, err := s.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	const upsert = `INSERT INTO lectures
                (id, ga_number, ga_title, title, file_name, location, date, lecture_number)
                VALUES (?, ?, ?, ?, ?, ?, ?, ?)
                ON CONFLICT(id) DO UPDATE SET
                ga_number=excluded.ga_number, ga_title=excluded.ga_title,
                title=excluded.title, file_name=excluded.file_name,
                location=excluded.location, date=excluded.date,
                lecture_number=excluded.lecture_number;`
	for _, lecture := range lectures {
		gaNumber := lecture.GaNumber
		if gaNumber == "" {
			gaNumber = corpus.Volume(lecture.ID)
		}
		if _, err := tx.ExecContext(ctx, upsert,
			lecture.ID, gaNumber, lecture.GaTitle, lecture.Title,
			lecture.FileName, lecture.Location, lecture.Date, lecture.LectureNumber,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("seed lecture %s: %w", lecture.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	common.Logger().Info("catalog: seeded", "lectures", len(lectures))
	return nil
}

// Count returns the number of catalogued lectures.
func (s *Store) Count(ctx context.Context) (int, error) {
	if s == nil || s.db == nil {
		return 0, errors.New("catalog not initialised")
	}
	var count int
	if err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM lectures`); err != nil {
		return 0, fmt.Errorf("count lectures: %w", err)
	}
	return count, nil
}

// SampleIDs returns up to limit lecture identities, optionally restricted
// to one volume. Matching is case-insensitive via the NOCASE collation.
func (s *Store) SampleIDs(ctx context.Context, volume string, limit int) ([]string, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("catalog not initialised")
	}
	if limit <= 0 {
		limit = 10
	}
	var ids []string
	var err error
	if strings.TrimSpace(volume) == "" {
		err = s.db.SelectContext(ctx, &ids,
			`SELECT id FROM lectures ORDER BY ga_number, lecture_number, id LIMIT ?`, limit)
	} else {
		err = s.db.SelectContext(ctx, &ids,
			`SELECT id FROM lectures WHERE ga_number = ? ORDER BY lecture_number, id LIMIT ?`,
			strings.TrimSpace(volume), limit)
	}
	if err != nil {
		return nil, fmt.Errorf("sample ids: %w", err)
	}
	return ids, nil
}

// VolumeLectures returns every catalogued lecture of one volume ordered by
// lecture number.
func (s *Store) VolumeLectures(ctx context.Context, gaNumber string) ([]LectureRecord, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("catalog not initialised")
	}
	var records []LectureRecord
	err := s.db.SelectContext(ctx, &records,
		`SELECT id, ga_number, ga_title, title, file_name, location, date, lecture_number
                 FROM lectures WHERE ga_number = ? ORDER BY lecture_number, id`,
		strings.TrimSpace(gaNumber))
	if err != nil {
		return nil, fmt.Errorf("volume lectures: %w", err)
	}
	return records, nil
}
