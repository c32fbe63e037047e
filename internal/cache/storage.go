// File path: internal/cache/storage.go
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cjhueck/ga-suche/internal/common"
)

// Storage persists named JSON documents in a directory. Writes serialize
// fully in memory and go through a temp file plus rename, so a concurrent
// reader never observes a half-written file.
type Storage struct {
	dir string
}

// NewStorage ensures dir exists and returns a storage handle.
func NewStorage(dir string) (*Storage, error) {
	if dir == "" {
		return nil, errors.New("storage dir required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &Storage{dir: dir}, nil
}

// LoadJSON reads the named document into v. The boolean reports whether the
// document exists; a missing file is not an error.
func (s *Storage) LoadJSON(name string, v interface{}) (bool, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", name, err)
	}
	return true, nil
}

// SaveJSON writes v as the named document and reports success. Failures are
// logged, not fatal: callers keep their in-memory state regardless.
func (s *Storage) SaveJSON(name string, v interface{}) bool {
	logger := common.Logger()
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		logger.Error("cache: encode failed", "name", name, "error", err)
		return false
	}
	target := filepath.Join(s.dir, name)
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		logger.Error("cache: temp file failed", "name", name, "error", err)
		return false
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		logger.Error("cache: write failed", "name", name, "error", err)
		return false
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		logger.Error("cache: close failed", "name", name, "error", err)
		return false
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		logger.Error("cache: rename failed", "name", name, "error", err)
		return false
	}
	logger.Debug("cache: saved", "name", name, "bytes", len(data))
	return true
}
