package vocab

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// FileCache persists the term cache as a single JSON object mapping
// lower-cased terms to arrays of hierarchy arrays. The file is read fully at
// construction and rewritten atomically (write-then-rename) on every Put, so
// a crash mid-write never leaves a truncated cache behind.
type FileCache struct {
	mu      sync.Mutex
	path    string
	entries map[string][][]string
}

func NewFileCache(path string) (*FileCache, error) {
	c := &FileCache{path: path, entries: make(map[string][][]string)}
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return c, nil
		}
		return nil, fmt.Errorf("read taxonomy cache %s: %w", path, err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &c.entries); err != nil {
			return nil, fmt.Errorf("parse taxonomy cache %s: %w", path, err)
		}
	}
	return c, nil
}

func (c *FileCache) Get(_ context.Context, term string) ([][]string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	hs, ok := c.entries[term]
	if !ok {
		return nil, false, nil
	}
	return cloneHierarchies(hs), true, nil
}

func (c *FileCache) Put(_ context.Context, term string, hierarchies [][]string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[term] = cloneHierarchies(hierarchies)
	return c.flushLocked()
}

func (c *FileCache) flushLocked() error {
	raw, err := json.Marshal(c.entries)
	if err != nil {
		return fmt.Errorf("encode taxonomy cache: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(c.path), ".aat-*.json")
	if err != nil {
		return fmt.Errorf("create taxonomy cache temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write taxonomy cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close taxonomy cache temp file: %w", err)
	}
	if err := os.Rename(tmpName, c.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace taxonomy cache: %w", err)
	}
	return nil
}
