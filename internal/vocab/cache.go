// Package vocab expands category terms into broader-term hierarchies using
// the Getty AAT vocabulary service, with persistent memoization.
package vocab

import (
	"context"
	"sync"
)

// Cache memoizes the hierarchies fetched for a term. Entries are a pure
// memoization of an idempotent external fetch, so last-write-wins semantics
// are acceptable for every backend.
type Cache interface {
	Get(ctx context.Context, term string) ([][]string, bool, error)
	Put(ctx context.Context, term string, hierarchies [][]string) error
}

// MemCache is an in-memory Cache used in tests and one-shot runs.
type MemCache struct {
	mu      sync.Mutex
	entries map[string][][]string
}

func NewMemCache() *MemCache {
	return &MemCache{entries: make(map[string][][]string)}
}

func (c *MemCache) Get(_ context.Context, term string) ([][]string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	hs, ok := c.entries[term]
	if !ok {
		return nil, false, nil
	}
	return cloneHierarchies(hs), true, nil
}

func (c *MemCache) Put(_ context.Context, term string, hierarchies [][]string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[term] = cloneHierarchies(hierarchies)
	return nil
}

func cloneHierarchies(hs [][]string) [][]string {
	out := make([][]string, len(hs))
	for i, h := range hs {
		out[i] = append([]string(nil), h...)
	}
	return out
}
