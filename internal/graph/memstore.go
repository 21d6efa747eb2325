package graph

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/perfhint/bigo/internal/analyze"
)

// Compile-time assertion: *MemStore satisfies Store.
var _ Store = (*MemStore)(nil)

// MemStore implements Store using Go maps. Thread-safe via sync.RWMutex.
type MemStore struct {
	mu      sync.RWMutex
	files   map[string]analyze.FileNode
	methods map[string]MethodRecord // key: "filePath:name"
	order   []string                // insertion order of method keys
	calls   []CallEdge
}

// NewMemStore returns an initialized MemStore ready for use.
func NewMemStore() *MemStore {
	return &MemStore{
		files:   make(map[string]analyze.FileNode),
		methods: make(map[string]MethodRecord),
	}
}

// methodKey builds the composite lookup key for a method.
func methodKey(filePath, name string) string {
	return filePath + ":" + name
}

// InitSchema is a no-op for the in-memory store.
func (m *MemStore) InitSchema(_ context.Context) error {
	return nil
}

// AddFile stores a file node keyed by its path.
func (m *MemStore) AddFile(_ context.Context, node analyze.FileNode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[node.Path] = node
	return nil
}

// AddMethod stores a method record keyed by "filePath:name".
func (m *MemStore) AddMethod(_ context.Context, rec MethodRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := methodKey(rec.FilePath, rec.Method.Name)
	if _, exists := m.methods[key]; !exists {
		m.order = append(m.order, key)
	}
	m.methods[key] = rec
	return nil
}

// AddCall appends a call edge.
func (m *MemStore) AddCall(_ context.Context, edge CallEdge) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, edge)
	return nil
}

// GetMethod returns the record for the given file path and method name, or
// nil if not found.
func (m *MemStore) GetMethod(_ context.Context, filePath, name string) (*MethodRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.methods[methodKey(filePath, name)]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

// QueryMethods returns methods whose name contains query (case-insensitive)
// and whose time notation is at least as severe as minNotation, up to limit
// results. A limit <= 0 returns all matches.
func (m *MemStore) QueryMethods(_ context.Context, query string, minNotation analyze.Notation, limit int) ([]MethodRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	lowerQuery := strings.ToLower(query)
	minRank := minNotation.Rank()
	var results []MethodRecord
	for _, key := range m.order {
		rec := m.methods[key]
		if query != "" && !strings.Contains(strings.ToLower(rec.Method.Name), lowerQuery) {
			continue
		}
		if rec.Method.Time.Notation.Rank() < minRank {
			continue
		}
		results = append(results, rec)
		if limit > 0 && len(results) >= limit {
			break
		}
	}
	return results, nil
}

// Hotspots returns methods ordered by severity: worst time notation first,
// then lowest confidence, then file path and name for determinism.
func (m *MemStore) Hotspots(_ context.Context, limit int) ([]MethodRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	all := make([]MethodRecord, 0, len(m.methods))
	for _, key := range m.order {
		all = append(all, m.methods[key])
	}
	sort.SliceStable(all, func(i, j int) bool {
		ri, rj := all[i].Method.Time.Notation.Rank(), all[j].Method.Time.Notation.Rank()
		if ri != rj {
			return ri > rj
		}
		ci, cj := all[i].Method.Time.Confidence, all[j].Method.Time.Confidence
		if ci != cj {
			return ci < cj
		}
		if all[i].FilePath != all[j].FilePath {
			return all[i].FilePath < all[j].FilePath
		}
		return all[i].Method.Name < all[j].Method.Name
	})
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// Callees returns the direct callees recorded for a method.
func (m *MemStore) Callees(_ context.Context, filePath, caller string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []string
	for _, e := range m.calls {
		if e.FilePath == filePath && e.Caller == caller {
			out = append(out, e.Callee)
		}
	}
	return out, nil
}

// Stats returns counts of files, methods, and call edges.
func (m *MemStore) Stats(_ context.Context) (*analyze.Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return &analyze.Stats{
		FileCount:   len(m.files),
		MethodCount: len(m.methods),
		CallCount:   len(m.calls),
	}, nil
}

// Close is a no-op for the in-memory store.
func (m *MemStore) Close() error {
	return nil
}
