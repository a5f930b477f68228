package cache

import (
	"os"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/panbanda/tally/pkg/models"
)

// DefaultMemoryEntries bounds the memory tier when no size is configured.
const DefaultMemoryEntries = 4096

// Key identifies one version of a file without reading it.
type Key struct {
	Path    string
	Size    int64
	ModTime int64 // UnixNano
}

// KeyFor stats path and returns its cache key.
func KeyFor(path string) (Key, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Key{}, err
	}
	return Key{Path: path, Size: info.Size(), ModTime: info.ModTime().UnixNano()}, nil
}

// Memory is a bounded in-process cache of decoded reports.
// It is safe for concurrent use.
type Memory struct {
	entries *lru.Cache[Key, *models.Report]
}

// NewMemory creates a memory cache holding at most size reports.
func NewMemory(size int) (*Memory, error) {
	if size <= 0 {
		size = DefaultMemoryEntries
	}
	entries, err := lru.New[Key, *models.Report](size)
	if err != nil {
		return nil, err
	}
	return &Memory{entries: entries}, nil
}

// Get returns the report cached for key.
func (m *Memory) Get(key Key) (*models.Report, bool) {
	if m == nil {
		return nil, false
	}
	return m.entries.Get(key)
}

// Add caches r under key. Stale versions of the same path age out.
func (m *Memory) Add(key Key, r *models.Report) {
	if m == nil {
		return
	}
	m.entries.Add(key, r)
}

// Len returns the number of cached reports.
func (m *Memory) Len() int {
	if m == nil {
		return 0
	}
	return m.entries.Len()
}
