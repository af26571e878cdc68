// Package graph holds the build's module graph: every module the host
// bundler resolved, keyed by location.
package graph

import (
	"sort"
	"sync"
)

// Graph is a location to entry lookup. Lookups are safe for concurrent use
// with Put.
type Graph struct {
	mux     sync.RWMutex
	entries map[string]*Entry
}

// New creates a graph holding entries.
func New(entries ...*Entry) *Graph {
	ret := &Graph{entries: make(map[string]*Entry, len(entries))}
	for _, entry := range entries {
		ret.entries[entry.Path] = entry
	}
	return ret
}

// Put adds or replaces an entry.
func (g *Graph) Put(entry *Entry) {
	g.mux.Lock()
	defer g.mux.Unlock()
	g.entries[entry.Path] = entry
}

// Lookup returns the entry at location.
func (g *Graph) Lookup(location string) (*Entry, bool) {
	g.mux.RLock()
	defer g.mux.RUnlock()
	entry, ok := g.entries[Key(location)]
	return entry, ok
}

// Paths returns the sorted entry locations.
func (g *Graph) Paths() []string {
	g.mux.RLock()
	defer g.mux.RUnlock()
	ret := make([]string, 0, len(g.entries))
	for p := range g.entries {
		ret = append(ret, p)
	}
	sort.Strings(ret)
	return ret
}

// Len returns the number of entries.
func (g *Graph) Len() int {
	g.mux.RLock()
	defer g.mux.RUnlock()
	return len(g.entries)
}
