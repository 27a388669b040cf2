// Package route keeps named paths so handlers can link to each other.
package route

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var ErrNotFound = errors.New("route not found")

type Route struct {
	Name    string
	Methods []string
	Path    string
}

// Table is a registry of named routes, safe for concurrent use.
type Table struct {
	mu     sync.RWMutex
	routes map[string]Route
}

func NewTable() *Table {
	return &Table{routes: map[string]Route{}}
}

func (t *Table) Add(name, path string, methods ...string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.routes[name] = Route{Name: name, Methods: methods, Path: path}
}

func (t *Table) Get(name string) (Route, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	r, ok := t.routes[name]
	return r, ok
}

// Path returns the path registered under name.
func (t *Table) Path(name string) (string, error) {
	r, ok := t.Get(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return r.Path, nil
}

// All returns the routes sorted by name.
func (t *Table) All() []Route {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Route, 0, len(t.routes))
	for _, r := range t.routes {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
