// Package data holds the in-memory data collections consumed by diagnostics
// and plot layers, and loads them from the datasets section of a
// configuration.
package data

import (
	"fmt"
	"sort"
)

// Collections is a set of named data collections, each mapping variable
// names to value series. Collections are populated during the load phase and
// must be treated as read-only afterwards; concurrent readers are safe once
// loading is complete.
type Collections struct {
	groups map[string]map[string][]float64
}

// New returns an empty Collections.
func New() *Collections {
	return &Collections{groups: make(map[string]map[string][]float64)}
}

// Add registers a named collection. Load phase only; replaces any collection
// already stored under name.
func (c *Collections) Add(name string, variables map[string][]float64) {
	c.groups[name] = variables
}

// Names returns the collection names in lexical order.
func (c *Collections) Names() []string {
	out := make([]string, 0, len(c.groups))
	for name := range c.groups {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Has reports whether a collection is present.
func (c *Collections) Has(name string) bool {
	_, ok := c.groups[name]
	return ok
}

// Variable returns the series stored for variable in collection.
func (c *Collections) Variable(collection, variable string) ([]float64, error) {
	group, ok := c.groups[collection]
	if !ok {
		return nil, fmt.Errorf("no data collection named %q", collection)
	}
	series, ok := group[variable]
	if !ok {
		return nil, fmt.Errorf("collection %q has no variable %q", collection, variable)
	}
	return series, nil
}
