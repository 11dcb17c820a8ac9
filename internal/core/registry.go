package core

import (
	"fmt"
	"sort"
	"sync"
)

// Layout is a named column configuration over the shared row store.
type Layout struct {
	Key      string  // URL key: "catalog"
	Label    string  // Display name: "Product Catalog"
	Schema   *Schema // Validated columns
	PageSize int     // Rows per page; 0 uses the service default
}

var (
	layouts   = make(map[string]Layout)
	layoutsMu sync.RWMutex

	predicates = map[FilterKind]Predicate{
		FilterText:   TextPrefix,
		FilterFuzzy:  Fuzzy,
		FilterNumber: GreaterOrEqual,
		FilterRange:  Between,
		FilterSelect: Includes,
		FilterSlider: Slider,
		FilterDate:   DateBetween,
	}
	predicatesMu sync.RWMutex
)

// Register adds a layout to the registry.
// Panics if the key is empty, already registered, or the schema is nil.
func Register(l Layout) {
	layoutsMu.Lock()
	defer layoutsMu.Unlock()

	if l.Key == "" {
		panic("layout key is empty")
	}
	if l.Schema == nil {
		panic(fmt.Sprintf("layout %s has no schema", l.Key))
	}
	if _, exists := layouts[l.Key]; exists {
		panic(fmt.Sprintf("layout already registered: %s", l.Key))
	}
	if l.Label == "" {
		l.Label = l.Key
	}

	layouts[l.Key] = l
}

// Get returns a layout by key.
func Get(key string) (Layout, bool) {
	layoutsMu.RLock()
	defer layoutsMu.RUnlock()

	l, ok := layouts[key]
	return l, ok
}

// All returns every registered layout sorted by key.
func All() []Layout {
	layoutsMu.RLock()
	defer layoutsMu.RUnlock()

	result := make([]Layout, 0, len(layouts))
	for _, l := range layouts {
		result = append(result, l)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Key < result[j].Key
	})

	return result
}

// LayoutCount returns the number of registered layouts.
func LayoutCount() int {
	layoutsMu.RLock()
	defer layoutsMu.RUnlock()
	return len(layouts)
}

// RegisterPredicate installs or replaces the predicate for a filter kind.
func RegisterPredicate(kind FilterKind, p Predicate) {
	if kind == FilterNone || !kind.valid() {
		panic(fmt.Sprintf("cannot register predicate for %s", kind))
	}
	predicatesMu.Lock()
	defer predicatesMu.Unlock()
	predicates[kind] = p
}

// PredicateFor returns the predicate for a filter kind.
func PredicateFor(kind FilterKind) (Predicate, bool) {
	predicatesMu.RLock()
	defer predicatesMu.RUnlock()
	p, ok := predicates[kind]
	return p, ok
}
