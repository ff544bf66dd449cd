// Package registry provides a global registry of rule variants.
// Variants register themselves in init() functions, allowing the platform
// to discover and set up games without hardcoded presets.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownVariant is returned by Get for IDs that were never registered.
var ErrUnknownVariant = errors.New("unknown variant")

// Variant describes the initial setup of a game: the board radius and how
// many balls of each color start in the table pile.
type Variant struct {
	ID     string
	Title  string
	Radius int
	White  int
	Grey   int
	Black  int
}

// Balls returns the total number of balls in the variant.
func (v Variant) Balls() int {
	return v.White + v.Grey + v.Black
}

var (
	variants = make(map[string]Variant)
	mu       sync.RWMutex
)

// Register adds a variant to the registry.
// Typically called from an init() function.
// Panics if a variant with the same ID is already registered.
func Register(v Variant) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := variants[v.ID]; exists {
		panic(fmt.Sprintf("registry: variant %q already registered", v.ID))
	}

	variants[v.ID] = v
}

// List returns all registered variants, sorted by ID.
func List() []Variant {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Variant, 0, len(variants))
	for _, v := range variants {
		result = append(result, v)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Get returns the variant registered under id.
// Returns an error if the variant ID is not registered.
func Get(id string) (Variant, error) {
	mu.RLock()
	defer mu.RUnlock()

	v, ok := variants[id]
	if !ok {
		return Variant{}, fmt.Errorf("registry: %w %q", ErrUnknownVariant, id)
	}

	return v, nil
}

// Exists checks if a variant with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := variants[id]
	return ok
}
