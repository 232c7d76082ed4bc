// Package registry provides a global registry of terrain generators.
// Generators register themselves in init() functions, allowing the world
// and the CLI to pick one by name without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-terrain/internal/config"
	"github.com/vovakirdan/tui-terrain/internal/terrain"
)

// Params is everything a generator factory may use to build a generator.
type Params struct {
	Width   int
	Height  int
	Blocks  *terrain.Registry
	Terrain config.TerrainConfig
}

// Factory builds a generator for a grid of the given size.
type Factory func(p Params) (terrain.Generator, error)

// GeneratorInfo contains metadata about a registered generator.
type GeneratorInfo struct {
	Name        string
	Description string
}

var (
	factories    = make(map[string]Factory)
	descriptions = make(map[string]string)
	mu           sync.RWMutex
)

// Register adds a generator factory to the registry.
// Typically called from a generator package's init() function.
// Panics if a generator with the same name is already registered.
func Register(name, description string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("registry: generator %q already registered", name))
	}

	factories[name] = f
	descriptions[name] = description
}

// List returns information about all registered generators, sorted by name.
func List() []GeneratorInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GeneratorInfo, 0, len(factories))
	for name := range factories {
		result = append(result, GeneratorInfo{
			Name:        name,
			Description: descriptions[name],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Create builds a generator by name.
// Returns an error if the name is not registered or the factory fails.
func Create(name string, p Params) (terrain.Generator, error) {
	mu.RLock()
	f, ok := factories[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown generator %q", name)
	}

	gen, err := f(p)
	if err != nil {
		return nil, fmt.Errorf("registry: generator %q: %w", name, err)
	}
	return gen, nil
}

// Exists checks if a generator with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[name]
	return ok
}
