package scenario

import (
	"fmt"
	"sort"
	"sync"
)

// Info contains metadata about a scenario.
type Info struct {
	ID          string
	Name        string
	Description string
	Source      string // "builtin" or the file path
}

var (
	builtins = make(map[string]Scenario)
	mu       sync.RWMutex
)

// Register adds a built-in scenario.
// Typically called from an init() function.
// Panics if a scenario with the same ID is already registered or the
// scenario is invalid.
func Register(s Scenario) {
	mu.Lock()
	defer mu.Unlock()

	if err := s.Validate(); err != nil {
		panic(fmt.Sprintf("scenario: register: %v", err))
	}
	if _, exists := builtins[s.ID]; exists {
		panic(fmt.Sprintf("scenario: %q already registered", s.ID))
	}
	builtins[s.ID] = s
}

// List returns information about all built-in scenarios, sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(builtins))
	for _, s := range builtins {
		result = append(result, s.Info())
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Get returns a built-in scenario by its ID.
func Get(id string) (Scenario, error) {
	mu.RLock()
	defer mu.RUnlock()

	s, ok := builtins[id]
	if !ok {
		return Scenario{}, fmt.Errorf("scenario: unknown scenario %q", id)
	}
	return s, nil
}

// Exists checks if a built-in scenario with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := builtins[id]
	return ok
}

// Info returns the scenario's listing metadata.
func (s Scenario) Info() Info {
	source := "builtin"
	if s.FilePath != "" {
		source = s.FilePath
	}
	return Info{ID: s.ID, Name: s.Name, Description: s.Description, Source: source}
}

// Lookup finds a scenario by ID, checking built-ins before the files in
// dir. An empty dir only searches built-ins.
func Lookup(id, dir string) (Scenario, error) {
	if s, err := Get(id); err == nil {
		return s, nil
	}
	if dir == "" {
		return Scenario{}, fmt.Errorf("scenario: unknown scenario %q", id)
	}
	return NewLoader(dir).LoadByID(id)
}

// All returns the built-in scenarios sorted by ID followed by the files in
// dir. File scenarios that reuse a built-in ID are skipped.
func All(dir string) ([]Scenario, error) {
	infos := List()
	result := make([]Scenario, 0, len(infos))
	for _, info := range infos {
		s, err := Get(info.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if dir == "" {
		return result, nil
	}

	loaded, err := NewLoader(dir).LoadAll()
	if err != nil {
		return result, err
	}
	for _, s := range loaded {
		if Exists(s.ID) {
			continue
		}
		result = append(result, s)
	}
	return result, nil
}

// Catalog is All reduced to listing metadata.
func Catalog(dir string) ([]Info, error) {
	all, err := All(dir)
	infos := make([]Info, len(all))
	for i, s := range all {
		infos[i] = s.Info()
	}
	return infos, err
}

// Index returns the position of id in scenarios, or -1.
func Index(scenarios []Scenario, id string) int {
	for i, s := range scenarios {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// IDs returns the IDs from infos in order.
func IDs(infos []Info) []string {
	ids := make([]string, len(infos))
	for i, info := range infos {
		ids[i] = info.ID
	}
	return ids
}
