// Package doctypes holds the document type registry: per-type lifecycle
// rules loaded from an embedded YAML file, so adding a type is a config
// edit rather than code spread across validation sites.
package doctypes

import (
	"embed"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// Registry resolves document types to their lifecycle rules
type Registry struct {
	types map[string]*Rules
	mu    sync.RWMutex
}

// NewRegistry creates a new type registry and loads the embedded YAML file
func NewRegistry() (*Registry, error) {
	data, err := configFiles.ReadFile("config/doctypes.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read doctypes config: %w", err)
	}

	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal doctypes config: %w", err)
	}
	if len(file.Types) == 0 {
		return nil, fmt.Errorf("doctypes config defines no types")
	}

	r := &Registry{types: make(map[string]*Rules, len(file.Types))}
	for id, rules := range file.Types {
		rules.ID = id
		r.types[id] = &rules
	}

	return r, nil
}

// Get returns the rules for a type, or an error for unknown types
func (r *Registry) Get(id string) (*Rules, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rules, ok := r.types[id]
	if !ok {
		return nil, fmt.Errorf("unknown document type: %s", id)
	}
	return rules, nil
}

// IsValid reports whether the type is registered
func (r *Registry) IsValid(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.types[id]
	return ok
}

// List returns all registered types sorted by ID
func (r *Registry) List() []Rules {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Rules, 0, len(r.types))
	for _, rules := range r.types {
		out = append(out, *rules)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
