// Package model holds the typed parameter models for every launcher module
// and the top-level launcher parameter file, plus the registry the schema
// exporter and pack tooling look them up in.
package model

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// LauncherName is the registry key of the top-level launcher model.
const LauncherName = "launcher"

// Model describes one parameter model.
type Model struct {
	// Name is the module name as it appears in module_path values.
	Name string
	// Description, when set, wins over Doc for the exported schema.
	Description string
	// Doc is the model's documentation text; its first paragraph is used
	// when Description is empty.
	Doc string
	// New returns a pointer to a zero-valued parameter struct. Nil means the
	// module has no parameter model and is skipped on export.
	New func() any
}

// TypeName returns the Go type name of the model's struct, e.g.
// "model.DiskSpaceCheckParams". Empty when New is nil.
func (m Model) TypeName() string {
	if m.New == nil {
		return ""
	}
	t := reflect.TypeOf(m.New())
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.String()
}

// Registry maps module names to parameter models.
type Registry struct {
	mu       sync.RWMutex
	models   map[string]Model
	launcher *Model
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{models: make(map[string]Model)}
}

// Register adds a module model. Registering the launcher name sets the
// launcher model instead.
func (r *Registry) Register(m Model) error {
	if m.Name == "" {
		return fmt.Errorf("model: name is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if m.Name == LauncherName {
		if r.launcher != nil {
			return fmt.Errorf("model: launcher model already registered")
		}
		lm := m
		r.launcher = &lm
		return nil
	}
	if _, exists := r.models[m.Name]; exists {
		return fmt.Errorf("model: %q already registered", m.Name)
	}
	r.models[m.Name] = m
	return nil
}

// MustRegister is Register for package-level catalogs; it panics on error.
func (r *Registry) MustRegister(m Model) {
	if err := r.Register(m); err != nil {
		panic(err)
	}
}

// Lookup returns the module model registered under name.
func (r *Registry) Lookup(name string) (Model, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.models[name]
	return m, ok
}

// Launcher returns the launcher model, if registered.
func (r *Registry) Launcher() (Model, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.launcher == nil {
		return Model{}, false
	}
	return *r.launcher, true
}

// Modules returns every module model sorted by name.
func (r *Registry) Modules() []Model {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Model, 0, len(r.models))
	for _, m := range r.models {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns the sorted module names.
func (r *Registry) Names() []string {
	mods := r.Modules()
	names := make([]string, len(mods))
	for i, m := range mods {
		names[i] = m.Name
	}
	return names
}
