package scm

import (
	"fmt"
	"sort"
	"strings"
)

// Registry maps scm names to VCS adapters.
type Registry struct {
	adapters map[string]VCS
}

// NewRegistry creates an empty adapter registry.
func NewRegistry() *Registry {
	return &Registry{adapters: make(map[string]VCS)}
}

// Register adds the adapter for name, replacing any earlier one.
func (r *Registry) Register(name string, vcs VCS) {
	r.adapters[name] = vcs
}

// Get returns the adapter registered under name.
func (r *Registry) Get(name string) (VCS, error) {
	vcs, ok := r.adapters[name]
	if !ok {
		return nil, fmt.Errorf("unknown scm '%s'; supported: %s", name, r.names())
	}
	return vcs, nil
}

func (r *Registry) names() string {
	if len(r.adapters) == 0 {
		return "(none registered)"
	}
	names := make([]string, 0, len(r.adapters))
	for n := range r.adapters {
		names = append(names, n)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
