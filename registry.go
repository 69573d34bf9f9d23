package jsonmodel

import (
	"sort"
	"sync"
)

// Registry maps type names to record specs. It implements SpecLookup, so
// RecordRef types can point at specs registered later, including the spec
// that declares them.
type Registry struct {
	mu    sync.RWMutex
	specs map[string]*RecordSpec
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{specs: map[string]*RecordSpec{}}
}

// Register adds specs. A type name can only be registered once.
func (r *Registry) Register(specs ...*RecordSpec) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var iss Issues
	for _, s := range specs {
		if s == nil {
			continue
		}
		if _, dup := r.specs[s.typeName]; dup {
			iss = AppendIssues(iss, specIssue("/"+s.typeName, "type already registered"))
			continue
		}
		r.specs[s.typeName] = s
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

// Lookup returns the spec registered under typeName.
func (r *Registry) Lookup(typeName string) (*RecordSpec, bool) {
	r.mu.RLock()
	s, ok := r.specs[typeName]
	r.mu.RUnlock()
	return s, ok
}

// Names returns the registered type names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.specs))
	for n := range r.specs {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Check verifies that every RecordRef reachable from registered specs
// resolves through its lookup.
func (r *Registry) Check() error {
	var iss Issues
	for _, name := range r.Names() {
		s, _ := r.Lookup(name)
		for _, f := range s.fields {
			if err := checkRefs(f.Type); err != nil {
				iss = AppendIssues(iss, specIssue("/"+name+"/"+f.Name, err.Error()))
			}
		}
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

func checkRefs(t Type) error {
	switch t.kind {
	case KindList, KindMap:
		return checkRefs(*t.elem)
	case KindRecord:
		_, err := t.Spec()
		return err
	}
	return nil
}
