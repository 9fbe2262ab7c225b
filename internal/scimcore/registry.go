package scimcore

import "fmt"

// MultipleCreatorsError is raised at registration time when a second mapper
// for the same resource name also declares SupportsCreate()==true. Exactly
// one creator per resource name, enforced eagerly rather than silently
// picked by registration order.
type MultipleCreatorsError struct {
	ResourceName string
}

func (e *MultipleCreatorsError) Error() string {
	return fmt.Sprintf("scimcore: resource %q already has a creator-capable mapper registered", e.ResourceName)
}

// Registry is the server facade: a resourceName -> []Mapper registry,
// ordered by insertion. That order is the tie-break for attribute overlay
// on GET: when two mappers produce the same attribute name, the
// later-registered mapper wins.
//
// The registry is constructed and passed by parameter rather than reached
// through package-level global state.
type Registry struct {
	mappers map[string][]Mapper
	creator map[string]bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		mappers: make(map[string][]Mapper),
		creator: make(map[string]bool),
	}
}

// Register adds mapper under every resource name it declares. Intended for
// startup only. Returns *MultipleCreatorsError if mapper is creator-capable
// and a prior mapper already claimed that role for one of its resource
// names.
func (r *Registry) Register(mapper Mapper) error {
	names := mapper.ResourceNames()
	if mapper.SupportsCreate() {
		for _, name := range names {
			if r.creator[name] {
				return &MultipleCreatorsError{ResourceName: name}
			}
		}
	}

	for _, name := range names {
		r.mappers[name] = append(r.mappers[name], mapper)
		if mapper.SupportsCreate() {
			r.creator[name] = true
		}
	}
	return nil
}

// GetResourceMappers returns every mapper registered for resourceName, in
// registration order. The returned slice is a defensive copy; callers may
// not mutate the registry through it.
func (r *Registry) GetResourceMappers(resourceName string) []Mapper {
	src := r.mappers[resourceName]
	out := make([]Mapper, len(src))
	copy(out, src)
	return out
}

// Creator returns the resource name's creator-capable mapper, if one was
// registered. Used by the backend for POST.
func (r *Registry) Creator(resourceName string) (Mapper, bool) {
	for _, m := range r.mappers[resourceName] {
		if m.SupportsCreate() {
			return m, true
		}
	}
	return nil, false
}
