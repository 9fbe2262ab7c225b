package scimcore

import (
	"fmt"
	"sync"
)

// UnknownResourceError reports a catalogue or registry lookup for a resource
// name nothing has registered.
type UnknownResourceError struct {
	ResourceName string
}

func (e *UnknownResourceError) Error() string {
	return fmt.Sprintf("scimcore: unknown resource %q", e.ResourceName)
}

// Catalogue is the process-wide, name-keyed registry of resource
// descriptors. It is read-mostly: Register happens once per resource name
// at startup, GetResourceDescriptor happens on every request thereafter.
//
// The catalogue is constructed and passed by parameter rather than reached
// through package-level global state, so tests can build an isolated
// catalogue per case.
type Catalogue struct {
	mu          sync.RWMutex
	descriptors map[string]*ResourceDescriptor
}

// NewCatalogue returns an empty catalogue ready for registration.
func NewCatalogue() *Catalogue {
	return &Catalogue{descriptors: make(map[string]*ResourceDescriptor)}
}

// Register adds a resource descriptor under its own name. Intended for
// startup only; registering the same name twice overwrites the prior entry,
// which a well-behaved caller never does after the catalogue is published to
// concurrent readers.
func (c *Catalogue) Register(desc *ResourceDescriptor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.descriptors[desc.Name] = desc
}

// GetResourceDescriptor looks up a descriptor by resource name. Fails with
// UnknownResourceError if nothing by that name was registered.
func (c *Catalogue) GetResourceDescriptor(name string) (*ResourceDescriptor, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	d, ok := c.descriptors[name]
	if !ok {
		return nil, &UnknownResourceError{ResourceName: name}
	}
	return d, nil
}
