package backend

import (
	"context"
	"fmt"

	"github.com/netresearch/scim-ldap-bridge/internal/directory"
	"github.com/netresearch/scim-ldap-bridge/internal/scimcore"
)

// NoCreatorError is returned by Post when no mapper registered for the
// resource name supports creation.
type NoCreatorError struct {
	ResourceName string
}

func (e *NoCreatorError) Error() string {
	return fmt.Sprintf("backend: resource %q has no creator-capable mapper registered", e.ResourceName)
}

// Backend implements the four SCIM CRUD verbs by composing a mapper
// Registry against a directory.Interface. It never constructs its own
// directory.Interface or Registry; both are supplied at construction, so
// tests can swap in the in-memory directory and an isolated registry.
type Backend struct {
	registry *scimcore.Registry
	dir      directory.Interface
	baseDN   string
}

// New returns a Backend that creates entries under baseDN and resolves
// mappers through registry.
func New(registry *scimcore.Registry, dir directory.Interface, baseDN string) *Backend {
	return &Backend{registry: registry, dir: dir, baseDN: baseDN}
}

const objectClassFilter = "(objectclass=*)"

func idAttribute(selection scimcore.Selection, dn string) (scimcore.Attribute, bool) {
	if !selection.IsRequested("id") {
		return scimcore.Attribute{}, false
	}
	return scimcore.Attribute{Descriptor: scimcore.IDDescriptor, Value: dn}, true
}

// assemble builds a Resource from entry by merging every registered
// mapper's contribution. On overlapping attribute names the last mapper
// wins; registration order is the tie-break.
func assemble(ctx context.Context, resourceName string, mappers []scimcore.Mapper, entry *directory.Entry, selection scimcore.Selection) (*scimcore.Resource, error) {
	resource := scimcore.NewResource(resourceName)

	if idAttr, ok := idAttribute(selection, entry.DN); ok {
		resource.Set(idAttr)
	}

	for _, m := range mappers {
		attrs, err := m.ToSCIMAttributes(ctx, resourceName, entry, selection)
		if err != nil {
			return nil, err
		}
		// Mappers may produce a superset of the projection; the response
		// builder is the authority on what leaves the backend.
		for _, a := range attrs {
			if !selection.IsRequested(a.Descriptor.Name) {
				continue
			}
			resource.Set(a)
		}
	}

	return resource, nil
}

// Get fetches one resource by its distinguished name. A nil, nil return is
// the distinguished-null result: no entry exists for req.ID.
func (b *Backend) Get(ctx context.Context, req GetRequest) (*scimcore.Resource, error) {
	mappers := b.registry.GetResourceMappers(req.ResourceName)
	if len(mappers) == 0 {
		return nil, &scimcore.UnknownResourceError{ResourceName: req.ResourceName}
	}

	entry, err := b.dir.SearchSingleEntry(ctx, req.ID, objectClassFilter, nil)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, nil
	}

	return assemble(ctx, req.ResourceName, mappers, entry, req.Selection)
}

// Post creates a new resource: the creator-capable mapper builds the
// skeleton entry and every other mapper folds in its own attributes, then a
// single add (with post-read) commits it. The returned resource is always
// built from the post-read entry, never from req.Body, so server-generated
// attributes are reflected.
func (b *Backend) Post(ctx context.Context, req PostRequest) (*scimcore.Resource, error) {
	mappers := b.registry.GetResourceMappers(req.ResourceName)
	if len(mappers) == 0 {
		return nil, &scimcore.UnknownResourceError{ResourceName: req.ResourceName}
	}

	creator, ok := b.registry.Creator(req.ResourceName)
	if !ok {
		return nil, &NoCreatorError{ResourceName: req.ResourceName}
	}

	entry, err := creator.ToLDAPEntry(req.Body, b.baseDN)
	if err != nil {
		return nil, err
	}

	for _, m := range mappers {
		if m == creator {
			continue
		}
		extra, err := m.ToLDAPAttributes(req.Body)
		if err != nil {
			return nil, err
		}
		for _, a := range extra {
			entry.Set(a.Name, a.Values...)
		}
	}

	postRead, err := b.dir.Add(ctx, entry)
	if err != nil {
		return nil, err
	}

	return assemble(ctx, req.ResourceName, mappers, postRead, req.Selection)
}

// Put replaces a resource: every mapper independently diffs its own
// attributes against the current entry, all modifications are applied in
// one modify request (with post-read), and the response is assembled from
// the post-read entry. Attributes no mapper touches are left untouched by
// construction, since DiffValues is only ever called per mapper-owned LDAP
// attribute. A nil, nil return is the distinguished-null result.
func (b *Backend) Put(ctx context.Context, req PutRequest) (*scimcore.Resource, error) {
	mappers := b.registry.GetResourceMappers(req.ResourceName)
	if len(mappers) == 0 {
		return nil, &scimcore.UnknownResourceError{ResourceName: req.ResourceName}
	}

	current, err := b.dir.SearchSingleEntry(ctx, req.ID, objectClassFilter, nil)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, nil
	}

	var mods []directory.Modification
	for _, m := range mappers {
		modsForMapper, err := m.ToLDAPModifications(current, req.Body)
		if err != nil {
			return nil, err
		}
		mods = append(mods, modsForMapper...)
	}

	// A modify request with zero changes is a protocol error on most
	// directory servers; the current entry already is the post state.
	if len(mods) == 0 {
		return assemble(ctx, req.ResourceName, mappers, current, req.Selection)
	}

	postRead, err := b.dir.Modify(ctx, req.ID, mods)
	if err != nil {
		if directory.IsNoSuchObject(err) {
			return nil, nil
		}
		return nil, err
	}

	return assemble(ctx, req.ResourceName, mappers, postRead, req.Selection)
}

// Delete removes a resource by its distinguished name. Returns true on
// success, false if
// the target does not exist, and propagates any other failure as an error.
func (b *Backend) Delete(ctx context.Context, req DeleteRequest) (bool, error) {
	if len(b.registry.GetResourceMappers(req.ResourceName)) == 0 {
		return false, &scimcore.UnknownResourceError{ResourceName: req.ResourceName}
	}

	err := b.dir.Delete(ctx, req.ID)
	if err == nil {
		return true, nil
	}
	if directory.IsNoSuchObject(err) {
		return false, nil
	}
	return false, err
}
