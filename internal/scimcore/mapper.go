package scimcore

import (
	"context"
	"fmt"

	"github.com/netresearch/scim-ldap-bridge/internal/directory"
)

// IncompleteResourceError is returned by Mapper.ToLDAPEntry when the
// resource is missing an attribute the mapper needs to compose a
// distinguished name or otherwise originate the entry.
type IncompleteResourceError struct {
	ResourceName string
	Missing      string
}

func (e *IncompleteResourceError) Error() string {
	return fmt.Sprintf("scimcore: resource %q is missing required attribute %q to create an entry",
		e.ResourceName, e.Missing)
}

// Mapper translates between one resource kind and directory entries for a
// slice of that kind's attributes. Multiple mappers may jointly
// handle one resource name — a "core" mapper that originates entries, plus
// "extension" mappers that only contribute or diff their own attributes.
type Mapper interface {
	// ResourceNames lists the resource kinds this mapper participates in.
	ResourceNames() []string

	// SupportsCreate reports whether this mapper can originate new entries
	// via ToLDAPEntry. At most one mapper registered for a given resource
	// name may return true.
	SupportsCreate() bool

	// ToSCIMAttributes produces attributes only for names present in
	// selection, silently omitting any it cannot source from entry.
	ToSCIMAttributes(ctx context.Context, resourceName string, entry *directory.Entry, selection Selection) ([]Attribute, error)

	// ToLDAPEntry constructs a new entry whose DN is composed of the
	// resource's naming attribute(s) and baseDN. Creator mappers only;
	// non-creators may implement this as "not supported" (it will never be
	// called on them by a well-behaved backend).
	ToLDAPEntry(resource *Resource, baseDN string) (*directory.Entry, error)

	// ToLDAPAttributes contributes attributes for a jointly-built entry.
	// Called on every mapper other than the one that originated the entry.
	ToLDAPAttributes(resource *Resource) ([]directory.AttributeType, error)

	// ToLDAPModifications computes the minimal add/delete/replace set that
	// transforms current into the shape implied by desired, for this
	// mapper's attributes only. Attributes outside its remit are left
	// untouched.
	ToLDAPModifications(current *directory.Entry, desired *Resource) ([]directory.Modification, error)
}
