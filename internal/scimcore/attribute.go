package scimcore

// Complex is a structure of named sub-values, used both standalone (a
// complex attribute) and as the element shape of a multi-valued attribute.
type Complex map[string]any

// MultiValuedElement is one element of a multi-valued SCIM attribute. It
// always carries at least a Type discriminator and a Value; Extra holds any
// additional optional sub-fields (e.g. "primary", "display"). Type
// discriminators are not required to be unique across elements of the same
// attribute. The usermapper mappers keep every email value in both
// directions, but for phoneNumbers and addresses they write only the first
// element of each type to the directory; later duplicates are not stored.
type MultiValuedElement struct {
	Type  string
	Value any
	Extra Complex
}

// Attribute pairs a descriptor with its value. Value is one of: a primitive
// scalar (string, bool, time.Time, []byte, int64), a Complex, or a
// []MultiValuedElement, depending on Descriptor.Type.
type Attribute struct {
	Descriptor *AttributeDescriptor
	Value      any
}

// Resource is a resource-kind label plus a map from attribute name to
// Attribute. The zero value is not usable; build with NewResource.
type Resource struct {
	ResourceName string
	Schemas      []string
	attributes   map[string]Attribute
}

// NewResource returns an empty resource of the given kind.
func NewResource(resourceName string) *Resource {
	return &Resource{ResourceName: resourceName, attributes: make(map[string]Attribute)}
}

// Set stores an attribute under its descriptor's name, replacing any prior
// value for that name — the invariant "no two entries share a name" is
// enforced by construction since attributes is a map.
func (r *Resource) Set(a Attribute) {
	r.attributes[a.Descriptor.Name] = a
}

// Get looks up an attribute by name.
func (r *Resource) Get(name string) (Attribute, bool) {
	a, ok := r.attributes[name]
	return a, ok
}

// Names returns the names of every attribute currently set on the resource.
func (r *Resource) Names() []string {
	names := make([]string, 0, len(r.attributes))
	for n := range r.attributes {
		names = append(names, n)
	}
	return names
}

// Len reports how many attributes are set.
func (r *Resource) Len() int {
	return len(r.attributes)
}
