// Package scimcore implements the resource translation pipeline between SCIM
// resources and directory entries: descriptors, the mapper contract, the
// attribute-selection predicate, and the server facade that ties mappers to
// resource names. It does not speak HTTP or the LDAP wire protocol itself;
// the HTTP front end and the directory client are separate layers.
package scimcore

import "fmt"

// DataType is the wire type of an attribute value.
type DataType int

// Recognized attribute data types.
const (
	DataTypeString DataType = iota
	DataTypeBoolean
	DataTypeDecimal
	DataTypeInteger
	DataTypeDateTime
	DataTypeBinary
	DataTypeComplex
	DataTypeMultiValued
)

func (t DataType) String() string {
	switch t {
	case DataTypeString:
		return "string"
	case DataTypeBoolean:
		return "boolean"
	case DataTypeDecimal:
		return "decimal"
	case DataTypeInteger:
		return "integer"
	case DataTypeDateTime:
		return "date-time"
	case DataTypeBinary:
		return "binary"
	case DataTypeComplex:
		return "complex"
	case DataTypeMultiValued:
		return "multi-valued"
	default:
		return "unknown"
	}
}

// AttributeDescriptor is the immutable identity and shape of one SCIM
// attribute: its name, namespace, data type, cardinality, and — for complex
// types, its child descriptors. Descriptors are never mutated after
// registration.
type AttributeDescriptor struct {
	Name        string
	Namespace   string
	Type        DataType
	MultiValued bool
	// Children holds sub-attribute descriptors for DataTypeComplex (and for
	// DataTypeMultiValued attributes whose elements are structures, e.g.
	// emails[].value / emails[].type). Keyed by child attribute name.
	Children map[string]*AttributeDescriptor
}

// Child looks up a sub-attribute descriptor by name. Returns nil, false if
// this descriptor has no children or the name is not one of them.
func (d *AttributeDescriptor) Child(name string) (*AttributeDescriptor, bool) {
	if d == nil || d.Children == nil {
		return nil, false
	}
	c, ok := d.Children[name]
	return c, ok
}

// ResourceDescriptor is a named collection of attribute descriptors for one
// SCIM resource kind, keyed by attribute name. It always carries a pseudo
// attribute named "id" whose value is the resource's canonical identifier,
// the directory entry's distinguished name.
type ResourceDescriptor struct {
	Name       string
	Attributes map[string]*AttributeDescriptor
}

// IDDescriptor is the pseudo-attribute every ResourceDescriptor carries for
// its canonical identifier.
var IDDescriptor = &AttributeDescriptor{Name: "id", Type: DataTypeString}

// NewResourceDescriptor builds a ResourceDescriptor from a set of attribute
// descriptors, automatically installing the "id" pseudo-attribute. Panics on
// a duplicate "id" entry in attrs — that would be a registration-time bug,
// not a runtime condition to recover from.
func NewResourceDescriptor(name string, attrs ...*AttributeDescriptor) *ResourceDescriptor {
	m := make(map[string]*AttributeDescriptor, len(attrs)+1)
	m["id"] = IDDescriptor
	for _, a := range attrs {
		if a.Name == "id" {
			panic(fmt.Sprintf("scimcore: resource %q declares a reserved attribute name \"id\"", name))
		}
		m[a.Name] = a
	}
	return &ResourceDescriptor{Name: name, Attributes: m}
}

// Attribute looks up an attribute descriptor by name within this resource.
func (d *ResourceDescriptor) Attribute(name string) (*AttributeDescriptor, bool) {
	a, ok := d.Attributes[name]
	return a, ok
}
