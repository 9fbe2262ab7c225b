// Package directory defines the LDAP-side vocabulary the translation core
// exchanges with a directory server: entries, attributes, modifications, the
// connection-pool lifecycle, and the LDAP interface capability consumed by
// the backend. It does not implement LDAP wire encoding itself; Pool and
// PoolInterface wrap github.com/go-ldap/ldap/v3 for that.
package directory

// Entry is an opaque handle produced and consumed by the LDAP interface: a
// distinguished name plus a multimap of attribute name to one-or-more octet
// string values. The core never constructs an Entry except via a Mapper.
type Entry struct {
	DN         string
	Attributes map[string][]string
}

// NewEntry returns an empty entry for the given distinguished name.
func NewEntry(dn string) *Entry {
	return &Entry{DN: dn, Attributes: make(map[string][]string)}
}

// Get returns the values stored under name, or nil if the attribute is
// absent from the entry.
func (e *Entry) Get(name string) []string {
	if e == nil {
		return nil
	}
	return e.Attributes[name]
}

// GetOne returns the first value stored under name, and whether the
// attribute was present at all.
func (e *Entry) GetOne(name string) (string, bool) {
	vs := e.Get(name)
	if len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

// Has reports whether the entry carries any value for name.
func (e *Entry) Has(name string) bool {
	return len(e.Get(name)) > 0
}

// Set replaces whatever values name currently carries. A nil or empty values
// slice removes the attribute entirely, keeping the entry's attribute set
// free of empty placeholders.
func (e *Entry) Set(name string, values ...string) {
	if len(values) == 0 {
		delete(e.Attributes, name)
		return
	}
	e.Attributes[name] = values
}

// AttributeType is the wire-level LDAP attribute type: a name plus the
// values a mapper contributes for it when jointly building or modifying an
// entry.
type AttributeType struct {
	Name   string
	Values []string
}

// ModificationOp is the kind of change a Modification describes.
type ModificationOp int

// The three modification kinds the diff policy produces.
const (
	ModAdd ModificationOp = iota
	ModDelete
	ModReplace
)

func (op ModificationOp) String() string {
	switch op {
	case ModAdd:
		return "add"
	case ModDelete:
		return "delete"
	case ModReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// Modification is one add/delete/replace entry in the minimal diff a Mapper
// computes between a current directory entry and a desired resource.
type Modification struct {
	Op        ModificationOp
	Attribute string
	Values    []string
}
