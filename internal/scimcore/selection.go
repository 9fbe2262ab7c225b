package scimcore

// Selection represents the client-supplied attribute projection:
// either "all attributes" or an explicit set of top-level attribute names.
// It is immutable once built and safe for concurrent reads.
type Selection struct {
	all   bool
	names map[string]struct{}
}

// AllAttributes returns a Selection that requests every attribute.
func AllAttributes() Selection {
	return Selection{all: true}
}

// NewSelection builds an explicit Selection from a list of top-level
// attribute names, as parsed from the client's projection parameter.
func NewSelection(names []string) Selection {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return Selection{names: set}
}

// IsRequested reports whether the named attribute should be included in the
// response. Always true for Selection{all: true}; for an explicit selection,
// true only if the name was listed. An explicit selection that lists nothing
// at all still requests "id" — a response always identifies its resource.
// Unknown names are accepted silently and simply return false.
func (s Selection) IsRequested(name string) bool {
	if s.all {
		return true
	}
	if len(s.names) == 0 {
		return name == "id"
	}
	_, ok := s.names[name]
	return ok
}

// IsAll reports whether this selection requests every attribute.
func (s Selection) IsAll() bool {
	return s.all
}
