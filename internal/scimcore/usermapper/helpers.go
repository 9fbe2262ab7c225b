package usermapper

import "github.com/netresearch/scim-ldap-bridge/internal/scimcore"

// stringField reads a string sub-field from a Complex value, returning ""
// if absent or not a string.
func stringField(c scimcore.Complex, name string) string {
	if c == nil {
		return ""
	}
	s, _ := c[name].(string)
	return s
}

// complexValue reads an Attribute's value as Complex, returning nil if the
// attribute is absent or not complex-shaped.
func complexValue(r *scimcore.Resource, name string) scimcore.Complex {
	attr, ok := r.Get(name)
	if !ok {
		return nil
	}
	c, _ := attr.Value.(scimcore.Complex)
	return c
}

// elementsValue reads an Attribute's value as a multi-valued element list,
// returning nil if the attribute is absent or not multi-valued-shaped.
func elementsValue(r *scimcore.Resource, name string) []scimcore.MultiValuedElement {
	attr, ok := r.Get(name)
	if !ok {
		return nil
	}
	els, _ := attr.Value.([]scimcore.MultiValuedElement)
	return els
}

// byType finds the first element carrying the given Type discriminator.
// Duplicate discriminators are legal; write paths treat the first match as
// authoritative, while read paths preserve every element.
func byType(els []scimcore.MultiValuedElement, t string) (scimcore.MultiValuedElement, bool) {
	for _, e := range els {
		if e.Type == t {
			return e, true
		}
	}
	return scimcore.MultiValuedElement{}, false
}

// elementValueString reads the Value field of a MultiValuedElement as a
// string, returning "" if it isn't one.
func elementValueString(e scimcore.MultiValuedElement) string {
	s, _ := e.Value.(string)
	return s
}
