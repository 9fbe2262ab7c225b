package usermapper

import (
	"context"

	"github.com/netresearch/scim-ldap-bridge/internal/directory"
	"github.com/netresearch/scim-ldap-bridge/internal/scimcore"
)

// ContactMapper is a non-creator extension mapper owning "emails" (LDAP
// mail) and "phoneNumbers" (LDAP telephoneNumber for type=work, homePhone
// for type=home).
type ContactMapper struct{}

var _ scimcore.Mapper = ContactMapper{}

func (ContactMapper) ResourceNames() []string { return []string{ResourceName} }

func (ContactMapper) SupportsCreate() bool { return false }

func (ContactMapper) ToSCIMAttributes(_ context.Context, _ string, entry *directory.Entry, selection scimcore.Selection) ([]scimcore.Attribute, error) {
	var attrs []scimcore.Attribute

	if selection.IsRequested("emails") {
		if mail := entry.Get("mail"); len(mail) > 0 {
			els := make([]scimcore.MultiValuedElement, 0, len(mail))
			for _, v := range mail {
				els = append(els, scimcore.MultiValuedElement{Type: "work", Value: v})
			}
			attrs = append(attrs, scimcore.Attribute{
				Descriptor: &scimcore.AttributeDescriptor{Name: "emails", Type: scimcore.DataTypeMultiValued, MultiValued: true},
				Value:      els,
			})
		}
	}

	if selection.IsRequested("phoneNumbers") {
		var els []scimcore.MultiValuedElement
		if work, ok := entry.GetOne("telephoneNumber"); ok {
			els = append(els, scimcore.MultiValuedElement{Type: "work", Value: work})
		}
		if home, ok := entry.GetOne("homePhone"); ok {
			els = append(els, scimcore.MultiValuedElement{Type: "home", Value: home})
		}
		if len(els) > 0 {
			attrs = append(attrs, scimcore.Attribute{
				Descriptor: &scimcore.AttributeDescriptor{Name: "phoneNumbers", Type: scimcore.DataTypeMultiValued, MultiValued: true},
				Value:      els,
			})
		}
	}

	return attrs, nil
}

// ToLDAPEntry is never called on ContactMapper by a well-behaved backend
// (SupportsCreate is false), but the Mapper interface requires it.
func (ContactMapper) ToLDAPEntry(_ *scimcore.Resource, _ string) (*directory.Entry, error) {
	return nil, &scimcore.IncompleteResourceError{ResourceName: ResourceName, Missing: "ContactMapper does not create entries"}
}

func mailValues(resource *scimcore.Resource) []string {
	els := elementsValue(resource, "emails")
	values := make([]string, 0, len(els))
	for _, e := range els {
		if v := elementValueString(e); v != "" {
			values = append(values, v)
		}
	}
	return values
}

func phoneValue(resource *scimcore.Resource, phoneType string) []string {
	els := elementsValue(resource, "phoneNumbers")
	if e, ok := byType(els, phoneType); ok {
		if v := elementValueString(e); v != "" {
			return []string{v}
		}
	}
	return nil
}

func (ContactMapper) ToLDAPAttributes(resource *scimcore.Resource) ([]directory.AttributeType, error) {
	var attrs []directory.AttributeType

	if mail := mailValues(resource); len(mail) > 0 {
		attrs = append(attrs, directory.AttributeType{Name: "mail", Values: mail})
	}
	if work := phoneValue(resource, "work"); len(work) > 0 {
		attrs = append(attrs, directory.AttributeType{Name: "telephoneNumber", Values: work})
	}
	if home := phoneValue(resource, "home"); len(home) > 0 {
		attrs = append(attrs, directory.AttributeType{Name: "homePhone", Values: home})
	}

	return attrs, nil
}

func (ContactMapper) ToLDAPModifications(current *directory.Entry, desired *scimcore.Resource) ([]directory.Modification, error) {
	var mods []directory.Modification

	mods = scimcore.AppendModification(mods,
		scimcore.DiffValues("mail", current.Get("mail"), mailValues(desired)))

	// Each (type, LDAP attribute) pair is diffed independently.
	mods = scimcore.AppendModification(mods,
		scimcore.DiffValues("telephoneNumber", current.Get("telephoneNumber"), phoneValue(desired, "work")))
	mods = scimcore.AppendModification(mods,
		scimcore.DiffValues("homePhone", current.Get("homePhone"), phoneValue(desired, "home")))

	return mods, nil
}
