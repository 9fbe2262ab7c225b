package usermapper

import (
	"context"
	"strings"

	"github.com/netresearch/scim-ldap-bridge/internal/directory"
	"github.com/netresearch/scim-ldap-bridge/internal/scimcore"
)

// AddressMapper is a non-creator extension mapper owning "addresses". The
// mapping is asymmetric: the "work" address splits across five discrete
// LDAP attributes (postalAddress, street, l, st, postalCode), while the
// "home" address collapses into the single homePostalAddress attribute,
// "$"-joined per the inetOrgPerson postalAddress syntax. A home address
// therefore round-trips as one formatted string rather than discrete
// structured fields.
type AddressMapper struct{}

var _ scimcore.Mapper = AddressMapper{}

func (AddressMapper) ResourceNames() []string { return []string{ResourceName} }

func (AddressMapper) SupportsCreate() bool { return false }

const homeAddressSeparator = "$"

func (AddressMapper) ToSCIMAttributes(_ context.Context, _ string, entry *directory.Entry, selection scimcore.Selection) ([]scimcore.Attribute, error) {
	if !selection.IsRequested("addresses") {
		return nil, nil
	}

	var els []scimcore.MultiValuedElement

	street, hasStreet := entry.GetOne("street")
	locality, hasLocality := entry.GetOne("l")
	region, hasRegion := entry.GetOne("st")
	postalCode, hasPostalCode := entry.GetOne("postalCode")
	formatted, hasFormatted := entry.GetOne("postalAddress")
	if hasStreet || hasLocality || hasRegion || hasPostalCode || hasFormatted {
		work := scimcore.Complex{"type": "work"}
		if hasStreet {
			work["streetAddress"] = street
		}
		if hasLocality {
			work["locality"] = locality
		}
		if hasRegion {
			work["region"] = region
		}
		if hasPostalCode {
			work["postalCode"] = postalCode
		}
		if hasFormatted {
			work["formatted"] = formatted
		}
		els = append(els, scimcore.MultiValuedElement{Type: "work", Value: work})
	}

	if home, ok := entry.GetOne("homePostalAddress"); ok {
		els = append(els, scimcore.MultiValuedElement{
			Type:  "home",
			Value: scimcore.Complex{"type": "home", "formatted": home},
		})
	}

	if len(els) == 0 {
		return nil, nil
	}

	return []scimcore.Attribute{{
		Descriptor: &scimcore.AttributeDescriptor{Name: "addresses", Type: scimcore.DataTypeMultiValued, MultiValued: true},
		Value:      els,
	}}, nil
}

func (AddressMapper) ToLDAPEntry(_ *scimcore.Resource, _ string) (*directory.Entry, error) {
	return nil, &scimcore.IncompleteResourceError{ResourceName: ResourceName, Missing: "AddressMapper does not create entries"}
}

func workAddress(resource *scimcore.Resource) scimcore.Complex {
	els := elementsValue(resource, "addresses")
	e, ok := byType(els, "work")
	if !ok {
		return nil
	}
	c, _ := e.Value.(scimcore.Complex)
	return c
}

func homeAddressFormatted(resource *scimcore.Resource) string {
	els := elementsValue(resource, "addresses")
	e, ok := byType(els, "home")
	if !ok {
		return ""
	}
	c, _ := e.Value.(scimcore.Complex)
	if c == nil {
		return ""
	}
	if formatted := stringField(c, "formatted"); formatted != "" {
		return formatted
	}
	// No formatted field supplied: compose one from whatever structured
	// fields are present, joined the way inetOrgPerson's postalAddress
	// syntax expects.
	parts := []string{
		stringField(c, "streetAddress"),
		stringField(c, "locality"),
		stringField(c, "region"),
		stringField(c, "postalCode"),
	}
	nonEmpty := parts[:0]
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, homeAddressSeparator)
}

func (AddressMapper) ToLDAPAttributes(resource *scimcore.Resource) ([]directory.AttributeType, error) {
	var attrs []directory.AttributeType

	work := workAddress(resource)
	if street := stringField(work, "streetAddress"); street != "" {
		attrs = append(attrs, directory.AttributeType{Name: "street", Values: []string{street}})
	}
	if locality := stringField(work, "locality"); locality != "" {
		attrs = append(attrs, directory.AttributeType{Name: "l", Values: []string{locality}})
	}
	if region := stringField(work, "region"); region != "" {
		attrs = append(attrs, directory.AttributeType{Name: "st", Values: []string{region}})
	}
	if postalCode := stringField(work, "postalCode"); postalCode != "" {
		attrs = append(attrs, directory.AttributeType{Name: "postalCode", Values: []string{postalCode}})
	}
	if formatted := stringField(work, "formatted"); formatted != "" {
		attrs = append(attrs, directory.AttributeType{Name: "postalAddress", Values: []string{formatted}})
	}

	if home := homeAddressFormatted(resource); home != "" {
		attrs = append(attrs, directory.AttributeType{Name: "homePostalAddress", Values: []string{home}})
	}

	return attrs, nil
}

func (AddressMapper) ToLDAPModifications(current *directory.Entry, desired *scimcore.Resource) ([]directory.Modification, error) {
	work := workAddress(desired)

	var mods []directory.Modification
	mods = scimcore.AppendModification(mods, scimcore.DiffValues("street", current.Get("street"), stringSliceOrNil(stringField(work, "streetAddress"))))
	mods = scimcore.AppendModification(mods, scimcore.DiffValues("l", current.Get("l"), stringSliceOrNil(stringField(work, "locality"))))
	mods = scimcore.AppendModification(mods, scimcore.DiffValues("st", current.Get("st"), stringSliceOrNil(stringField(work, "region"))))
	mods = scimcore.AppendModification(mods, scimcore.DiffValues("postalCode", current.Get("postalCode"), stringSliceOrNil(stringField(work, "postalCode"))))
	mods = scimcore.AppendModification(mods, scimcore.DiffValues("postalAddress", current.Get("postalAddress"), stringSliceOrNil(stringField(work, "formatted"))))

	mods = scimcore.AppendModification(mods, scimcore.DiffValues("homePostalAddress", current.Get("homePostalAddress"), stringSliceOrNil(homeAddressFormatted(desired))))

	return mods, nil
}

func stringSliceOrNil(s string) []string {
	if s == "" {
		return nil
	}
	return []string{s}
}
