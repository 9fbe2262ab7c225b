// Package usermapper provides the concrete resource mappers for the SCIM
// "User" resource. Three cooperating mappers jointly handle "User":
// CoreMapper (the sole creator: userName, name), ContactMapper (emails,
// phoneNumbers), and AddressMapper (addresses), the core-plus-extensions
// shape that lets a deployment bolt an attribute slice onto a resource
// kind without touching its creator.
package usermapper

import "github.com/netresearch/scim-ldap-bridge/internal/scimcore"

// ResourceName is the SCIM resource kind every mapper in this package
// participates in.
const ResourceName = "User"

// Descriptor builds the ResourceDescriptor for the User resource, suitable
// for registration in a scimcore.Catalogue.
func Descriptor() *scimcore.ResourceDescriptor {
	name := &scimcore.AttributeDescriptor{
		Name: "name",
		Type: scimcore.DataTypeComplex,
		Children: map[string]*scimcore.AttributeDescriptor{
			"givenName":  {Name: "givenName", Type: scimcore.DataTypeString},
			"familyName": {Name: "familyName", Type: scimcore.DataTypeString},
			"formatted":  {Name: "formatted", Type: scimcore.DataTypeString},
		},
	}

	emails := &scimcore.AttributeDescriptor{
		Name:        "emails",
		Type:        scimcore.DataTypeMultiValued,
		MultiValued: true,
		Children: map[string]*scimcore.AttributeDescriptor{
			"type":  {Name: "type", Type: scimcore.DataTypeString},
			"value": {Name: "value", Type: scimcore.DataTypeString},
		},
	}

	phoneNumbers := &scimcore.AttributeDescriptor{
		Name:        "phoneNumbers",
		Type:        scimcore.DataTypeMultiValued,
		MultiValued: true,
		Children: map[string]*scimcore.AttributeDescriptor{
			"type":  {Name: "type", Type: scimcore.DataTypeString},
			"value": {Name: "value", Type: scimcore.DataTypeString},
		},
	}

	meta := &scimcore.AttributeDescriptor{
		Name: "meta",
		Type: scimcore.DataTypeComplex,
		Children: map[string]*scimcore.AttributeDescriptor{
			"created":      {Name: "created", Type: scimcore.DataTypeDateTime},
			"lastModified": {Name: "lastModified", Type: scimcore.DataTypeDateTime},
		},
	}

	addresses := &scimcore.AttributeDescriptor{
		Name:        "addresses",
		Type:        scimcore.DataTypeMultiValued,
		MultiValued: true,
		Children: map[string]*scimcore.AttributeDescriptor{
			"type":          {Name: "type", Type: scimcore.DataTypeString},
			"streetAddress": {Name: "streetAddress", Type: scimcore.DataTypeString},
			"locality":      {Name: "locality", Type: scimcore.DataTypeString},
			"region":        {Name: "region", Type: scimcore.DataTypeString},
			"postalCode":    {Name: "postalCode", Type: scimcore.DataTypeString},
			"formatted":     {Name: "formatted", Type: scimcore.DataTypeString},
		},
	}

	return scimcore.NewResourceDescriptor(ResourceName,
		&scimcore.AttributeDescriptor{Name: "userName", Type: scimcore.DataTypeString},
		name,
		emails,
		phoneNumbers,
		addresses,
		meta,
	)
}
