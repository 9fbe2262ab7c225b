package usermapper

import (
	"context"
	"fmt"
	"strings"

	"github.com/netresearch/scim-ldap-bridge/internal/directory"
	"github.com/netresearch/scim-ldap-bridge/internal/scimcore"
	"github.com/netresearch/scim-ldap-bridge/internal/scimcore/resolve"
)

// CoreMapper is the sole creator-capable mapper for User: it sources the
// distinguished name, the "userName" and "name" attributes, and the
// read-only "meta" timestamps from the directory's operational attributes.
// LDAP attributes it owns: uid, cn, sn, givenName.
type CoreMapper struct{}

var _ scimcore.Mapper = CoreMapper{}

func (CoreMapper) ResourceNames() []string { return []string{ResourceName} }

func (CoreMapper) SupportsCreate() bool { return true }

func (CoreMapper) ToSCIMAttributes(_ context.Context, _ string, entry *directory.Entry, selection scimcore.Selection) ([]scimcore.Attribute, error) {
	var attrs []scimcore.Attribute

	if selection.IsRequested("userName") {
		if uid, ok := entry.GetOne("uid"); ok {
			attrs = append(attrs, scimcore.Attribute{
				Descriptor: &scimcore.AttributeDescriptor{Name: "userName", Type: scimcore.DataTypeString},
				Value:      uid,
			})
		}
	}

	if selection.IsRequested("name") {
		given, hasGiven := entry.GetOne("givenName")
		family, hasFamily := entry.GetOne("sn")
		formatted, hasFormatted := entry.GetOne("cn")
		if hasGiven || hasFamily || hasFormatted {
			c := scimcore.Complex{}
			if hasGiven {
				c["givenName"] = given
			}
			if hasFamily {
				c["familyName"] = family
			}
			if hasFormatted {
				c["formatted"] = formatted
			}
			attrs = append(attrs, scimcore.Attribute{
				Descriptor: &scimcore.AttributeDescriptor{Name: "name", Type: scimcore.DataTypeComplex},
				Value:      c,
			})
		}
	}

	if selection.IsRequested("meta") {
		meta := scimcore.Complex{}
		if created, ok := entry.GetOne("createTimestamp"); ok {
			if t, err := resolve.DateTime.ToInstance(created); err == nil {
				meta["created"] = t
			}
		}
		if modified, ok := entry.GetOne("modifyTimestamp"); ok {
			if t, err := resolve.DateTime.ToInstance(modified); err == nil {
				meta["lastModified"] = t
			}
		}
		if len(meta) > 0 {
			attrs = append(attrs, scimcore.Attribute{
				Descriptor: &scimcore.AttributeDescriptor{Name: "meta", Type: scimcore.DataTypeComplex},
				Value:      meta,
			})
		}
	}

	return attrs, nil
}

// userNameOf reads the required "userName" attribute off resource.
func userNameOf(resource *scimcore.Resource) (string, bool) {
	attr, ok := resource.Get("userName")
	if !ok {
		return "", false
	}
	s, ok := attr.Value.(string)
	return s, ok
}

// coreAttributes computes the uid/sn/givenName/cn values this mapper owns,
// shared by ToLDAPEntry and ToLDAPAttributes.
func coreAttributes(resource *scimcore.Resource) (uid, sn, givenName, cn string, err error) {
	userName, ok := userNameOf(resource)
	if !ok || userName == "" {
		return "", "", "", "", &scimcore.IncompleteResourceError{ResourceName: ResourceName, Missing: "userName"}
	}

	name := complexValue(resource, "name")
	givenName = stringField(name, "givenName")
	familyName := stringField(name, "familyName")
	formatted := stringField(name, "formatted")

	sn = familyName
	if sn == "" {
		// inetOrgPerson requires sn; default to userName rather than fail.
		sn = userName
	}

	switch {
	case formatted != "":
		cn = formatted
	case givenName != "" && familyName != "":
		cn = strings.TrimSpace(fmt.Sprintf("%s %s", givenName, familyName))
	default:
		cn = userName
	}

	return userName, sn, givenName, cn, nil
}

func (CoreMapper) ToLDAPEntry(resource *scimcore.Resource, baseDN string) (*directory.Entry, error) {
	uid, sn, givenName, cn, err := coreAttributes(resource)
	if err != nil {
		return nil, err
	}

	entry := directory.NewEntry(fmt.Sprintf("uid=%s,%s", uid, baseDN))
	entry.Set("objectClass", "top", "person", "organizationalPerson", "inetOrgPerson")
	entry.Set("uid", uid)
	entry.Set("cn", cn)
	entry.Set("sn", sn)
	if givenName != "" {
		entry.Set("givenName", givenName)
	}
	return entry, nil
}

func (CoreMapper) ToLDAPAttributes(resource *scimcore.Resource) ([]directory.AttributeType, error) {
	uid, sn, givenName, cn, err := coreAttributes(resource)
	if err != nil {
		return nil, err
	}

	attrs := []directory.AttributeType{
		{Name: "uid", Values: []string{uid}},
		{Name: "cn", Values: []string{cn}},
		{Name: "sn", Values: []string{sn}},
	}
	if givenName != "" {
		attrs = append(attrs, directory.AttributeType{Name: "givenName", Values: []string{givenName}})
	}
	return attrs, nil
}

func (CoreMapper) ToLDAPModifications(current *directory.Entry, desired *scimcore.Resource) ([]directory.Modification, error) {
	uid, sn, givenName, cn, err := coreAttributes(desired)
	if err != nil {
		return nil, err
	}

	var mods []directory.Modification
	mods = scimcore.AppendModification(mods, scimcore.DiffValues("uid", current.Get("uid"), []string{uid}))
	mods = scimcore.AppendModification(mods, scimcore.DiffValues("cn", current.Get("cn"), []string{cn}))
	mods = scimcore.AppendModification(mods, scimcore.DiffValues("sn", current.Get("sn"), []string{sn}))

	var desiredGiven []string
	if givenName != "" {
		desiredGiven = []string{givenName}
	}
	mods = scimcore.AppendModification(mods, scimcore.DiffValues("givenName", current.Get("givenName"), desiredGiven))

	return mods, nil
}
