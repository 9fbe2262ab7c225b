package directory

import (
	"fmt"
	"strings"

	ber "github.com/go-asn1-ber/asn1-ber"
	"github.com/go-ldap/ldap/v3"
)

// controlTypePostRead is the LDAP Read Entry post-read request control
// (RFC 4527): attached to an add or modify, it asks the directory to return
// the entry state as committed, in the same round-trip.
const controlTypePostRead = "1.3.6.1.1.13.2"

// postReadControl implements ldap.Control for the post-read request. The
// control value is an AttributeSelection (SEQUENCE OF LDAPString); an empty
// selection asks for all user attributes.
type postReadControl struct {
	attrs []string
}

func newPostReadControl(attrs ...string) *postReadControl {
	return &postReadControl{attrs: attrs}
}

func (c *postReadControl) GetControlType() string {
	return controlTypePostRead
}

func (c *postReadControl) Encode() *ber.Packet {
	packet := ber.Encode(ber.ClassUniversal, ber.TypeConstructed, ber.TagSequence, nil, "Control")
	packet.AppendChild(ber.NewString(ber.ClassUniversal, ber.TypePrimitive, ber.TagOctetString,
		controlTypePostRead, "Control Type (Post Read)"))

	selection := ber.Encode(ber.ClassUniversal, ber.TypeConstructed, ber.TagSequence, nil, "AttributeSelection")
	for _, a := range c.attrs {
		selection.AppendChild(ber.NewString(ber.ClassUniversal, ber.TypePrimitive, ber.TagOctetString,
			a, "Attribute"))
	}

	value := ber.Encode(ber.ClassUniversal, ber.TypePrimitive, ber.TagOctetString, nil, "Control Value (Post Read)")
	value.AppendChild(selection)
	packet.AppendChild(value)

	return packet
}

func (c *postReadControl) String() string {
	return fmt.Sprintf("Control Type: Post Read (%s)  Attributes: [%s]",
		controlTypePostRead, strings.Join(c.attrs, " "))
}

var _ ldap.Control = (*postReadControl)(nil)
