package directory

import (
	"testing"

	ber "github.com/go-asn1-ber/asn1-ber"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostReadControlType(t *testing.T) {
	c := newPostReadControl()
	assert.Equal(t, "1.3.6.1.1.13.2", c.GetControlType())
	assert.Contains(t, c.String(), "Post Read")
}

func TestPostReadControlEncodesAttributeSelection(t *testing.T) {
	c := newPostReadControl("cn", "entryUUID")

	packet := c.Encode()
	require.Len(t, packet.Children, 2)

	controlType := packet.Children[0]
	assert.Equal(t, "1.3.6.1.1.13.2", controlType.Data.String())

	value := packet.Children[1]
	require.Len(t, value.Children, 1)

	selection := value.Children[0]
	assert.Equal(t, ber.TagSequence, selection.Tag)
	require.Len(t, selection.Children, 2)
	assert.Equal(t, "cn", selection.Children[0].Data.String())
	assert.Equal(t, "entryUUID", selection.Children[1].Data.String())
}

func TestPostReadControlEmptySelection(t *testing.T) {
	packet := newPostReadControl().Encode()
	require.Len(t, packet.Children, 2)

	selection := packet.Children[1].Children[0]
	assert.Empty(t, selection.Children)
}
