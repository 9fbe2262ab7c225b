package scimcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResourceSetGetOverwrites(t *testing.T) {
	r := NewResource("User")
	r.Set(Attribute{Descriptor: &AttributeDescriptor{Name: "userName"}, Value: "bjensen"})
	r.Set(Attribute{Descriptor: &AttributeDescriptor{Name: "userName"}, Value: "bjensen2"})

	attr, ok := r.Get("userName")
	assert.True(t, ok)
	assert.Equal(t, "bjensen2", attr.Value)
	assert.Equal(t, 1, r.Len())
}

func TestResourceGetMissing(t *testing.T) {
	r := NewResource("User")
	_, ok := r.Get("userName")
	assert.False(t, ok)
}

func TestResourceNames(t *testing.T) {
	r := NewResource("User")
	r.Set(Attribute{Descriptor: &AttributeDescriptor{Name: "userName"}, Value: "bjensen"})
	r.Set(Attribute{Descriptor: &AttributeDescriptor{Name: "name"}, Value: Complex{"givenName": "Barbara"}})

	assert.ElementsMatch(t, []string{"userName", "name"}, r.Names())
}
