package scimcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netresearch/scim-ldap-bridge/internal/directory"
)

func TestDiffValuesNoChange(t *testing.T) {
	mod := DiffValues("mail", []string{"a@example.com"}, []string{"a@example.com"})
	assert.Nil(t, mod)
}

func TestDiffValuesNoChangeOrderIndependent(t *testing.T) {
	mod := DiffValues("mail", []string{"a@example.com", "b@example.com"}, []string{"b@example.com", "a@example.com"})
	assert.Nil(t, mod)
}

func TestDiffValuesAdd(t *testing.T) {
	mod := DiffValues("mail", nil, []string{"a@example.com"})
	require.NotNil(t, mod)
	assert.Equal(t, directory.ModAdd, mod.Op)
	assert.Equal(t, []string{"a@example.com"}, mod.Values)
}

func TestDiffValuesDelete(t *testing.T) {
	mod := DiffValues("mail", []string{"a@example.com"}, nil)
	require.NotNil(t, mod)
	assert.Equal(t, directory.ModDelete, mod.Op)
	assert.Equal(t, []string{"a@example.com"}, mod.Values)
}

func TestDiffValuesReplace(t *testing.T) {
	mod := DiffValues("mail", []string{"a@example.com"}, []string{"c@example.com"})
	require.NotNil(t, mod)
	assert.Equal(t, directory.ModReplace, mod.Op)
	assert.Equal(t, []string{"c@example.com"}, mod.Values)
}

func TestDiffValuesBothEmpty(t *testing.T) {
	mod := DiffValues("mail", nil, nil)
	assert.Nil(t, mod)
}

func TestAppendModificationSkipsNil(t *testing.T) {
	var mods []directory.Modification
	mods = AppendModification(mods, nil)
	assert.Empty(t, mods)

	mods = AppendModification(mods, &directory.Modification{Attribute: "mail"})
	assert.Len(t, mods, 1)
}
