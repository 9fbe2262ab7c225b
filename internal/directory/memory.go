package directory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Memory is a full in-memory Interface implementation used only by tests.
// It is not intended for production use: no schema checking, and no filter
// evaluation beyond the base-scope lookups the backend performs.
type Memory struct {
	mu      sync.Mutex
	entries map[string]*Entry // keyed by lowercased DN
}

// NewMemory returns an empty in-memory directory.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]*Entry)}
}

func normalizeDN(dn string) string {
	return strings.ToLower(strings.TrimSpace(dn))
}

// Seed directly installs an entry, bypassing Add. Useful for test setup that
// needs to start from a known directory state.
func (m *Memory) Seed(entry *Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[normalizeDN(entry.DN)] = cloneEntry(entry)
}

// SetAttribute sets one attribute directly on an existing entry, bypassing
// any mapper, to simulate directory-side state a mapper never touches.
func (m *Memory) SetAttribute(dn, name string, values ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[normalizeDN(dn)]
	if !ok {
		return fmt.Errorf("directory/memory: %q: %w", dn, errNoSuchObject)
	}
	e.Set(name, values...)
	return nil
}

func cloneEntry(e *Entry) *Entry {
	c := NewEntry(e.DN)
	for k, v := range e.Attributes {
		values := make([]string, len(v))
		copy(values, v)
		c.Attributes[k] = values
	}
	return c
}

// SearchSingleEntry implements Interface. The in-memory directory only ever
// stores one entry per DN, so it treats any filter as "(objectclass=*)"
// matched against the entry named by baseDN — sufficient for the base-scope
// identifier lookups the backend performs.
func (m *Memory) SearchSingleEntry(_ context.Context, baseDN, _ string, attrs []string) (*Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[normalizeDN(baseDN)]
	if !ok {
		return nil, nil
	}
	if len(attrs) == 0 {
		return cloneEntry(e), nil
	}

	filtered := NewEntry(e.DN)
	for _, name := range attrs {
		if vs, ok := e.Attributes[name]; ok {
			filtered.Set(name, vs...)
		}
	}
	return filtered, nil
}

// generalizedTime renders t the way a directory server stamps its
// operational timestamp attributes (RFC 4517 GeneralizedTime).
func generalizedTime(t time.Time) string {
	return t.UTC().Format("20060102150405Z")
}

// Add implements Interface. A real directory server stamps every newly
// committed entry with operational attributes — entryUUID (RFC 4530) and
// create/modify timestamps; the post-read simulation here does the same, so
// a mapper reading them back sees directory-generated state rather than
// something request-supplied.
func (m *Memory) Add(_ context.Context, entry *Entry) (*Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := normalizeDN(entry.DN)
	if _, exists := m.entries[key]; exists {
		return nil, &BackendError{Op: "add", DN: entry.DN, Cause: fmt.Errorf("entry already exists")}
	}
	stored := cloneEntry(entry)
	if !stored.Has("entryUUID") {
		stored.Set("entryUUID", uuid.NewString())
	}
	now := generalizedTime(time.Now())
	stored.Set("createTimestamp", now)
	stored.Set("modifyTimestamp", now)
	m.entries[key] = stored
	return cloneEntry(stored), nil
}

// Modify implements Interface, applying add/delete/replace in order.
func (m *Memory) Modify(_ context.Context, dn string, mods []Modification) (*Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := normalizeDN(dn)
	e, ok := m.entries[key]
	if !ok {
		return nil, errNoSuchObject
	}

	for _, mod := range mods {
		switch mod.Op {
		case ModAdd:
			e.Attributes[mod.Attribute] = append(e.Attributes[mod.Attribute], mod.Values...)
		case ModDelete:
			applyDelete(e, mod)
		case ModReplace:
			e.Set(mod.Attribute, mod.Values...)
		}
	}
	e.Set("modifyTimestamp", generalizedTime(time.Now()))

	return cloneEntry(e), nil
}

func applyDelete(e *Entry, mod Modification) {
	if len(mod.Values) == 0 {
		delete(e.Attributes, mod.Attribute)
		return
	}
	remove := make(map[string]struct{}, len(mod.Values))
	for _, v := range mod.Values {
		remove[v] = struct{}{}
	}
	kept := e.Attributes[mod.Attribute][:0:0]
	for _, v := range e.Attributes[mod.Attribute] {
		if _, drop := remove[v]; !drop {
			kept = append(kept, v)
		}
	}
	e.Set(mod.Attribute, kept...)
}

// Delete implements Interface.
func (m *Memory) Delete(_ context.Context, dn string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := normalizeDN(dn)
	if _, ok := m.entries[key]; !ok {
		return errNoSuchObject
	}
	delete(m.entries, key)
	return nil
}

// DNs returns every distinguished name currently stored, sorted, for test
// assertions that need to enumerate directory state.
func (m *Memory) DNs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	dns := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		dns = append(dns, e.DN)
	}
	sort.Strings(dns)
	return dns
}

var _ Interface = (*Memory)(nil)
