package directory

import (
	"context"

	"github.com/go-ldap/ldap/v3"
)

// Interface is the capability the backend consumes to reach a directory
// server: base-scope single-entry search, add, modify, and delete, with
// add/modify always surfacing the post-operation entry state. PoolInterface
// and the in-memory test directory (memory.go) both implement it.
type Interface interface {
	// SearchSingleEntry returns the sole entry matching filter under baseDN
	// with base scope, nil if none exists, or *TooManyResultsError if more
	// than one entry matches.
	SearchSingleEntry(ctx context.Context, baseDN, filter string, attrs []string) (*Entry, error)

	// Add commits a new entry and returns the post-read entry as the
	// directory actually stored it, operational attributes included.
	Add(ctx context.Context, entry *Entry) (*Entry, error)

	// Modify applies mods to dn and returns the post-read entry. Returns an
	// error for which directory.IsNoSuchObject is true if dn does not exist.
	Modify(ctx context.Context, dn string, mods []Modification) (*Entry, error)

	// Delete removes dn. Returns an error for which directory.IsNoSuchObject
	// is true if dn does not exist.
	Delete(ctx context.Context, dn string) error
}

// PoolInterface implements Interface over a Pool of *ldap.Conn connections
// to a real directory server, using github.com/go-ldap/ldap/v3 for wire
// encoding.
//
// go-ldap/v3's Add/Modify do not surface the response's controls to the
// caller, so the post-read request control attached to each request cannot
// be decoded back out of it here. Instead, the post-read entry is obtained
// by issuing the write and the read against the *same borrowed connection*
// inside one withConnection call, so nothing else can interleave on that
// connection between the two. The control is still attached to each request
// so a directory that does honor it sees the expected shape.
type PoolInterface struct {
	pool *Pool
}

// NewPoolInterface returns an Interface backed by pool.
func NewPoolInterface(pool *Pool) *PoolInterface {
	return &PoolInterface{pool: pool}
}

const objectClassFilter = "(objectclass=*)"

// allAttributes asks the directory for every user and operational attribute,
// so fetched and post-read entries include server-stamped state such as
// entryUUID and the create/modify timestamps.
var allAttributes = []string{"*", "+"}

// SearchSingleEntry issues a base-scope search constrained to exactly one
// result. Both the result-streaming shape and the size limit are pinned
// here, regardless of what a caller-supplied request shape asked for.
func (pi *PoolInterface) SearchSingleEntry(ctx context.Context, baseDN, filter string, attrs []string) (*Entry, error) {
	if len(attrs) == 0 {
		attrs = allAttributes
	}

	var result *ldap.SearchResult
	err := pi.pool.withConnection(ctx, func(conn *ldap.Conn) error {
		var searchErr error
		result, searchErr = conn.Search(singleEntryRequest(baseDN, filter, attrs))
		return searchErr
	})
	if err != nil {
		if IsNoSuchObject(err) {
			return nil, nil
		}
		return nil, asBackendError("search", baseDN, err)
	}

	switch len(result.Entries) {
	case 0:
		return nil, nil
	case 1:
		return fromLDAPEntry(result.Entries[0]), nil
	default:
		return nil, &TooManyResultsError{BaseDN: baseDN, Filter: filter, Count: len(result.Entries)}
	}
}

func singleEntryRequest(baseDN, filter string, attrs []string) *ldap.SearchRequest {
	return ldap.NewSearchRequest(
		baseDN,
		ldap.ScopeBaseObject,
		ldap.NeverDerefAliases,
		1, // SizeLimit: always exactly 1, regardless of what a caller-supplied shape asked for.
		0,
		false, // TypesOnly: return attribute values, not just attribute names.
		filter,
		attrs,
		nil,
	)
}

// Add submits an add request carrying a post-read control, then reads the
// committed entry back on the same connection before releasing it.
func (pi *PoolInterface) Add(ctx context.Context, entry *Entry) (*Entry, error) {
	req := ldap.NewAddRequest(entry.DN, []ldap.Control{newPostReadControl()})
	for name, values := range entry.Attributes {
		req.Attribute(name, values)
	}

	var postRead *Entry
	err := pi.pool.withConnection(ctx, func(conn *ldap.Conn) error {
		if addErr := conn.Add(req); addErr != nil {
			return addErr
		}
		res, searchErr := conn.Search(singleEntryRequest(entry.DN, objectClassFilter, allAttributes))
		if searchErr != nil {
			return searchErr
		}
		if len(res.Entries) == 1 {
			postRead = fromLDAPEntry(res.Entries[0])
		}
		return nil
	})
	if err != nil {
		return nil, asBackendError("add", entry.DN, err)
	}
	return postRead, nil
}

// Modify applies mods carrying a post-read control, then reads the
// committed entry back on the same connection before releasing it.
func (pi *PoolInterface) Modify(ctx context.Context, dn string, mods []Modification) (*Entry, error) {
	req := ldap.NewModifyRequest(dn, []ldap.Control{newPostReadControl()})
	for _, m := range mods {
		switch m.Op {
		case ModAdd:
			req.Add(m.Attribute, m.Values)
		case ModDelete:
			req.Delete(m.Attribute, m.Values)
		case ModReplace:
			req.Replace(m.Attribute, m.Values)
		}
	}

	var postRead *Entry
	err := pi.pool.withConnection(ctx, func(conn *ldap.Conn) error {
		if modErr := conn.Modify(req); modErr != nil {
			return modErr
		}
		res, searchErr := conn.Search(singleEntryRequest(dn, objectClassFilter, allAttributes))
		if searchErr != nil {
			return searchErr
		}
		if len(res.Entries) == 1 {
			postRead = fromLDAPEntry(res.Entries[0])
		}
		return nil
	})
	if err != nil {
		if IsNoSuchObject(err) {
			return nil, errNoSuchObject
		}
		return nil, asBackendError("modify", dn, err)
	}
	return postRead, nil
}

// Delete removes dn.
func (pi *PoolInterface) Delete(ctx context.Context, dn string) error {
	req := ldap.NewDelRequest(dn, nil)

	err := pi.pool.withConnection(ctx, func(conn *ldap.Conn) error {
		return conn.Del(req)
	})
	if err != nil {
		if IsNoSuchObject(err) {
			return errNoSuchObject
		}
		return asBackendError("delete", dn, err)
	}
	return nil
}

func asBackendError(op, dn string, err error) error {
	var code uint16
	if lerr, ok := err.(*ldap.Error); ok {
		code = lerr.ResultCode
	}
	return &BackendError{Op: op, DN: dn, ResultCode: code, Cause: err}
}

func fromLDAPEntry(e *ldap.Entry) *Entry {
	entry := NewEntry(e.DN)
	for _, a := range e.Attributes {
		entry.Set(a.Name, a.Values...)
	}
	return entry
}
