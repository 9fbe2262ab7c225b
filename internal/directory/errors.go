package directory

import (
	"errors"
	"fmt"

	"github.com/go-ldap/ldap/v3"
)

// defunctCodes is the fixed set of LDAP result codes treated as fatal for
// the connection that produced them: the connection is discarded rather
// than returned to the idle set.
var defunctCodes = map[uint16]struct{}{
	ldap.LDAPResultOperationsError:    {},
	ldap.LDAPResultProtocolError:      {},
	ldap.LDAPResultBusy:               {},
	ldap.LDAPResultUnavailable:        {},
	ldap.LDAPResultUnwillingToPerform: {},
	ldap.LDAPResultOther:              {},
	ldap.LDAPResultServerDown:         {},
	ldap.LDAPResultLocalError:         {},
	ldap.LDAPResultEncodingError:      {},
	ldap.LDAPResultDecodingError:      {},
	ldap.LDAPResultNoMemory:           {},
	ldap.LDAPResultConnectError:       {},
}

// isDefunct reports whether err, if it is (or wraps) an *ldap.Error, carries
// a result code in defunctCodes. A nil error, or an error that isn't an LDAP
// result code at all (e.g. context cancellation), is never defunct.
func isDefunct(err error) bool {
	if err == nil {
		return false
	}
	var lerr *ldap.Error
	if !errors.As(err, &lerr) {
		return false
	}
	_, defunct := defunctCodes[lerr.ResultCode]
	return defunct
}

// TooManyResultsError is returned by the single-entry search helper when
// more than one entry matches.
type TooManyResultsError struct {
	BaseDN string
	Filter string
	Count  int
}

func (e *TooManyResultsError) Error() string {
	return fmt.Sprintf("directory: search under %q with filter %q matched %d entries, expected at most 1",
		e.BaseDN, e.Filter, e.Count)
}

// BackendError wraps an LDAP result code that the backend could not
// translate into a more specific outcome. Callers pick it out with
// errors.As and inspect ResultCode.
type BackendError struct {
	Op         string
	DN         string
	ResultCode uint16
	Cause      error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("directory: %s %q failed: %v", e.Op, e.DN, e.Cause)
}

func (e *BackendError) Unwrap() error {
	return e.Cause
}

// IsDefunct reports whether this backend error was caused by a
// connection-fatal LDAP result code.
func (e *BackendError) IsDefunct() bool {
	return isDefunct(e.Cause)
}

// errNoSuchObject is the sentinel internal Interface implementations return
// from Modify/Delete when the target DN does not exist, letting the backend
// translate it into the distinguished-null result (GET/PUT) or false
// (DELETE) without inspecting LDAP result codes outside this package.
var errNoSuchObject = errors.New("directory: no such object")

// IsNoSuchObject reports whether err indicates the operation's target entry
// does not exist.
func IsNoSuchObject(err error) bool {
	if errors.Is(err, errNoSuchObject) {
		return true
	}
	var lerr *ldap.Error
	if errors.As(err, &lerr) {
		return lerr.ResultCode == ldap.LDAPResultNoSuchObject
	}
	return false
}
