// Package resolve provides pure, stateless conversions between the octet-string
// values an LDAP entry carries and the native Go scalars a SCIM attribute exposes.
package resolve

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrMalformedValue is returned by a resolver when a directory value cannot be
// decoded into the target type, or a native value cannot be encoded back.
var ErrMalformedValue = errors.New("malformed attribute value")

// malformed wraps ErrMalformedValue with the offending value for diagnostics.
func malformed(kind, value string, cause error) error {
	return fmt.Errorf("%s: %q: %w: %w", kind, value, cause, ErrMalformedValue)
}

// Resolver converts between the LDAP wire representation (a string of octets)
// and a native Go value of type T. Both directions are pure and total for
// well-formed input; malformed input returns ErrMalformedValue.
type Resolver[T any] struct {
	name         string
	toInstance   func(string) (T, error)
	fromInstance func(T) (string, error)
}

// ToInstance decodes a directory value into the resolver's native type.
func (r Resolver[T]) ToInstance(value string) (T, error) {
	return r.toInstance(value)
}

// FromInstance encodes a native value back into the directory's wire form.
func (r Resolver[T]) FromInstance(value T) (string, error) {
	return r.fromInstance(value)
}

// String resolves the identity conversion: any well-formed octet string is a
// valid string instance and vice versa.
var String = Resolver[string]{
	name: "string",
	toInstance: func(v string) (string, error) {
		return v, nil
	},
	fromInstance: func(v string) (string, error) {
		return v, nil
	},
}

// Boolean resolves LDAP's canonical "TRUE"/"FALSE" literals (RFC 4517 §3.3.3)
// to and from a native bool.
var Boolean = Resolver[bool]{
	name: "boolean",
	toInstance: func(v string) (bool, error) {
		switch v {
		case "TRUE":
			return true, nil
		case "FALSE":
			return false, nil
		default:
			return false, malformed("boolean", v, errors.New("expected TRUE or FALSE"))
		}
	},
	fromInstance: func(v bool) (string, error) {
		if v {
			return "TRUE", nil
		}
		return "FALSE", nil
	},
}

// generalizedTimeLayout is RFC 4517's GeneralizedTime syntax as used by
// directory servers for operational timestamps (createTimestamp and friends).
const generalizedTimeLayout = "20060102150405Z"

// DateTime resolves LDAP GeneralizedTime values to and from time.Time, always
// normalizing to UTC.
var DateTime = Resolver[time.Time]{
	name: "date-time",
	toInstance: func(v string) (time.Time, error) {
		t, err := time.Parse(generalizedTimeLayout, v)
		if err != nil {
			return time.Time{}, malformed("date-time", v, err)
		}
		return t, nil
	},
	fromInstance: func(v time.Time) (string, error) {
		return v.UTC().Format(generalizedTimeLayout), nil
	},
}

// Binary resolves base64-encoded octet strings to and from a raw byte slice.
// SCIM transports binary attributes as base64; the directory stores raw
// octets, so the wire form exchanged with this resolver is already base64.
var Binary = Resolver[[]byte]{
	name: "binary",
	toInstance: func(v string) ([]byte, error) {
		b, err := base64.StdEncoding.DecodeString(v)
		if err != nil {
			return nil, malformed("binary", v, err)
		}
		return b, nil
	},
	fromInstance: func(v []byte) (string, error) {
		return base64.StdEncoding.EncodeToString(v), nil
	},
}

// Integer resolves LDAP INTEGER syntax values to and from int64, backing
// the descriptor model's "integer" data type.
var Integer = Resolver[int64]{
	name: "integer",
	toInstance: func(v string) (int64, error) {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, malformed("integer", v, err)
		}
		return n, nil
	},
	fromInstance: func(v int64) (string, error) {
		return strconv.FormatInt(v, 10), nil
	},
}
