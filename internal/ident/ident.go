// Package ident implements the identifier model shared by the whole type
// engine: ASCII identifiers for type and library names, fully qualified
// type names, and the sizing descriptors used by collection types.
package ident

import (
	"fmt"
	"strings"
)

// MaxLen is the maximum byte length of an identifier.
const MaxLen = 32

// InvalidIdentError reports a malformed identifier.
type InvalidIdentError struct {
	Ident  string
	Reason string
}

func (e *InvalidIdentError) Error() string {
	return fmt.Sprintf("invalid identifier %q: %s", e.Ident, e.Reason)
}

// Ident is a validated ASCII identifier: 1..32 bytes, first character
// alphabetic, the rest alphanumeric or underscore.
type Ident string

// NewIdent validates s and returns it as an Ident.
func NewIdent(s string) (Ident, error) {
	if len(s) == 0 {
		return "", &InvalidIdentError{Ident: s, Reason: "empty"}
	}
	if len(s) > MaxLen {
		return "", &InvalidIdentError{Ident: s, Reason: fmt.Sprintf("longer than %d bytes", MaxLen)}
	}
	c := s[0]
	if !isAlpha(c) {
		return "", &InvalidIdentError{Ident: s, Reason: fmt.Sprintf("must start with an alphabetic character, not %q", c)}
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if !isAlpha(c) && !isDigit(c) && c != '_' {
			return "", &InvalidIdentError{Ident: s, Reason: fmt.Sprintf("contains invalid character %q", c)}
		}
	}
	return Ident(s), nil
}

// MustIdent is like NewIdent but panics on invalid input. Use only for
// literals known to be well formed.
func MustIdent(s string) Ident {
	id, err := NewIdent(s)
	if err != nil {
		panic(err)
	}
	return id
}

func (i Ident) String() string { return string(i) }

func isAlpha(c byte) bool { return c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' }
func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// LibName names a type library.
type LibName = Ident

// TypeName names a type within a library.
type TypeName = Ident

// TypeFqn is a fully qualified type name: library name plus type name.
// It exists only in the symbolic stage and never contributes to identity.
type TypeFqn struct {
	Lib  LibName
	Name TypeName
}

// NewTypeFqn parses a "lib.name" string.
func NewTypeFqn(s string) (TypeFqn, error) {
	lib, name, ok := strings.Cut(s, ".")
	if !ok {
		return TypeFqn{}, &InvalidIdentError{Ident: s, Reason: "fully qualified name must be of the form lib.name"}
	}
	l, err := NewIdent(lib)
	if err != nil {
		return TypeFqn{}, err
	}
	n, err := NewIdent(name)
	if err != nil {
		return TypeFqn{}, err
	}
	return TypeFqn{Lib: l, Name: n}, nil
}

func (f TypeFqn) String() string { return string(f.Lib) + "." + string(f.Name) }
