package sty

import "stt/internal/ident"

// SymbolRef is the symbolic-stage reference: a nested type referred to
// by name (within the declaring library or in a dependency), or an
// anonymous type embedded inline. Symbolic references never carry
// identity; they exist only until the compile stage resolves them to
// semantic ids.
type SymbolRef struct {
	inline *Ty[SymbolRef]
	fqn    ident.TypeFqn // Lib is empty for same-library references
}

// InlineRef embeds an anonymous type directly.
func InlineRef(ty Ty[SymbolRef]) SymbolRef { return SymbolRef{inline: &ty} }

// NamedRef refers to a type declared in the same library.
func NamedRef(name ident.TypeName) SymbolRef {
	return SymbolRef{fqn: ident.TypeFqn{Name: name}}
}

// ExternRef refers to a type declared in a dependency library.
func ExternRef(lib ident.LibName, name ident.TypeName) SymbolRef {
	return SymbolRef{fqn: ident.TypeFqn{Lib: lib, Name: name}}
}

// Inline returns the embedded anonymous type, if any.
func (r SymbolRef) Inline() (*Ty[SymbolRef], bool) { return r.inline, r.inline != nil }

// IsExtern reports whether the reference names a dependency library.
func (r SymbolRef) IsExtern() bool { return r.inline == nil && r.fqn.Lib != "" }

// Name returns the referenced type name; empty for inline references.
func (r SymbolRef) Name() ident.TypeName { return r.fqn.Name }

// Lib returns the referenced library name; empty for same-library and
// inline references.
func (r SymbolRef) Lib() ident.LibName { return r.fqn.Lib }

func (r SymbolRef) String() string {
	if r.inline != nil {
		return "<inline>"
	}
	if r.fqn.Lib != "" {
		return r.fqn.String()
	}
	return r.fqn.Name.String()
}

func (SymbolRef) sealedRef() {}
