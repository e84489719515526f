package typelib

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"stt/internal/ident"
	"stt/internal/sty"
)

// TranspileError reports a failure of the symbolic build stage: a
// declaration referencing an unknown name, or a malformed shape.
type TranspileError struct {
	Lib    ident.LibName
	Type   ident.TypeName // declaration being transpiled
	Symbol string         // offending referenced name, if any
	Reason string
}

func (e *TranspileError) Error() string {
	if e.Symbol != "" {
		return fmt.Sprintf("transpiling %s.%s: unknown symbol %q", e.Lib, e.Type, e.Symbol)
	}
	return fmt.Sprintf("transpiling %s.%s: %s", e.Lib, e.Type, e.Reason)
}

// CompileError reports a failure of the compile stage: an unresolvable
// symbolic reference, a reference cycle, or a bound violation.
type CompileError struct {
	Lib    ident.LibName
	Type   ident.TypeName
	Symbol string            // unresolved symbol, if any
	Cycle  []ident.TypeName  // reference cycle, if any
	Reason string
}

func (e *CompileError) Error() string {
	switch {
	case len(e.Cycle) > 0:
		names := make([]string, len(e.Cycle))
		for i, n := range e.Cycle {
			names[i] = string(n)
		}
		return fmt.Sprintf("compiling %s: reference cycle %s", e.Lib, strings.Join(names, " -> "))
	case e.Symbol != "":
		return fmt.Sprintf("compiling %s.%s: unresolved reference to %q", e.Lib, e.Type, e.Symbol)
	default:
		return fmt.Sprintf("compiling %s.%s: %s", e.Lib, e.Type, e.Reason)
	}
}

// Decl is one symbolic type declaration.
type Decl struct {
	Name ident.TypeName
	Ty   sty.Ty[sty.SymbolRef]
}

// SymbolicLib is a named collection of symbolic type declarations plus
// the declared dependencies they may reference. It is the output of
// the symbolic build stage and the input of the compile stage; unlike
// a TypeLib it may still be inconsistent.
type SymbolicLib struct {
	name  ident.LibName
	deps  []Dependency
	decls []Decl // declaration order
}

// Name returns the library name.
func (s *SymbolicLib) Name() ident.LibName { return s.name }

// Decls returns the declarations in declaration order.
func (s *SymbolicLib) Decls() []Decl {
	out := make([]Decl, len(s.decls))
	copy(out, s.decls)
	return out
}

// NewSymbolicLib assembles a symbolic library from pre-built
// declarations. Shapes are validated; order is preserved and forward
// references are allowed, since the compile stage resolves in
// dependency order.
func NewSymbolicLib(name ident.LibName, deps []Dependency, decls []Decl) (*SymbolicLib, error) {
	var errs []error
	seen := map[ident.TypeName]bool{}
	for _, d := range decls {
		if seen[d.Name] {
			errs = append(errs, &TranspileError{Lib: name, Type: d.Name, Reason: "duplicate declaration"})
			continue
		}
		seen[d.Name] = true
		if err := validateShape(d.Ty); err != nil {
			errs = append(errs, &TranspileError{Lib: name, Type: d.Name, Reason: err.Error()})
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return &SymbolicLib{name: name, deps: sortDeps(deps), decls: decls}, nil
}

func sortDeps(deps []Dependency) []Dependency {
	out := make([]Dependency, len(deps))
	copy(out, deps)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func validateShape(ty sty.Ty[sty.SymbolRef]) error {
	if err := ty.Validate(); err != nil {
		return err
	}
	for _, ref := range ty.Refs() {
		if inline, ok := ref.Inline(); ok {
			if err := validateShape(*inline); err != nil {
				return err
			}
		}
	}
	return nil
}

// LibBuilder drives the symbolic build stage. Declarations are
// transpiled one by one; each may reference only already-transpiled
// types or declared dependencies. Errors accumulate so that all
// faulty declarations are reported in one pass.
type LibBuilder struct {
	name  ident.LibName
	deps  []Dependency
	decls []Decl
	names map[ident.TypeName]bool
	errs  []error
}

// NewLibBuilder starts building a library with the given name and
// dependencies.
func NewLibBuilder(name ident.LibName, deps ...Dependency) *LibBuilder {
	return &LibBuilder{
		name:  name,
		deps:  sortDeps(deps),
		names: make(map[ident.TypeName]bool),
	}
}

// Transpile registers one declaration and returns the builder for
// chaining. A reference to a name that is neither already transpiled
// nor exported by a dependency is a transpile error.
func (b *LibBuilder) Transpile(name ident.TypeName, ty sty.Ty[sty.SymbolRef]) *LibBuilder {
	if b.names[name] {
		b.errs = append(b.errs, &TranspileError{Lib: b.name, Type: name, Reason: "duplicate declaration"})
		return b
	}
	if err := validateShape(ty); err != nil {
		b.errs = append(b.errs, &TranspileError{Lib: b.name, Type: name, Reason: err.Error()})
		return b
	}
	b.checkRefs(name, ty)
	b.names[name] = true
	b.decls = append(b.decls, Decl{Name: name, Ty: ty})
	return b
}

func (b *LibBuilder) checkRefs(declName ident.TypeName, ty sty.Ty[sty.SymbolRef]) {
	for _, ref := range ty.Refs() {
		if inline, ok := ref.Inline(); ok {
			b.checkRefs(declName, *inline)
			continue
		}
		if ref.IsExtern() {
			dep, ok := b.depByName(ref.Lib())
			if !ok {
				b.errs = append(b.errs, &TranspileError{Lib: b.name, Type: declName, Symbol: ref.String()})
				continue
			}
			if _, ok := dep.symbols[ref.Name()]; !ok {
				b.errs = append(b.errs, &TranspileError{Lib: b.name, Type: declName, Symbol: ref.String()})
			}
			continue
		}
		if !b.names[ref.Name()] {
			b.errs = append(b.errs, &TranspileError{Lib: b.name, Type: declName, Symbol: ref.String()})
		}
	}
}

func (b *LibBuilder) depByName(name ident.LibName) (Dependency, bool) {
	for _, d := range b.deps {
		if d.Name == name {
			return d, true
		}
	}
	return Dependency{}, false
}

// CompileSymbols closes the symbolic stage, returning the accumulated
// transpile errors if any declaration was faulty.
func (b *LibBuilder) CompileSymbols() (*SymbolicLib, error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}
	return &SymbolicLib{name: b.name, deps: b.deps, decls: b.decls}, nil
}

// Compile runs both stages in one go.
func (b *LibBuilder) Compile() (*TypeLib, error) {
	sym, err := b.CompileSymbols()
	if err != nil {
		return nil, err
	}
	return sym.Compile()
}
