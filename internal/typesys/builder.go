package typesys

import (
	"fmt"
	"sort"

	"stt/internal/ident"
	"stt/internal/sty"
	"stt/internal/typelib"
)

// ImportError reports that two imported entries share a semantic id
// but disagree structurally. Ids are collision-free by construction,
// so this signals a bug in a producer or in the identity scheme
// itself, not ordinary bad input.
type ImportError struct {
	Lib ident.LibName
	Id  sty.SemId
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("internal inconsistency: library %s defines id %s with a structure differing from an already imported type", e.Lib, e.Id)
}

// UnresolvedRefError reports one semantic id referenced by the merged
// system but provided by none of the imported libraries.
type UnresolvedRefError struct {
	Ref sty.SemId
	By  []sty.SemId // referencing members, ascending
}

func (e *UnresolvedRefError) Error() string {
	if len(e.By) > 0 {
		return fmt.Sprintf("type %s references %s which is not known to the system", e.By[0], e.Ref)
	}
	return fmt.Sprintf("reference to %s is not known to the system", e.Ref)
}

// DepError reports a declared library dependency that was never
// imported.
type DepError struct {
	Lib ident.LibName
	Dep typelib.Dependency
}

func (e *DepError) Error() string {
	return fmt.Sprintf("library %s depends on %s which was not imported", e.Lib, e.Dep)
}

// SymTy couples a compiled type with its symbolic provenance: the name
// it was declared under and every library that declared it. Types with
// identical structure defined by independent authors collapse to one
// SymTy with multiple origins.
type SymTy struct {
	Name ident.TypeName  // empty for unnamed types
	Orig []ident.LibName // ordered set, may be empty
	Ty   sty.Ty[sty.SemId]
}

// SystemBuilder accumulates compiled libraries and merges them into
// one complete TypeSystem. It is single-owner during assembly and is
// spent after Finalize.
type SystemBuilder struct {
	sys     *TypeSystem
	symbols map[sty.SemId]*SymTy
	libs    map[typelib.LibId]ident.LibName
	deps    []pendingDep
	done    bool
}

type pendingDep struct {
	lib ident.LibName
	dep typelib.Dependency
}

// NewSystemBuilder returns an empty builder.
func NewSystemBuilder() *SystemBuilder {
	return &SystemBuilder{
		sys:     newTypeSystem(),
		symbols: make(map[sty.SemId]*SymTy),
		libs:    make(map[typelib.LibId]ident.LibName),
	}
}

// Import merges one compiled library into the builder. Every entry is
// checked against already imported ones: the same id with a different
// structure is an ImportError; the same id with the same structure is
// deduplicated, with the library recorded as an additional origin.
// Bound ceilings are enforced per inserted entry.
func (b *SystemBuilder) Import(lib *typelib.TypeLib) error {
	if b.done {
		return fmt.Errorf("system builder already finalized")
	}
	libId := lib.Id()
	if _, ok := b.libs[libId]; ok {
		return nil
	}
	if len(b.libs) >= MaxLibs {
		return &BoundsError{What: "library count", Limit: MaxLibs}
	}
	// Check the whole library against the ceilings before touching the
	// system, so a failed import leaves the builder as it was.
	newCount := len(b.sys.ids)
	newSize := b.sys.size + 32 // the library id itself
	var add []typelib.Entry
	for _, entry := range lib.Entries() {
		if existing, ok := b.sys.Get(entry.Id); ok {
			if !sty.Equal(existing, entry.Ty) {
				return &ImportError{Lib: lib.Name(), Id: entry.Id}
			}
			continue
		}
		if newCount >= MaxTypes {
			return &BoundsError{What: "type count", Limit: MaxTypes}
		}
		newCount++
		newSize += sty.EncodedLen(entry.Ty)
		if newSize > MaxSize {
			return &BoundsError{What: "serialized size", Limit: MaxSize}
		}
		add = append(add, entry)
	}
	for _, entry := range add {
		if err := b.sys.insert(entry.Id, entry.Ty); err != nil {
			return err
		}
	}
	for _, entry := range lib.Entries() {
		b.recordSymbol(lib.Name(), entry)
	}
	b.libs[libId] = lib.Name()
	b.sys.addLib(libId)
	for _, dep := range lib.Dependencies() {
		b.deps = append(b.deps, pendingDep{lib: lib.Name(), dep: dep})
	}
	return nil
}

func (b *SystemBuilder) recordSymbol(lib ident.LibName, entry typelib.Entry) {
	sym, ok := b.symbols[entry.Id]
	if !ok {
		sym = &SymTy{Ty: entry.Ty}
		b.symbols[entry.Id] = sym
	}
	if sym.Name == "" && len(entry.Names) > 0 {
		sym.Name = entry.Names[0]
	}
	if len(entry.Names) > 0 {
		for _, o := range sym.Orig {
			if o == lib {
				return
			}
		}
		sym.Orig = append(sym.Orig, lib)
	}
}

// Symbols returns the provenance record for the given id, if any.
func (b *SystemBuilder) Symbols(id sty.SemId) (*SymTy, bool) {
	sym, ok := b.symbols[id]
	return sym, ok
}

// Finalize runs the completeness scan over the union of all imported
// types and returns the closed system, or the full ordered list of
// resolution errors so a caller can report every problem at once.
func (b *SystemBuilder) Finalize() (*TypeSystem, []error) {
	var errs []error
	for _, pd := range b.deps {
		if _, ok := b.libs[pd.dep.Id]; !ok {
			errs = append(errs, &DepError{Lib: pd.lib, Dep: pd.dep})
		}
	}
	for _, ref := range missingRefs(b.sys.types) {
		errs = append(errs, &UnresolvedRefError{Ref: ref, By: b.referencing(ref)})
	}
	if len(errs) > 0 {
		return nil, errs
	}
	b.done = true
	b.sys.sortMembers()
	return b.sys, nil
}

func (b *SystemBuilder) referencing(ref sty.SemId) []sty.SemId {
	var by []sty.SemId
	for id, ty := range b.sys.types {
		for _, r := range ty.Refs() {
			if r == ref {
				by = append(by, id)
				break
			}
		}
	}
	sort.Slice(by, func(i, j int) bool { return by[i].Compare(by[j]) < 0 })
	return by
}
