// Package typelib implements type libraries: the symbolic
// (name-bearing) and compiled (id-bearing) forms of a named collection
// of type definitions, and the two-stage pipeline turning the former
// into the latter.
package typelib

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"stt/internal/ident"
	"stt/internal/strictbin"
	"stt/internal/sty"
)

// libIdTag is the domain-separation tag of the library id space.
const libIdTag = "urn:ubideco:strict-types:lib:v02"

// libIdHRI is the human-readable prefix of rendered library ids.
const libIdHRI = "stl"

// LibId is the 32-byte content hash identifying one compiled library.
type LibId [32]byte

// ParseLibId parses a rendered library id, verifying its checksum.
func ParseLibId(s string) (LibId, error) {
	payload, err := sty.ParseURN(libIdHRI, s)
	return LibId(payload), err
}

// Compare orders ids bytewise, ascending.
func (id LibId) Compare(other LibId) int { return bytes.Compare(id[:], other[:]) }

func (id LibId) String() string { return sty.RenderURN(libIdHRI, id, true) }

// URN renders the id with or without its mnemonic suffix.
func (id LibId) URN(withMnemonic bool) string { return sty.RenderURN(libIdHRI, id, withMnemonic) }

// Dependency declares that a library builds on types of another
// library. The symbol map travels with the value in memory only; it is
// not part of the dependency identity.
type Dependency struct {
	Id   LibId
	Name ident.LibName

	symbols map[ident.TypeName]sty.SemId
}

func (d Dependency) String() string { return fmt.Sprintf("%s -- %s", d.Name, d.Id) }

// Entry is one compiled type of a library: the type definition plus
// every name it was declared under. Unnamed entries come from inline
// type expressions flattened out by the compile stage; multiple names
// occur when structurally identical declarations collapse to one id.
type Entry struct {
	Names []ident.TypeName // ordered, may be empty
	Id    sty.SemId
	Ty    sty.Ty[sty.SemId]
}

// TypeLib is a compiled type library. Immutable after compilation;
// every nested reference is a semantic id.
type TypeLib struct {
	name    ident.LibName
	deps    []Dependency // sorted by name
	entries []Entry      // sorted by id, ascending
}

// Name returns the library name.
func (l *TypeLib) Name() ident.LibName { return l.name }

// Dependencies returns the declared dependencies, sorted by name.
func (l *TypeLib) Dependencies() []Dependency {
	out := make([]Dependency, len(l.deps))
	copy(out, l.deps)
	return out
}

// Entries returns all compiled types in ascending id order.
func (l *TypeLib) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// CountTypes returns the number of compiled types in the library.
func (l *TypeLib) CountTypes() int { return len(l.entries) }

// Get returns the type with the given id.
func (l *TypeLib) Get(id sty.SemId) (sty.Ty[sty.SemId], bool) {
	i := sort.Search(len(l.entries), func(i int) bool { return l.entries[i].Id.Compare(id) >= 0 })
	if i < len(l.entries) && l.entries[i].Id == id {
		return l.entries[i].Ty, true
	}
	return sty.Ty[sty.SemId]{}, false
}

// SymbolsMap returns the name-to-id mapping of named entries, which is
// what dependent libraries resolve extern references against.
func (l *TypeLib) SymbolsMap() map[ident.TypeName]sty.SemId {
	m := make(map[ident.TypeName]sty.SemId, len(l.entries))
	for _, e := range l.entries {
		for _, name := range e.Names {
			m[name] = e.Id
		}
	}
	return m
}

// ToDependency makes the library importable as a dependency of another
// library under compilation.
func (l *TypeLib) ToDependency() Dependency {
	return Dependency{Id: l.Id(), Name: l.name, symbols: l.SymbolsMap()}
}

// Id computes the library id over the canonical serialization.
func (l *TypeLib) Id() LibId {
	h := sty.NewTaggedHasher(libIdTag)
	h.Write(l.Serialize())
	var id LibId
	copy(id[:], h.Sum(nil))
	return id
}

// Serialize returns the canonical byte form of the library.
func (l *TypeLib) Serialize() []byte {
	w := strictbin.NewWriter()
	w.TinyStr(string(l.name))
	w.U8(uint8(len(l.deps)))
	for _, d := range l.deps {
		w.Raw(d.Id[:])
		w.TinyStr(string(d.Name))
	}
	w.U24(uint32(len(l.entries)))
	for _, e := range l.entries {
		w.U8(uint8(len(e.Names)))
		for _, name := range e.Names {
			w.TinyStr(string(name))
		}
		sty.EncodeTo(w, e.Ty)
	}
	return w.Bytes()
}

// Deserialize reconstructs a library from its canonical byte form,
// recomputing and re-verifying every semantic id.
func Deserialize(data []byte) (*TypeLib, error) {
	r := strictbin.NewReader(data)
	name, err := r.TinyStr()
	if err != nil {
		return nil, err
	}
	libName, err := ident.NewIdent(name)
	if err != nil {
		return nil, &strictbin.DecodeError{What: err.Error()}
	}
	depCount, err := r.U8()
	if err != nil {
		return nil, err
	}
	deps := make([]Dependency, depCount)
	for i := range deps {
		idBytes, err := r.Raw(32, "library id")
		if err != nil {
			return nil, err
		}
		var libId LibId
		copy(libId[:], idBytes)
		depName, err := r.TinyStr()
		if err != nil {
			return nil, err
		}
		dn, err := ident.NewIdent(depName)
		if err != nil {
			return nil, &strictbin.DecodeError{What: err.Error()}
		}
		deps[i] = Dependency{Id: libId, Name: dn}
	}
	count, err := r.U24()
	if err != nil {
		return nil, err
	}
	// The count is untrusted; entries grow as they decode so a crafted
	// header cannot force a huge allocation up front.
	var entries []Entry
	var prev sty.SemId
	for i := range count {
		nameCount, err := r.U8()
		if err != nil {
			return nil, err
		}
		var names []ident.TypeName
		for range nameCount {
			s, err := r.TinyStr()
			if err != nil {
				return nil, err
			}
			name, err := ident.NewIdent(s)
			if err != nil {
				return nil, &strictbin.DecodeError{What: err.Error()}
			}
			names = append(names, name)
		}
		ty, err := sty.Decode(r)
		if err != nil {
			return nil, err
		}
		id := sty.ComputeSemId(ty)
		if i > 0 && prev.Compare(id) >= 0 {
			return nil, &strictbin.DecodeError{What: "library entries out of ascending id order"}
		}
		prev = id
		entries = append(entries, Entry{Names: names, Id: id, Ty: ty})
	}
	if err := r.Done(); err != nil {
		return nil, err
	}
	return &TypeLib{name: libName, deps: deps, entries: entries}, nil
}

// String renders the library as a line-oriented data definition
// listing, one entry per compiled type in ascending id order.
func (l *TypeLib) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "typelib %s -- %s\n\n", l.name, l.Id())
	for _, d := range l.deps {
		fmt.Fprintf(&sb, "import %s\n", d)
	}
	if len(l.deps) > 0 {
		sb.WriteByte('\n')
	}
	for _, e := range l.entries {
		if len(e.Names) == 0 {
			fmt.Fprintf(&sb, "data %s :: %s\n", e.Id, e.Ty)
			continue
		}
		for _, name := range e.Names {
			fmt.Fprintf(&sb, "data %s :: %s\n", name, e.Ty)
		}
	}
	return sb.String()
}
