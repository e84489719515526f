package typelib

import (
	"sort"

	"stt/internal/ident"
	"stt/internal/sty"
)

// maxLibTypes bounds the number of compiled entries of one library.
const maxLibTypes = 1<<24 - 1

// Compile resolves every symbolic reference to a semantic id and
// returns the immutable compiled library. Resolution runs in
// dependency order, not declaration order: the id of a referenced type
// is always computed before the id of the referencing one. A reference
// cycle between named declarations therefore cannot be compiled and is
// reported as a CompileError carrying the cycle.
func (s *SymbolicLib) Compile() (*TypeLib, error) {
	c := &compiler{
		sym:      s,
		byName:   make(map[ident.TypeName]int, len(s.decls)),
		resolved: make(map[ident.TypeName]sty.SemId),
		visiting: make(map[ident.TypeName]bool),
		byId:     make(map[sty.SemId]int),
	}
	for i, d := range s.decls {
		c.byName[d.Name] = i
	}
	for _, d := range s.decls {
		if _, err := c.resolveDecl(d.Name); err != nil {
			return nil, err
		}
	}
	// Record declared names on their entries, in declaration order.
	for _, d := range s.decls {
		c.nameEntry(c.resolved[d.Name], d.Name)
	}
	sort.Slice(c.entries, func(i, j int) bool {
		return c.entries[i].Id.Compare(c.entries[j].Id) < 0
	})
	return &TypeLib{name: s.name, deps: s.deps, entries: c.entries}, nil
}

type compiler struct {
	sym      *SymbolicLib
	byName   map[ident.TypeName]int
	resolved map[ident.TypeName]sty.SemId
	visiting map[ident.TypeName]bool
	stack    []ident.TypeName

	entries []Entry
	byId    map[sty.SemId]int
}

func (c *compiler) resolveDecl(name ident.TypeName) (sty.SemId, error) {
	if id, ok := c.resolved[name]; ok {
		return id, nil
	}
	if c.visiting[name] {
		cycle := append(append([]ident.TypeName{}, c.stack...), name)
		return sty.SemId{}, &CompileError{Lib: c.sym.name, Cycle: cycle}
	}
	c.visiting[name] = true
	c.stack = append(c.stack, name)
	defer func() {
		delete(c.visiting, name)
		c.stack = c.stack[:len(c.stack)-1]
	}()

	decl := c.sym.decls[c.byName[name]]
	ty, err := c.resolveTy(name, decl.Ty)
	if err != nil {
		return sty.SemId{}, err
	}
	id, err := c.addEntry(ty)
	if err != nil {
		return sty.SemId{}, err
	}
	c.resolved[name] = id
	return id, nil
}

func (c *compiler) resolveTy(declName ident.TypeName, ty sty.Ty[sty.SymbolRef]) (sty.Ty[sty.SemId], error) {
	return sty.Translate(ty, func(ref sty.SymbolRef) (sty.SemId, error) {
		return c.resolveRef(declName, ref)
	})
}

func (c *compiler) resolveRef(declName ident.TypeName, ref sty.SymbolRef) (sty.SemId, error) {
	if inline, ok := ref.Inline(); ok {
		ty, err := c.resolveTy(declName, *inline)
		if err != nil {
			return sty.SemId{}, err
		}
		return c.addEntry(ty)
	}
	if ref.IsExtern() {
		for _, dep := range c.sym.deps {
			if dep.Name != ref.Lib() {
				continue
			}
			if id, ok := dep.symbols[ref.Name()]; ok {
				return id, nil
			}
			break
		}
		return sty.SemId{}, &CompileError{Lib: c.sym.name, Type: declName, Symbol: ref.String()}
	}
	if _, ok := c.byName[ref.Name()]; !ok {
		return sty.SemId{}, &CompileError{Lib: c.sym.name, Type: declName, Symbol: ref.String()}
	}
	return c.resolveDecl(ref.Name())
}

// addEntry registers a compiled type, deduplicating by id, and returns
// its semantic id.
func (c *compiler) addEntry(ty sty.Ty[sty.SemId]) (sty.SemId, error) {
	id := sty.ComputeSemId(ty)
	if _, ok := c.byId[id]; ok {
		return id, nil
	}
	if len(c.entries) >= maxLibTypes {
		return sty.SemId{}, &CompileError{Lib: c.sym.name, Reason: "number of library types exceeds 2^24-1"}
	}
	c.byId[id] = len(c.entries)
	c.entries = append(c.entries, Entry{Id: id, Ty: ty})
	return id, nil
}

func (c *compiler) nameEntry(id sty.SemId, name ident.TypeName) {
	e := &c.entries[c.byId[id]]
	for _, n := range e.Names {
		if n == name {
			return
		}
	}
	e.Names = append(e.Names, name)
}
