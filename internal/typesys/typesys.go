// Package typesys implements the type system container: a bounded,
// completeness-checked, content-addressed collection of compiled types
// merged from multiple libraries, plus the builder assembling it.
package typesys

import (
	"fmt"
	"sort"
	"strings"

	"stt/internal/strictbin"
	"stt/internal/sty"
	"stt/internal/typelib"
)

// Hard ceilings of a type system. Exceeding either is a BoundsError,
// never a silent truncation.
const (
	MaxTypes = 1<<24 - 1 // member count ceiling
	MaxSize  = 1<<24 - 1 // canonical-serialized byte ceiling
	MaxLibs  = 255
)

// BoundsError reports a violated container ceiling.
type BoundsError struct {
	What  string
	Limit int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("type system %s exceeds the %d bound", e.What, e.Limit)
}

// TypeSystem is a complete set of compiled types: every semantic id
// referenced by any member is itself a member. Values are built by
// SystemBuilder.Finalize and immutable afterwards; all methods are
// read-only and safe for concurrent use.
type TypeSystem struct {
	libs  []typelib.LibId // ascending
	ids   []sty.SemId     // ascending
	types map[sty.SemId]sty.Ty[sty.SemId]
	size  int // canonical-serialized size accounting
}

// sysBaseSize is the serialized size of an empty system: one-byte
// library count plus three-byte type count.
const sysBaseSize = 1 + 3

func newTypeSystem() *TypeSystem {
	return &TypeSystem{types: make(map[sty.SemId]sty.Ty[sty.SemId]), size: sysBaseSize}
}

// insert adds one member, enforcing the count and size ceilings. It is
// package-internal: consumers never mutate a finalized system.
func (s *TypeSystem) insert(id sty.SemId, ty sty.Ty[sty.SemId]) error {
	if _, ok := s.types[id]; ok {
		return nil
	}
	if len(s.ids) >= MaxTypes {
		return &BoundsError{What: "type count", Limit: MaxTypes}
	}
	entrySize := sty.EncodedLen(ty)
	if s.size+entrySize > MaxSize {
		return &BoundsError{What: "serialized size", Limit: MaxSize}
	}
	s.size += entrySize
	s.types[id] = ty
	s.ids = append(s.ids, id)
	return nil
}

// addLib records one member library, accounting its id in the
// serialized-size budget. Callers bound the library count themselves.
func (s *TypeSystem) addLib(id typelib.LibId) {
	s.libs = append(s.libs, id)
	s.size += 32
}

func (s *TypeSystem) sortMembers() {
	sort.Slice(s.ids, func(i, j int) bool { return s.ids[i].Compare(s.ids[j]) < 0 })
	sort.Slice(s.libs, func(i, j int) bool { return s.libs[i].Compare(s.libs[j]) < 0 })
}

// CountTypes returns the number of member types.
func (s *TypeSystem) CountTypes() uint32 { return uint32(len(s.ids)) }

// CountLibs returns the number of member libraries.
func (s *TypeSystem) CountLibs() int { return len(s.libs) }

// Get returns the type with the given semantic id.
func (s *TypeSystem) Get(id sty.SemId) (sty.Ty[sty.SemId], bool) {
	ty, ok := s.types[id]
	return ty, ok
}

// Index returns the type with the given semantic id and panics when it
// is absent. Finalize guarantees completeness, so a miss here is a bug
// in the engine, not a user error.
func (s *TypeSystem) Index(id sty.SemId) sty.Ty[sty.SemId] {
	ty, ok := s.types[id]
	if !ok {
		panic(fmt.Sprintf("typesys: internal inconsistency: id %s absent from a finalized system", id))
	}
	return ty
}

// SemIds returns the member ids in ascending order.
func (s *TypeSystem) SemIds() []sty.SemId {
	out := make([]sty.SemId, len(s.ids))
	copy(out, s.ids)
	return out
}

// LibIds returns the member library ids in ascending order.
func (s *TypeSystem) LibIds() []typelib.LibId {
	out := make([]typelib.LibId, len(s.libs))
	copy(out, s.libs)
	return out
}

// Serialize returns the canonical byte form of the system.
func (s *TypeSystem) Serialize() []byte {
	w := strictbin.NewWriter()
	w.U8(uint8(len(s.libs)))
	for _, libId := range s.libs {
		w.Raw(libId[:])
	}
	w.U24(uint32(len(s.ids)))
	for _, id := range s.ids {
		sty.EncodeTo(w, s.types[id])
	}
	return w.Bytes()
}

// Deserialize reconstructs a system from its canonical byte form,
// recomputing every semantic id and re-checking bounds, ordering and
// completeness.
func Deserialize(data []byte) (*TypeSystem, error) {
	r := strictbin.NewReader(data)
	sys := newTypeSystem()
	libCount, err := r.U8()
	if err != nil {
		return nil, err
	}
	var prevLib typelib.LibId
	for i := range libCount {
		b, err := r.Raw(32, "library id")
		if err != nil {
			return nil, err
		}
		var libId typelib.LibId
		copy(libId[:], b)
		if i > 0 && prevLib.Compare(libId) >= 0 {
			return nil, &strictbin.DecodeError{What: "system libraries out of ascending id order"}
		}
		prevLib = libId
		sys.addLib(libId)
	}
	count, err := r.U24()
	if err != nil {
		return nil, err
	}
	var prev sty.SemId
	for i := range count {
		ty, err := sty.Decode(r)
		if err != nil {
			return nil, err
		}
		id := sty.ComputeSemId(ty)
		if i > 0 && prev.Compare(id) >= 0 {
			return nil, &strictbin.DecodeError{What: "system members out of ascending id order"}
		}
		prev = id
		if err := sys.insert(id, ty); err != nil {
			return nil, &strictbin.DecodeError{What: err.Error()}
		}
	}
	if err := r.Done(); err != nil {
		return nil, err
	}
	if missing := missingRefs(sys.types); len(missing) > 0 {
		return nil, &strictbin.DecodeError{What: fmt.Sprintf("incomplete system: %d dangling references", len(missing))}
	}
	return sys, nil
}

// String renders the system as a line-oriented data definition
// listing preceded by an identity header.
func (s *TypeSystem) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "typesys -- %s\n\n", s.Id())
	for _, id := range s.ids {
		fmt.Fprintf(&sb, "data %s :: %s\n", id, s.types[id])
	}
	return sb.String()
}

// missingRefs collects every referenced id absent from the member set,
// ascending, deduplicated.
func missingRefs(types map[sty.SemId]sty.Ty[sty.SemId]) []sty.SemId {
	seen := map[sty.SemId]bool{}
	var missing []sty.SemId
	for _, ty := range types {
		for _, ref := range ty.Refs() {
			if _, ok := types[ref]; !ok && !seen[ref] {
				seen[ref] = true
				missing = append(missing, ref)
			}
		}
	}
	sort.Slice(missing, func(i, j int) bool { return missing[i].Compare(missing[j]) < 0 })
	return missing
}
