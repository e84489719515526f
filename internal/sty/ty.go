// Package sty defines the structural type algebra: the closed set of
// type composition kinds, generic over how nested types are referenced
// (by semantic id once compiled, by symbol while symbolic), plus the
// semantic identity of a compiled type.
package sty

import (
	"fmt"

	"stt/internal/ident"
)

// Ref abstracts how a Ty node refers to a nested type. The two
// implementations are SemId (compiled stage) and SymbolRef (symbolic
// stage); the set is closed.
type Ref interface {
	fmt.Stringer
	sealedRef()
}

// Kind enumerates the structural composition kinds. The set is closed;
// kind codes are part of the canonical encoding and must never change.
type Kind uint8

const (
	KindPrimitive Kind = 0x00
	KindEnum      Kind = 0x01
	KindUnion     Kind = 0x02
	KindTuple     Kind = 0x03
	KindStruct    Kind = 0x04
	KindArray     Kind = 0x05
	KindList      Kind = 0x06
	KindSet       Kind = 0x07
	KindMap       Kind = 0x08
	KindOption    Kind = 0x09
	KindUniChar   Kind = 0x0A
)

func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindEnum:
		return "enum"
	case KindUnion:
		return "union"
	case KindTuple:
		return "tuple"
	case KindStruct:
		return "struct"
	case KindArray:
		return "array"
	case KindList:
		return "list"
	case KindSet:
		return "set"
	case KindMap:
		return "map"
	case KindOption:
		return "option"
	case KindUniChar:
		return "char"
	default:
		return fmt.Sprintf("kind#%02X", uint8(k))
	}
}

// MaxNodeWidth bounds the number of fields, variants or tuple elements
// of a single node.
const MaxNodeWidth = 255

// Variant is one case of an enumeration: a name bound to a tag value.
type Variant struct {
	Name ident.Ident
	Tag  uint8
}

func (v Variant) String() string { return fmt.Sprintf("%s:%d", v.Name, v.Tag) }

// Field is a named reference to a nested type, used by struct and
// union nodes. Union tags are implicit field positions.
type Field[R Ref] struct {
	Name ident.Ident
	Ref  R
}

// Ty is one structural type description node. Values are immutable
// after construction; nested types are held only as references of type
// R, never as embedded nodes, so arbitrary (even cyclic) type graphs
// stay finite trees in memory.
type Ty[R Ref] struct {
	kind     Kind
	prim     Primitive
	variants []Variant  // enum
	fields   []Field[R] // struct, union
	tuple    []R
	elem     R      // array, list, set, option; map value
	key      Primitive
	arrayLen uint16
	sizing   ident.Sizing
}

// Prim returns a primitive type node.
func Prim[R Ref](p Primitive) Ty[R] { return Ty[R]{kind: KindPrimitive, prim: p} }

// Enum returns an enumeration over the given variants.
func Enum[R Ref](variants ...Variant) Ty[R] {
	return Ty[R]{kind: KindEnum, variants: variants}
}

// Union returns a tagged union; the tag of each case is its position.
func Union[R Ref](fields ...Field[R]) Ty[R] {
	return Ty[R]{kind: KindUnion, fields: fields}
}

// Tuple returns an ordered unnamed composition.
func Tuple[R Ref](refs ...R) Ty[R] { return Ty[R]{kind: KindTuple, tuple: refs} }

// Struct returns an ordered named composition.
func Struct[R Ref](fields ...Field[R]) Ty[R] {
	return Ty[R]{kind: KindStruct, fields: fields}
}

// Array returns a fixed-length array of elem.
func Array[R Ref](elem R, length uint16) Ty[R] {
	return Ty[R]{kind: KindArray, elem: elem, arrayLen: length}
}

// List returns a variable-length ordered collection of elem.
func List[R Ref](elem R, sizing ident.Sizing) Ty[R] {
	return Ty[R]{kind: KindList, elem: elem, sizing: sizing}
}

// Set returns a variable-length ordered collection of unique elems.
func Set[R Ref](elem R, sizing ident.Sizing) Ty[R] {
	return Ty[R]{kind: KindSet, elem: elem, sizing: sizing}
}

// Map returns a mapping from a primitive key to val. Only primitive
// keys are supported to keep key ordering canonical.
func Map[R Ref](key Primitive, val R, sizing ident.Sizing) Ty[R] {
	return Ty[R]{kind: KindMap, key: key, elem: val, sizing: sizing}
}

// Option returns an optional wrapper around elem.
func Option[R Ref](elem R) Ty[R] { return Ty[R]{kind: KindOption, elem: elem} }

// UniChar returns the unicode character scalar.
func UniChar[R Ref]() Ty[R] { return Ty[R]{kind: KindUniChar} }

// UnitTy is the empty tuple, used for dataless union cases.
func UnitTy[R Ref]() Ty[R] { return Prim[R](PrimUnit) }

// Kind returns the composition kind of the node.
func (t Ty[R]) Kind() Kind { return t.kind }

// Prim returns the primitive code; valid only for KindPrimitive.
func (t Ty[R]) Prim() Primitive { return t.prim }

// Variants returns enum variants; valid only for KindEnum.
func (t Ty[R]) Variants() []Variant { return t.variants }

// Fields returns named fields; valid for KindStruct and KindUnion.
func (t Ty[R]) Fields() []Field[R] { return t.fields }

// Tuple returns tuple element references; valid only for KindTuple.
func (t Ty[R]) Tuple() []R { return t.tuple }

// Elem returns the single nested reference of array, list, set, option
// and map (value side) nodes.
func (t Ty[R]) Elem() R { return t.elem }

// Key returns the map key primitive; valid only for KindMap.
func (t Ty[R]) Key() Primitive { return t.key }

// ArrayLen returns the fixed length; valid only for KindArray.
func (t Ty[R]) ArrayLen() uint16 { return t.arrayLen }

// Sizing returns the collection sizing; valid for list, set and map.
func (t Ty[R]) Sizing() ident.Sizing { return t.sizing }

// Refs returns every nested type reference of the node in its
// canonical (declaration) order.
func (t Ty[R]) Refs() []R {
	switch t.kind {
	case KindUnion, KindStruct:
		refs := make([]R, len(t.fields))
		for i, f := range t.fields {
			refs[i] = f.Ref
		}
		return refs
	case KindTuple:
		refs := make([]R, len(t.tuple))
		copy(refs, t.tuple)
		return refs
	case KindArray, KindList, KindSet, KindMap, KindOption:
		return []R{t.elem}
	default:
		return nil
	}
}

// Validate checks that the node is a legal type declaration: known
// kind and primitive codes, node width within MaxNodeWidth, unique
// names and tags.
func (t Ty[R]) Validate() error {
	switch t.kind {
	case KindPrimitive:
		if !t.prim.IsValid() {
			return fmt.Errorf("unknown primitive code %#02x", uint8(t.prim))
		}
	case KindEnum:
		if len(t.variants) == 0 {
			return fmt.Errorf("enum with no variants")
		}
		if len(t.variants) > MaxNodeWidth {
			return fmt.Errorf("enum with %d variants exceeds %d", len(t.variants), MaxNodeWidth)
		}
		seenName := map[ident.Ident]bool{}
		seenTag := map[uint8]bool{}
		for _, v := range t.variants {
			if seenName[v.Name] {
				return fmt.Errorf("duplicate enum variant name %q", v.Name)
			}
			if seenTag[v.Tag] {
				return fmt.Errorf("duplicate enum variant tag %d", v.Tag)
			}
			seenName[v.Name] = true
			seenTag[v.Tag] = true
		}
	case KindUnion, KindStruct:
		if len(t.fields) == 0 {
			return fmt.Errorf("%s with no fields", t.kind)
		}
		if len(t.fields) > MaxNodeWidth {
			return fmt.Errorf("%s with %d fields exceeds %d", t.kind, len(t.fields), MaxNodeWidth)
		}
		seen := map[ident.Ident]bool{}
		for _, f := range t.fields {
			if seen[f.Name] {
				return fmt.Errorf("duplicate field name %q", f.Name)
			}
			seen[f.Name] = true
		}
	case KindTuple:
		if len(t.tuple) == 0 {
			return fmt.Errorf("tuple with no elements")
		}
		if len(t.tuple) > MaxNodeWidth {
			return fmt.Errorf("tuple with %d elements exceeds %d", len(t.tuple), MaxNodeWidth)
		}
	case KindMap:
		if !t.key.IsValid() || t.key == PrimUnit {
			return fmt.Errorf("invalid map key primitive %#02x", uint8(t.key))
		}
	case KindArray, KindList, KindSet, KindOption, KindUniChar:
		// Single nested ref or no payload, nothing node-local to check.
	default:
		return fmt.Errorf("unknown type kind %#02x", uint8(t.kind))
	}
	return nil
}
