package sty

import (
	"bytes"
	"fmt"

	"stt/internal/ident"
	"stt/internal/strictbin"
)

// Encode returns the canonical byte form of a compiled type node. The
// encoding is deterministic and is the preimage of the semantic id.
func Encode(ty Ty[SemId]) []byte {
	w := strictbin.NewWriter()
	EncodeTo(w, ty)
	return w.Bytes()
}

// EncodeTo appends the canonical byte form of ty to w.
func EncodeTo(w *strictbin.Writer, ty Ty[SemId]) {
	w.U8(uint8(ty.kind))
	switch ty.kind {
	case KindPrimitive:
		w.U8(uint8(ty.prim))
	case KindEnum:
		w.U8(uint8(len(ty.variants)))
		for _, v := range ty.variants {
			w.TinyStr(string(v.Name))
			w.U8(v.Tag)
		}
	case KindUnion, KindStruct:
		w.U8(uint8(len(ty.fields)))
		for _, f := range ty.fields {
			w.TinyStr(string(f.Name))
			w.Raw(f.Ref[:])
		}
	case KindTuple:
		w.U8(uint8(len(ty.tuple)))
		for _, r := range ty.tuple {
			w.Raw(r[:])
		}
	case KindArray:
		w.Raw(ty.elem[:])
		w.U16(ty.arrayLen)
	case KindList, KindSet:
		w.Raw(ty.elem[:])
		w.U16(ty.sizing.Min)
		w.U16(ty.sizing.Max)
	case KindMap:
		w.U8(uint8(ty.key))
		w.Raw(ty.elem[:])
		w.U16(ty.sizing.Min)
		w.U16(ty.sizing.Max)
	case KindOption:
		w.Raw(ty.elem[:])
	case KindUniChar:
		// Kind byte only.
	default:
		panic(fmt.Sprintf("sty: encoding unknown kind %#02x", uint8(ty.kind)))
	}
}

// EncodedLen returns the canonical encoding length of ty in bytes.
func EncodedLen(ty Ty[SemId]) int { return len(Encode(ty)) }

// Equal reports structural equality of two compiled types, defined as
// equality of their canonical encodings.
func Equal(a, b Ty[SemId]) bool { return bytes.Equal(Encode(a), Encode(b)) }

// Decode reads one canonical type node from r.
func Decode(r *strictbin.Reader) (Ty[SemId], error) {
	var zero Ty[SemId]
	kind, err := r.U8()
	if err != nil {
		return zero, err
	}
	var ty Ty[SemId]
	switch Kind(kind) {
	case KindPrimitive:
		p, err := r.U8()
		if err != nil {
			return zero, err
		}
		ty = Prim[SemId](Primitive(p))
	case KindEnum:
		count, err := r.U8()
		if err != nil {
			return zero, err
		}
		variants := make([]Variant, count)
		for i := range variants {
			name, err := decodeIdent(r)
			if err != nil {
				return zero, err
			}
			tag, err := r.U8()
			if err != nil {
				return zero, err
			}
			variants[i] = Variant{Name: name, Tag: tag}
		}
		ty = Enum[SemId](variants...)
	case KindUnion, KindStruct:
		count, err := r.U8()
		if err != nil {
			return zero, err
		}
		fields := make([]Field[SemId], count)
		for i := range fields {
			name, err := decodeIdent(r)
			if err != nil {
				return zero, err
			}
			id, err := decodeSemId(r)
			if err != nil {
				return zero, err
			}
			fields[i] = Field[SemId]{Name: name, Ref: id}
		}
		if Kind(kind) == KindUnion {
			ty = Union(fields...)
		} else {
			ty = Struct(fields...)
		}
	case KindTuple:
		count, err := r.U8()
		if err != nil {
			return zero, err
		}
		refs := make([]SemId, count)
		for i := range refs {
			if refs[i], err = decodeSemId(r); err != nil {
				return zero, err
			}
		}
		ty = Tuple(refs...)
	case KindArray:
		id, err := decodeSemId(r)
		if err != nil {
			return zero, err
		}
		length, err := r.U16()
		if err != nil {
			return zero, err
		}
		ty = Array(id, length)
	case KindList, KindSet:
		id, err := decodeSemId(r)
		if err != nil {
			return zero, err
		}
		sizing, err := decodeSizing(r)
		if err != nil {
			return zero, err
		}
		if Kind(kind) == KindList {
			ty = List(id, sizing)
		} else {
			ty = Set(id, sizing)
		}
	case KindMap:
		key, err := r.U8()
		if err != nil {
			return zero, err
		}
		id, err := decodeSemId(r)
		if err != nil {
			return zero, err
		}
		sizing, err := decodeSizing(r)
		if err != nil {
			return zero, err
		}
		ty = Map(Primitive(key), id, sizing)
	case KindOption:
		id, err := decodeSemId(r)
		if err != nil {
			return zero, err
		}
		ty = Option(id)
	case KindUniChar:
		ty = UniChar[SemId]()
	default:
		return zero, &strictbin.DecodeError{What: fmt.Sprintf("unknown type kind %#02x", kind)}
	}
	if err := ty.Validate(); err != nil {
		return zero, &strictbin.DecodeError{What: err.Error()}
	}
	return ty, nil
}

func decodeIdent(r *strictbin.Reader) (ident.Ident, error) {
	s, err := r.TinyStr()
	if err != nil {
		return "", err
	}
	id, err := ident.NewIdent(s)
	if err != nil {
		return "", &strictbin.DecodeError{What: err.Error()}
	}
	return id, nil
}

func decodeSemId(r *strictbin.Reader) (SemId, error) {
	b, err := r.Raw(32, "semantic id")
	if err != nil {
		return SemId{}, err
	}
	var id SemId
	copy(id[:], b)
	return id, nil
}

func decodeSizing(r *strictbin.Reader) (ident.Sizing, error) {
	min, err := r.U16()
	if err != nil {
		return ident.Sizing{}, err
	}
	max, err := r.U16()
	if err != nil {
		return ident.Sizing{}, err
	}
	return ident.Sizing{Min: min, Max: max}, nil
}
