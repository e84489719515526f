package sty

import (
	"testing"

	"stt/internal/ident"
	"stt/internal/strictbin"
)

func sampleTypes() map[string]Ty[SemId] {
	u8 := ComputeSemId(Prim[SemId](PrimU8))
	u32 := ComputeSemId(Prim[SemId](PrimU32))
	return map[string]Ty[SemId]{
		"unit":      UnitTy[SemId](),
		"primitive": Prim[SemId](PrimU256),
		"enum": Enum[SemId](
			Variant{Name: ident.MustIdent("north"), Tag: 0},
			Variant{Name: ident.MustIdent("south"), Tag: 1},
		),
		"union": Union[SemId](
			Field[SemId]{Name: ident.MustIdent("small"), Ref: u8},
			Field[SemId]{Name: ident.MustIdent("large"), Ref: u32},
		),
		"tuple": Tuple[SemId](u8, u32),
		"struct": Struct[SemId](
			Field[SemId]{Name: ident.MustIdent("count"), Ref: u32},
		),
		"array":  Array[SemId](u8, 32),
		"list":   List[SemId](u32, ident.SizingU16),
		"set":    Set[SemId](u8, ident.SizingU8NonEmpty),
		"map":    Map[SemId](PrimU8, u32, ident.SizingU16),
		"option": Option[SemId](u8),
		"char":   UniChar[SemId](),
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for name, ty := range sampleTypes() {
		data := Encode(ty)
		r := strictbin.NewReader(data)
		back, err := Decode(r)
		if err != nil {
			t.Errorf("%s: decode failed: %v", name, err)
			continue
		}
		if err := r.Done(); err != nil {
			t.Errorf("%s: trailing bytes: %v", name, err)
			continue
		}
		if !Equal(ty, back) {
			t.Errorf("%s: round trip changed the type", name)
		}
		if ComputeSemId(ty) != ComputeSemId(back) {
			t.Errorf("%s: round trip changed the id", name)
		}
	}
}

func TestDecodeTruncated(t *testing.T) {
	for name, ty := range sampleTypes() {
		data := Encode(ty)
		if len(data) < 2 {
			continue
		}
		r := strictbin.NewReader(data[:len(data)-1])
		if _, err := Decode(r); err == nil {
			// One shorter byte may still decode if the cut falls on a
			// trailing element, but then Done must catch it.
			if err := r.Done(); err == nil {
				t.Errorf("%s: truncated input decoded cleanly", name)
			}
		}
	}
}

func TestDecodeUnknownKind(t *testing.T) {
	r := strictbin.NewReader([]byte{0x7f})
	if _, err := Decode(r); err == nil {
		t.Fatal("unknown kind byte accepted")
	}
}

func TestDecodeInvalidPrimitive(t *testing.T) {
	r := strictbin.NewReader([]byte{byte(KindPrimitive), 0x7b})
	if _, err := Decode(r); err == nil {
		t.Fatal("invalid primitive code accepted")
	}
}

func TestEqual(t *testing.T) {
	u8 := ComputeSemId(Prim[SemId](PrimU8))
	a := List[SemId](u8, ident.SizingU8)
	b := List[SemId](u8, ident.SizingU8)
	c := List[SemId](u8, ident.SizingU16)
	if !Equal(a, b) {
		t.Error("identical lists compare unequal")
	}
	if Equal(a, c) {
		t.Error("lists with different sizing compare equal")
	}
}
