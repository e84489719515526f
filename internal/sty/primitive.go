package sty

import "fmt"

// Primitive is a one-byte code identifying a built-in scalar type.
type Primitive uint8

const (
	PrimUnit Primitive = 0x00
	PrimU8   Primitive = 0x01
	PrimU16  Primitive = 0x02
	PrimU24  Primitive = 0x03
	PrimU32  Primitive = 0x04
	PrimU48  Primitive = 0x06
	PrimU64  Primitive = 0x08
	PrimU128 Primitive = 0x10
	PrimU256 Primitive = 0x20

	PrimI8   Primitive = 0x41
	PrimI16  Primitive = 0x42
	PrimI24  Primitive = 0x43
	PrimI32  Primitive = 0x44
	PrimI64  Primitive = 0x48
	PrimI128 Primitive = 0x50

	PrimF32 Primitive = 0x64
	PrimF64 Primitive = 0x68

	PrimByte Primitive = 0x81

	// Sub-byte restricted integers.
	PrimU2 Primitive = 0xE2
	PrimU3 Primitive = 0xE3
	PrimU4 Primitive = 0xE4
	PrimU5 Primitive = 0xE5
	PrimU6 Primitive = 0xE6
	PrimU7 Primitive = 0xE7
)

var primNames = map[Primitive]string{
	PrimUnit: "()",
	PrimU8:   "U8",
	PrimU16:  "U16",
	PrimU24:  "U24",
	PrimU32:  "U32",
	PrimU48:  "U48",
	PrimU64:  "U64",
	PrimU128: "U128",
	PrimU256: "U256",
	PrimI8:   "I8",
	PrimI16:  "I16",
	PrimI24:  "I24",
	PrimI32:  "I32",
	PrimI64:  "I64",
	PrimI128: "I128",
	PrimF32:  "F32",
	PrimF64:  "F64",
	PrimByte: "Byte",
	PrimU2:   "U2",
	PrimU3:   "U3",
	PrimU4:   "U4",
	PrimU5:   "U5",
	PrimU6:   "U6",
	PrimU7:   "U7",
}

var primSizes = map[Primitive]uint16{
	PrimUnit: 0,
	PrimU8:   1, PrimU16: 2, PrimU24: 3, PrimU32: 4, PrimU48: 6,
	PrimU64: 8, PrimU128: 16, PrimU256: 32,
	PrimI8: 1, PrimI16: 2, PrimI24: 3, PrimI32: 4, PrimI64: 8, PrimI128: 16,
	PrimF32: 4, PrimF64: 8,
	PrimByte: 1,
	PrimU2:   1, PrimU3: 1, PrimU4: 1, PrimU5: 1, PrimU6: 1, PrimU7: 1,
}

var primByName = func() map[string]Primitive {
	m := make(map[string]Primitive, len(primNames))
	for p, name := range primNames {
		m[name] = p
	}
	return m
}()

// PrimByName resolves a primitive by its display name.
func PrimByName(name string) (Primitive, bool) {
	p, ok := primByName[name]
	return p, ok
}

// IsValid reports whether p is a known primitive code.
func (p Primitive) IsValid() bool {
	_, ok := primNames[p]
	return ok
}

// ByteSize returns the encoded size of a value of this primitive.
func (p Primitive) ByteSize() uint16 { return primSizes[p] }

func (p Primitive) String() string {
	if name, ok := primNames[p]; ok {
		return name
	}
	return fmt.Sprintf("prim#%02X", uint8(p))
}
