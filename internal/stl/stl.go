// Package stl bootstraps the built-in standard type libraries: Std,
// the primitive vocabulary every other library builds on, and
// StrictTypes, the engine's reflection of its own data model. Both are
// process-wide immutable singletons compiled once on first use.
package stl

import (
	"fmt"
	"sync"

	"stt/internal/ident"
	"stt/internal/sty"
	"stt/internal/typelib"
)

// LibNameStd is the name of the standard library.
const LibNameStd = "Std"

// LibNameStrictTypes is the name of the engine reflection library.
const LibNameStrictTypes = "StrictTypes"

var stdLib = sync.OnceValue(func() *typelib.TypeLib {
	lib, err := stdSym().Compile()
	if err != nil {
		panic(fmt.Sprintf("stl: invalid Std library: %v", err))
	}
	return lib
})

var strictTypesLib = sync.OnceValue(func() *typelib.TypeLib {
	lib, err := strictTypesSym().Compile()
	if err != nil {
		panic(fmt.Sprintf("stl: invalid StrictTypes library: %v", err))
	}
	return lib
})

// Std returns the compiled standard library.
func Std() *typelib.TypeLib { return stdLib() }

// StrictTypes returns the compiled engine reflection library.
func StrictTypes() *typelib.TypeLib { return strictTypesLib() }

// StdSym rebuilds the symbolic form of the standard library.
func StdSym() (*typelib.SymbolicLib, error) {
	sym, err := stdSymE()
	if err != nil {
		return nil, err
	}
	return sym, nil
}

func stdSym() *typelib.SymbolicLib {
	sym, err := stdSymE()
	if err != nil {
		panic(fmt.Sprintf("stl: invalid Std library: %v", err))
	}
	return sym
}

func stdSymE() (*typelib.SymbolicLib, error) {
	b := typelib.NewLibBuilder(ident.MustIdent(LibNameStd))
	b.Transpile(ident.MustIdent("Bool"), sty.Enum[sty.SymbolRef](
		sty.Variant{Name: ident.MustIdent("false"), Tag: 0},
		sty.Variant{Name: ident.MustIdent("true"), Tag: 1},
	))
	for _, p := range []sty.Primitive{sty.PrimU2, sty.PrimU3, sty.PrimU4, sty.PrimU5, sty.PrimU6, sty.PrimU7} {
		b.Transpile(ident.MustIdent(p.String()), sty.Prim[sty.SymbolRef](p))
	}
	b.Transpile(ident.MustIdent("AsciiSym"), charEnum(asciiSymChars()))
	b.Transpile(ident.MustIdent("AsciiPrintable"), charEnum(charRange(32, 126)))
	b.Transpile(ident.MustIdent("AlphaCaps"), charEnum(charRange('A', 'Z')))
	b.Transpile(ident.MustIdent("AlphaSmall"), charEnum(charRange('a', 'z')))
	b.Transpile(ident.MustIdent("Alpha"), charEnum(concat(charRange('A', 'Z'), charRange('a', 'z'))))
	b.Transpile(ident.MustIdent("Dec"), charEnum(charRange('0', '9')))
	b.Transpile(ident.MustIdent("HexDecCaps"), charEnum(concat(charRange('0', '9'), charRange('A', 'F'))))
	b.Transpile(ident.MustIdent("HexDecSmall"), charEnum(concat(charRange('0', '9'), charRange('a', 'f'))))
	b.Transpile(ident.MustIdent("AlphaNum"), charEnum(concat(charRange('0', '9'), charRange('A', 'Z'), charRange('a', 'z'))))
	b.Transpile(ident.MustIdent("AlphaCapsNum"), charEnum(concat(charRange('0', '9'), charRange('A', 'Z'))))
	b.Transpile(ident.MustIdent("AlphaNumDash"), charEnum(concat([]byte{'-'}, charRange('0', '9'), charRange('A', 'Z'), charRange('a', 'z'))))
	b.Transpile(ident.MustIdent("AlphaNumLodash"), charEnum(concat(charRange('0', '9'), charRange('A', 'Z'), []byte{'_'}, charRange('a', 'z'))))
	b.Transpile(ident.MustIdent("UniChar"), sty.UniChar[sty.SymbolRef]())
	b.Transpile(ident.MustIdent("UniString"), sty.List(
		sty.NamedRef(ident.MustIdent("UniChar")), ident.SizingU16))
	return b.CompileSymbols()
}

func strictTypesSym() *typelib.SymbolicLib {
	std := Std().ToDependency()
	u8 := sty.InlineRef(sty.Prim[sty.SymbolRef](sty.PrimU8))
	u16 := sty.InlineRef(sty.Prim[sty.SymbolRef](sty.PrimU16))
	byteRef := sty.InlineRef(sty.Prim[sty.SymbolRef](sty.PrimByte))
	lodash := sty.ExternRef(ident.MustIdent(LibNameStd), ident.MustIdent("AlphaNumLodash"))

	b := typelib.NewLibBuilder(ident.MustIdent(LibNameStrictTypes), std)
	b.Transpile(ident.MustIdent("Ident"), sty.List(lodash, ident.NewSizing(1, 32)))
	// Aliases share the structure, and therefore the id, of Ident.
	b.Transpile(ident.MustIdent("TypeName"), sty.List(lodash, ident.NewSizing(1, 32)))
	b.Transpile(ident.MustIdent("LibName"), sty.List(lodash, ident.NewSizing(1, 32)))
	b.Transpile(ident.MustIdent("SemId"), sty.Array(byteRef, 32))
	b.Transpile(ident.MustIdent("TypeLibId"), sty.Array(byteRef, 32))
	b.Transpile(ident.MustIdent("TypeSysId"), sty.Array(byteRef, 32))
	b.Transpile(ident.MustIdent("Sizing"), sty.Struct(
		sty.Field[sty.SymbolRef]{Name: ident.MustIdent("min"), Ref: u16},
		sty.Field[sty.SymbolRef]{Name: ident.MustIdent("max"), Ref: u16},
	))
	b.Transpile(ident.MustIdent("Variant"), sty.Struct(
		sty.Field[sty.SymbolRef]{Name: ident.MustIdent("name"), Ref: sty.NamedRef(ident.MustIdent("Ident"))},
		sty.Field[sty.SymbolRef]{Name: ident.MustIdent("tag"), Ref: u8},
	))
	b.Transpile(ident.MustIdent("EnumVariants"), sty.Set(
		sty.NamedRef(ident.MustIdent("Variant")), ident.NewSizing(1, 255),
	))
	b.Transpile(ident.MustIdent("TypeFqn"), sty.Struct(
		sty.Field[sty.SymbolRef]{Name: ident.MustIdent("lib"), Ref: sty.NamedRef(ident.MustIdent("LibName"))},
		sty.Field[sty.SymbolRef]{Name: ident.MustIdent("name"), Ref: sty.NamedRef(ident.MustIdent("TypeName"))},
	))
	b.Transpile(ident.MustIdent("Dependency"), sty.Struct(
		sty.Field[sty.SymbolRef]{Name: ident.MustIdent("id"), Ref: sty.NamedRef(ident.MustIdent("TypeLibId"))},
		sty.Field[sty.SymbolRef]{Name: ident.MustIdent("name"), Ref: sty.NamedRef(ident.MustIdent("LibName"))},
	))
	sym, err := b.CompileSymbols()
	if err != nil {
		panic(fmt.Sprintf("stl: invalid StrictTypes library: %v", err))
	}
	return sym
}

func charRange(from, to byte) []byte {
	chars := make([]byte, 0, to-from+1)
	for c := from; c <= to; c++ {
		chars = append(chars, c)
	}
	return chars
}

func concat(sets ...[]byte) []byte {
	var out []byte
	for _, s := range sets {
		out = append(out, s...)
	}
	return out
}

func asciiSymChars() []byte {
	return concat(charRange(33, 47), charRange(58, 64), charRange(91, 96), charRange(123, 126))
}

func charEnum(chars []byte) sty.Ty[sty.SymbolRef] {
	variants := make([]sty.Variant, len(chars))
	for i, c := range chars {
		variants[i] = sty.Variant{Name: ident.MustIdent(charName(c)), Tag: c}
	}
	return sty.Enum[sty.SymbolRef](variants...)
}

// charName maps a printable ASCII byte to an identifier usable as an
// enum variant name.
func charName(c byte) string {
	switch {
	case c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z':
		return string(c)
	case c >= '0' && c <= '9':
		return "d" + string(c)
	}
	names := map[byte]string{
		' ': "space", '!': "excl", '"': "quotes", '#': "hash", '$': "dollar",
		'%': "percent", '&': "amp", '\'': "apos", '(': "lparen", ')': "rparen",
		'*': "astr", '+': "plus", ',': "comma", '-': "dash", '.': "dot",
		'/': "slash", ':': "colon", ';': "semi", '<': "lt", '=': "eq",
		'>': "gt", '?': "quest", '@': "at", '[': "lbrack", '\\': "bslash",
		']': "rbrack", '^': "caret", '_': "lodash", '`': "grave",
		'{': "lbrace", '|': "pipe", '}': "rbrace", '~': "tilde",
	}
	if name, ok := names[c]; ok {
		return name
	}
	return fmt.Sprintf("chr%d", c)
}
