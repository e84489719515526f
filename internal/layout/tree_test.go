package layout

import (
	"strings"
	"testing"

	"stt/internal/ident"
	"stt/internal/sty"
	"stt/internal/typelib"
	"stt/internal/typesys"
)

func buildSystem(t *testing.T) (*typesys.TypeSystem, map[ident.TypeName]sty.SemId) {
	t.Helper()
	lib, err := typelib.NewLibBuilder(ident.MustIdent("Demo")).
		Transpile(ident.MustIdent("Byte"), sty.Prim[sty.SymbolRef](sty.PrimByte)).
		Transpile(ident.MustIdent("Hash"), sty.Array[sty.SymbolRef](
			sty.NamedRef(ident.MustIdent("Byte")), 32)).
		Transpile(ident.MustIdent("Message"), sty.Struct[sty.SymbolRef](
			sty.Field[sty.SymbolRef]{
				Name: ident.MustIdent("parent"),
				Ref:  sty.NamedRef(ident.MustIdent("Hash"))},
			sty.Field[sty.SymbolRef]{
				Name: ident.MustIdent("body"),
				Ref: sty.InlineRef(sty.List[sty.SymbolRef](
					sty.NamedRef(ident.MustIdent("Byte")), ident.SizingU16))})).
		Compile()
	if err != nil {
		t.Fatalf("Failed to compile demo library: %v", err)
	}

	b := typesys.NewSystemBuilder()
	if err := b.Import(lib); err != nil {
		t.Fatal(err)
	}
	sys, errs := b.Finalize()
	if len(errs) > 0 {
		t.Fatalf("Failed to finalize system: %v", errs)
	}
	return sys, lib.SymbolsMap()
}

func TestTreeOf(t *testing.T) {
	sys, syms := buildSystem(t)
	l, err := TreeOf(sys, syms[ident.MustIdent("Message")])
	if err != nil {
		t.Fatalf("TreeOf failed: %v", err)
	}

	items := l.Items()
	if items[0].Descr != "rec" || items[0].Depth != 0 {
		t.Fatalf("unexpected root item %v", items[0])
	}
	out := l.String()
	if !strings.Contains(out, "parent array ^ 32") {
		t.Errorf("layout lacks the array field:\n%s", out)
	}
	if !strings.Contains(out, "Byte") {
		t.Errorf("layout lacks the leaf primitive:\n%s", out)
	}

	// The layout reconstructs into a tree and flattens back unchanged.
	root, err := l.Vesper()
	if err != nil {
		t.Fatalf("derived layout does not reconstruct: %v", err)
	}
	if Flatten(root).String() != out {
		t.Error("layout round trip through the tree changed the rendering")
	}
}

func TestTreeOfUnknownType(t *testing.T) {
	sys, _ := buildSystem(t)
	if _, err := TreeOf(sys, sty.SemId{0x01}); err == nil {
		t.Fatal("layout of a non-member id succeeded")
	}
}

func TestTreeOfLeafType(t *testing.T) {
	sys, syms := buildSystem(t)
	l, err := TreeOf(sys, syms[ident.MustIdent("Byte")])
	if err != nil {
		t.Fatal(err)
	}
	if l.Count() != 1 || l.Items()[0].Descr != "Byte" {
		t.Errorf("unexpected leaf layout %v", l.Items())
	}
}
