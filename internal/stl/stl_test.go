package stl

import (
	"testing"

	"stt/internal/ident"
	"stt/internal/typelib"
	"stt/internal/typesys"
)

func TestStdCompiles(t *testing.T) {
	lib := Std()
	if lib.Name() != LibNameStd {
		t.Errorf("library name %q", lib.Name())
	}
	syms := lib.SymbolsMap()
	for _, name := range []string{
		"Bool", "U2", "U7",
		"AsciiPrintable", "Alpha", "Dec", "AlphaNum", "AlphaNumLodash",
		"UniChar", "UniString",
	} {
		if _, ok := syms[ident.MustIdent(name)]; !ok {
			t.Errorf("Std lacks %s", name)
		}
	}
	if len(lib.Dependencies()) != 0 {
		t.Error("Std must not depend on anything")
	}
}

func TestStdSingleton(t *testing.T) {
	if Std() != Std() {
		t.Error("Std is rebuilt per call")
	}
	if Std().Id() != Std().Id() {
		t.Error("Std id is unstable")
	}
}

func TestStdSymRebuilds(t *testing.T) {
	sym, err := StdSym()
	if err != nil {
		t.Fatalf("StdSym failed: %v", err)
	}
	lib, err := sym.Compile()
	if err != nil {
		t.Fatalf("recompiling Std failed: %v", err)
	}
	if lib.Id() != Std().Id() {
		t.Error("recompiled Std has a different id")
	}
}

func TestStrictTypesCompiles(t *testing.T) {
	lib := StrictTypes()
	if lib.Name() != LibNameStrictTypes {
		t.Errorf("library name %q", lib.Name())
	}
	deps := lib.Dependencies()
	if len(deps) != 1 || deps[0].Name != LibNameStd || deps[0].Id != Std().Id() {
		t.Errorf("StrictTypes dependencies %v", deps)
	}

	syms := lib.SymbolsMap()
	for _, name := range []string{"Ident", "TypeName", "LibName", "SemId", "Sizing", "Variant", "TypeFqn", "Dependency"} {
		if _, ok := syms[ident.MustIdent(name)]; !ok {
			t.Errorf("StrictTypes lacks %s", name)
		}
	}

	// Ident, TypeName and LibName are aliases of one structure.
	if syms[ident.MustIdent("Ident")] != syms[ident.MustIdent("TypeName")] {
		t.Error("TypeName is not an alias of Ident")
	}
	if syms[ident.MustIdent("Ident")] != syms[ident.MustIdent("LibName")] {
		t.Error("LibName is not an alias of Ident")
	}
	if syms[ident.MustIdent("SemId")] != syms[ident.MustIdent("TypeLibId")] {
		t.Error("TypeLibId is not an alias of SemId")
	}
}

func TestBuiltinsFormCompleteSystem(t *testing.T) {
	b := typesys.NewSystemBuilder()
	for _, lib := range []*typelib.TypeLib{Std(), StrictTypes()} {
		if err := b.Import(lib); err != nil {
			t.Fatalf("Failed to import %s: %v", lib.Name(), err)
		}
	}
	sys, errs := b.Finalize()
	if len(errs) > 0 {
		t.Fatalf("builtin system incomplete: %v", errs)
	}
	if sys.CountLibs() != 2 {
		t.Errorf("%d libraries, want 2", sys.CountLibs())
	}

	// Round trips through the canonical encoding.
	back, err := typesys.Deserialize(sys.Serialize())
	if err != nil {
		t.Fatalf("Deserialize failed: %v", err)
	}
	if back.Id() != sys.Id() {
		t.Error("round trip changed the system id")
	}
}

func TestStdLibRoundTrip(t *testing.T) {
	for _, lib := range []*typelib.TypeLib{Std(), StrictTypes()} {
		back, err := typelib.Deserialize(lib.Serialize())
		if err != nil {
			t.Fatalf("%s: Deserialize failed: %v", lib.Name(), err)
		}
		if back.Id() != lib.Id() {
			t.Errorf("%s: round trip changed the id", lib.Name())
		}
	}
}
