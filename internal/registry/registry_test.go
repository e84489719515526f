package registry

import (
	"context"
	"testing"

	"stt/internal/ident"
	"stt/internal/logging"
	"stt/internal/sty"
	"stt/internal/typelib"
)

func openTestRegistry(t *testing.T) *Registry {
	t.Helper()
	reg, err := Open(t.TempDir(), logging.NewDiscard())
	if err != nil {
		t.Fatalf("Failed to open registry: %v", err)
	}
	t.Cleanup(func() { _ = reg.Close() })
	return reg
}

func testLib(t *testing.T, name string) *typelib.TypeLib {
	t.Helper()
	lib, err := typelib.NewLibBuilder(ident.MustIdent(name)).
		Transpile(ident.MustIdent("Flag"), sty.Prim[sty.SymbolRef](sty.PrimU8)).
		Transpile(ident.MustIdent("Tag"), sty.Prim[sty.SymbolRef](sty.PrimU16)).
		Compile()
	if err != nil {
		t.Fatalf("Failed to compile test library: %v", err)
	}
	return lib
}

func TestPutGet(t *testing.T) {
	reg := openTestRegistry(t)
	ctx := context.Background()
	lib := testLib(t, "Demo")

	if err := reg.Put(ctx, lib); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	back, err := reg.Get(ctx, lib.Id())
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if back.Id() != lib.Id() || back.Name() != lib.Name() {
		t.Error("stored library came back different")
	}
}

func TestGetMissing(t *testing.T) {
	reg := openTestRegistry(t)
	if _, err := reg.Get(context.Background(), typelib.LibId{0x01}); err == nil {
		t.Fatal("missing id returned a library")
	}
}

func TestPutIdempotent(t *testing.T) {
	reg := openTestRegistry(t)
	ctx := context.Background()
	lib := testLib(t, "Demo")

	if err := reg.Put(ctx, lib); err != nil {
		t.Fatal(err)
	}
	if err := reg.Put(ctx, lib); err != nil {
		t.Fatalf("second Put failed: %v", err)
	}
	records, err := reg.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Errorf("%d records after double Put, want 1", len(records))
	}
}

func TestGetByName(t *testing.T) {
	reg := openTestRegistry(t)
	ctx := context.Background()

	if err := reg.Put(ctx, testLib(t, "One")); err != nil {
		t.Fatal(err)
	}
	two := testLib(t, "Two")
	if err := reg.Put(ctx, two); err != nil {
		t.Fatal(err)
	}

	back, err := reg.GetByName(ctx, ident.MustIdent("Two"))
	if err != nil {
		t.Fatalf("GetByName failed: %v", err)
	}
	if back.Id() != two.Id() {
		t.Error("GetByName returned the wrong library")
	}

	if _, err := reg.GetByName(ctx, ident.MustIdent("Absent")); err == nil {
		t.Error("missing name returned a library")
	}
}

func TestList(t *testing.T) {
	reg := openTestRegistry(t)
	ctx := context.Background()

	records, err := reg.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 0 {
		t.Fatalf("fresh registry lists %d records", len(records))
	}

	for _, name := range []string{"One", "Two", "Three"} {
		if err := reg.Put(ctx, testLib(t, name)); err != nil {
			t.Fatal(err)
		}
	}
	records, err = reg.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("%d records, want 3", len(records))
	}
	for _, rec := range records {
		if rec.Session == "" || rec.CreatedAt.IsZero() {
			t.Errorf("record %s lacks session or timestamp", rec.Name)
		}
	}
}

func TestReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	lib := testLib(t, "Persistent")

	reg, err := Open(dir, logging.NewDiscard())
	if err != nil {
		t.Fatal(err)
	}
	if err := reg.Put(ctx, lib); err != nil {
		t.Fatal(err)
	}
	if err := reg.Close(); err != nil {
		t.Fatal(err)
	}

	reg2, err := Open(dir, logging.NewDiscard())
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reg2.Close()
	back, err := reg2.Get(ctx, lib.Id())
	if err != nil {
		t.Fatalf("Get after reopen failed: %v", err)
	}
	if back.Id() != lib.Id() {
		t.Error("library lost across reopen")
	}
}
