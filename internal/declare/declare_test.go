package declare

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"stt/internal/ident"
	"stt/internal/sty"
	"stt/internal/typelib"
)

const demoDecl = `
[lib]
name = "Demo"
deps = ["Base"]

[types.Command]
enum = ["ping:0", "pong:1", "stop:255"]

[types.Header]
struct = [
    { name = "version", type = "U16" },
    { name = "parent", type = "Base.Hash" },
]

[types.Body]
type = "[Byte ^ 0..8192]"

[types.Packet]
struct = [
    { name = "header", type = "Header" },
    { name = "body", type = "Body" },
]

[types.Reply]
union = [
    { name = "ok", type = "()" },
    { name = "data", type = "Packet" },
]

[types.Pair]
tuple = ["U8", "U8"]
`

const demoDeclYAML = `
lib:
  name: Demo
  deps: [Base]
types:
  Command:
    enum: ["ping:0", "pong:1", "stop:255"]
  Header:
    struct:
      - { name: version, type: U16 }
      - { name: parent, type: Base.Hash }
  Body:
    type: "[Byte ^ 0..8192]"
  Packet:
    struct:
      - { name: header, type: Header }
      - { name: body, type: Body }
  Reply:
    union:
      - { name: ok, type: "()" }
      - { name: data, type: Packet }
  Pair:
    tuple: [U8, U8]
`

func baseDep(t *testing.T) typelib.Dependency {
	t.Helper()
	lib, err := typelib.NewLibBuilder(ident.MustIdent("Base")).
		Transpile(ident.MustIdent("Byte"), sty.Prim[sty.SymbolRef](sty.PrimByte)).
		Transpile(ident.MustIdent("Hash"), sty.Array[sty.SymbolRef](
			sty.NamedRef(ident.MustIdent("Byte")), 32)).
		Compile()
	if err != nil {
		t.Fatalf("Failed to compile base library: %v", err)
	}
	return lib.ToDependency()
}

func TestParseAndAssemble(t *testing.T) {
	f, err := Parse([]byte(demoDecl))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if f.Lib.Name != "Demo" || len(f.Types) != 6 {
		t.Fatalf("unexpected parse result: %+v", f.Lib)
	}

	sym, err := f.Assemble(map[ident.LibName]typelib.Dependency{
		ident.MustIdent("Base"): baseDep(t),
	})
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	lib, err := sym.Compile()
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	syms := lib.SymbolsMap()
	for _, name := range []string{"Command", "Header", "Body", "Packet", "Reply", "Pair"} {
		if _, ok := syms[ident.MustIdent(name)]; !ok {
			t.Errorf("compiled library lacks %s", name)
		}
	}

	cmd, _ := lib.Get(syms[ident.MustIdent("Command")])
	if cmd.Kind() != sty.KindEnum || len(cmd.Variants()) != 3 {
		t.Errorf("Command compiled to %v", cmd)
	}
	if cmd.Variants()[2].Tag != 255 {
		t.Errorf("stop tag %d, want 255", cmd.Variants()[2].Tag)
	}

	reply, _ := lib.Get(syms[ident.MustIdent("Reply")])
	if reply.Kind() != sty.KindUnion || len(reply.Fields()) != 2 {
		t.Errorf("Reply compiled to %v", reply)
	}
}

func TestAssembleDeterministic(t *testing.T) {
	build := func() typelib.LibId {
		f, err := Parse([]byte(demoDecl))
		if err != nil {
			t.Fatal(err)
		}
		sym, err := f.Assemble(map[ident.LibName]typelib.Dependency{
			ident.MustIdent("Base"): baseDep(t),
		})
		if err != nil {
			t.Fatal(err)
		}
		lib, err := sym.Compile()
		if err != nil {
			t.Fatal(err)
		}
		return lib.Id()
	}
	if build() != build() {
		t.Fatal("same declaration compiled to different ids")
	}
}

func TestYAMLDeclarationMatchesTOML(t *testing.T) {
	compile := func(f *File) typelib.LibId {
		t.Helper()
		sym, err := f.Assemble(map[ident.LibName]typelib.Dependency{
			ident.MustIdent("Base"): baseDep(t),
		})
		if err != nil {
			t.Fatalf("Assemble failed: %v", err)
		}
		lib, err := sym.Compile()
		if err != nil {
			t.Fatalf("Compile failed: %v", err)
		}
		return lib.Id()
	}

	fromTOML, err := Parse([]byte(demoDecl))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	fromYAML, err := ParseYAML([]byte(demoDeclYAML))
	if err != nil {
		t.Fatalf("ParseYAML failed: %v", err)
	}
	if compile(fromYAML) != compile(fromTOML) {
		t.Fatal("the YAML and TOML declarations compiled to different libraries")
	}
}

func TestAssembleMissingDependency(t *testing.T) {
	f, err := Parse([]byte(demoDecl))
	if err != nil {
		t.Fatal(err)
	}
	_, err = f.Assemble(nil)
	if err == nil {
		t.Fatal("missing dependency accepted")
	}
	if !strings.Contains(err.Error(), "Base") {
		t.Errorf("error %q does not name the missing library", err)
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse([]byte("not = valid = toml")); err == nil {
		t.Error("malformed TOML accepted")
	}
	if _, err := Parse([]byte("[types.A]\ntype = \"U8\"\n")); err == nil {
		t.Error("declaration without lib.name accepted")
	}
	if _, err := ParseYAML([]byte("lib: [")); err == nil {
		t.Error("malformed YAML accepted")
	}
	if _, err := ParseYAML([]byte("types:\n  A:\n    type: U8\n")); err == nil {
		t.Error("YAML declaration without lib.name accepted")
	}
}

func TestAssembleBadShapes(t *testing.T) {
	cases := map[string]string{
		"two shapes": `
[lib]
name = "Bad"
[types.A]
type = "U8"
enum = ["a:0"]
`,
		"no shape": `
[lib]
name = "Bad"
[types.A]
`,
		"bad enum entry": `
[lib]
name = "Bad"
[types.A]
enum = ["missing tag"]
`,
		"bad type name": `
[lib]
name = "Bad"
[types."1A"]
type = "U8"
`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			f, err := Parse([]byte(doc))
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if _, err := f.Assemble(nil); err == nil {
				t.Error("bad declaration assembled")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "demo.toml")
	if err := os.WriteFile(path, []byte(demoDecl), 0644); err != nil {
		t.Fatal(err)
	}
	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if f.Lib.Name != "Demo" {
		t.Errorf("lib name %q", f.Lib.Name)
	}

	yamlPath := filepath.Join(dir, "demo.yaml")
	if err := os.WriteFile(yamlPath, []byte(demoDeclYAML), 0644); err != nil {
		t.Fatal(err)
	}
	yf, err := Load(yamlPath)
	if err != nil {
		t.Fatalf("Load of a YAML declaration failed: %v", err)
	}
	if yf.Lib.Name != "Demo" || len(yf.Types) != 6 {
		t.Errorf("unexpected YAML load result: %+v", yf.Lib)
	}

	if _, err := Load(filepath.Join(dir, "absent.toml")); err == nil {
		t.Error("missing file loaded")
	}
}
