// Package declare reads textual library declaration files: a TOML or
// YAML document naming a library, its dependencies and its type
// shapes, assembled into a symbolic library ready for compilation. It
// is the authoring surface for users who do not want to drive the
// builder from Go code.
package declare

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"stt/internal/ident"
	"stt/internal/sty"
	"stt/internal/typelib"
)

// File is the root structure of a library declaration document.
type File struct {
	Lib   LibDecl             `toml:"lib" yaml:"lib"`
	Types map[string]TypeDecl `toml:"types" yaml:"types"`
}

// LibDecl names the declared library and its dependencies.
type LibDecl struct {
	Name string   `toml:"name" yaml:"name"`
	Deps []string `toml:"deps,omitempty" yaml:"deps,omitempty"`
}

// TypeDecl is one declared type shape. Exactly one of the shape fields
// must be set.
type TypeDecl struct {
	Type   string      `toml:"type,omitempty" yaml:"type,omitempty"`     // type expression
	Enum   []string    `toml:"enum,omitempty" yaml:"enum,omitempty"`     // "name:tag" entries
	Struct []FieldDecl `toml:"struct,omitempty" yaml:"struct,omitempty"` // named fields
	Union  []FieldDecl `toml:"union,omitempty" yaml:"union,omitempty"`   // tagged cases
	Tuple  []string    `toml:"tuple,omitempty" yaml:"tuple,omitempty"`   // type expressions
}

// FieldDecl is a named field or union case.
type FieldDecl struct {
	Name string `toml:"name" yaml:"name"`
	Type string `toml:"type" yaml:"type"`
}

// Load reads and parses a declaration file. The format is picked by
// extension: .yaml and .yml parse as YAML, everything else as TOML.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading declaration file: %w", err)
	}
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return Parse(data)
	}
}

// Parse parses a TOML declaration document.
func Parse(data []byte) (*File, error) {
	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing declaration file: %w", err)
	}
	return checked(&f)
}

// ParseYAML parses a YAML declaration document.
func ParseYAML(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing declaration file: %w", err)
	}
	return checked(&f)
}

func checked(f *File) (*File, error) {
	if f.Lib.Name == "" {
		return nil, fmt.Errorf("declaration file missing lib.name")
	}
	return f, nil
}

// Assemble turns the declaration into a symbolic library. deps must
// provide a Dependency for every library named in lib.deps. Types are
// declared in name order; forward references are legal since the
// compile stage resolves in dependency order.
func (f *File) Assemble(deps map[ident.LibName]typelib.Dependency) (*typelib.SymbolicLib, error) {
	libName, err := ident.NewIdent(f.Lib.Name)
	if err != nil {
		return nil, err
	}
	var depList []typelib.Dependency
	for _, d := range f.Lib.Deps {
		name, err := ident.NewIdent(d)
		if err != nil {
			return nil, err
		}
		dep, ok := deps[name]
		if !ok {
			return nil, fmt.Errorf("dependency library %s is not available", name)
		}
		depList = append(depList, dep)
	}
	names := make([]string, 0, len(f.Types))
	for name := range f.Types {
		names = append(names, name)
	}
	sort.Strings(names)
	var decls []typelib.Decl
	for _, name := range names {
		tyName, err := ident.NewIdent(name)
		if err != nil {
			return nil, err
		}
		ty, err := f.Types[name].assemble()
		if err != nil {
			return nil, fmt.Errorf("type %s: %w", name, err)
		}
		decls = append(decls, typelib.Decl{Name: tyName, Ty: ty})
	}
	return typelib.NewSymbolicLib(libName, depList, decls)
}

func (d TypeDecl) assemble() (sty.Ty[sty.SymbolRef], error) {
	var zero sty.Ty[sty.SymbolRef]
	set := 0
	for _, ok := range []bool{d.Type != "", len(d.Enum) > 0, len(d.Struct) > 0, len(d.Union) > 0, len(d.Tuple) > 0} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return zero, fmt.Errorf("exactly one of type, enum, struct, union, tuple must be set")
	}
	switch {
	case d.Type != "":
		ref, err := ParseRef(d.Type)
		if err != nil {
			return zero, err
		}
		if inline, ok := ref.Inline(); ok {
			return *inline, nil
		}
		// A bare reference gets wrapped so that the declaration is a
		// type of its own rather than a second name for the target.
		return sty.Tuple(ref), nil
	case len(d.Enum) > 0:
		variants := make([]sty.Variant, len(d.Enum))
		for i, entry := range d.Enum {
			name, tagStr, ok := strings.Cut(entry, ":")
			if !ok {
				return zero, fmt.Errorf("enum entry %q is not of the form name:tag", entry)
			}
			vn, err := ident.NewIdent(strings.TrimSpace(name))
			if err != nil {
				return zero, err
			}
			tag, err := strconv.ParseUint(strings.TrimSpace(tagStr), 10, 8)
			if err != nil {
				return zero, fmt.Errorf("enum entry %q: invalid tag: %w", entry, err)
			}
			variants[i] = sty.Variant{Name: vn, Tag: uint8(tag)}
		}
		return sty.Enum[sty.SymbolRef](variants...), nil
	case len(d.Struct) > 0:
		fields, err := assembleFields(d.Struct)
		if err != nil {
			return zero, err
		}
		return sty.Struct(fields...), nil
	case len(d.Union) > 0:
		fields, err := assembleFields(d.Union)
		if err != nil {
			return zero, err
		}
		return sty.Union(fields...), nil
	default:
		refs := make([]sty.SymbolRef, len(d.Tuple))
		for i, expr := range d.Tuple {
			ref, err := ParseRef(expr)
			if err != nil {
				return zero, err
			}
			refs[i] = ref
		}
		return sty.Tuple(refs...), nil
	}
}

func assembleFields(decls []FieldDecl) ([]sty.Field[sty.SymbolRef], error) {
	fields := make([]sty.Field[sty.SymbolRef], len(decls))
	for i, fd := range decls {
		name, err := ident.NewIdent(fd.Name)
		if err != nil {
			return nil, err
		}
		ref, err := ParseRef(fd.Type)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", fd.Name, err)
		}
		fields[i] = sty.Field[sty.SymbolRef]{Name: name, Ref: ref}
	}
	return fields, nil
}
