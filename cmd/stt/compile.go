package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"stt/internal/declare"
	"stt/internal/ident"
	"stt/internal/registry"
	"stt/internal/stl"
	"stt/internal/typelib"
)

var compileOut string

var compileCmd = &cobra.Command{
	Use:   "compile <declaration.{toml,yaml}>",
	Short: "Compile a library declaration file into a type library",
	Long: `Compiles a TOML or YAML library declaration into a strict type library.
Dependencies named in the declaration are resolved from the built-in
libraries and the registry. The compiled library is stored in the
registry and written to the output directory.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	compileCmd.Flags().StringVarP(&compileOut, "out", "o", ".", "Output directory")
	rootCmd.AddCommand(compileCmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	file, err := declare.Load(args[0])
	if err != nil {
		return err
	}

	reg, err := openRegistry(cfg, logger)
	if err != nil {
		return err
	}
	defer reg.Close()

	deps := make(map[ident.LibName]typelib.Dependency, len(file.Lib.Deps))
	for _, dep := range file.Lib.Deps {
		name, err := ident.NewIdent(dep)
		if err != nil {
			return fmt.Errorf("dependency %q: %w", dep, err)
		}
		lib, err := resolveDep(cmd, reg, name)
		if err != nil {
			return err
		}
		deps[name] = lib.ToDependency()
	}

	sym, err := file.Assemble(deps)
	if err != nil {
		return err
	}
	lib, err := sym.Compile()
	if err != nil {
		return err
	}

	if err := reg.Put(cmd.Context(), lib); err != nil {
		return err
	}
	path, err := writeLibFiles(cfg, compileOut, lib)
	if err != nil {
		return err
	}
	logger.Info("library compiled", "name", lib.Name(), "id", lib.Id(),
		"types", lib.CountTypes(), "path", path)
	fmt.Printf("%s -- %s\n", lib.Name(), lib.Id())
	return nil
}

// resolveDep finds a dependency library, preferring the builtins over
// the registry.
func resolveDep(cmd *cobra.Command, reg *registry.Registry, name ident.LibName) (*typelib.TypeLib, error) {
	for _, builtin := range []*typelib.TypeLib{stl.Std(), stl.StrictTypes()} {
		if builtin.Name() == name {
			return builtin, nil
		}
	}
	lib, err := reg.GetByName(cmd.Context(), name)
	if err != nil {
		return nil, fmt.Errorf("dependency %s: %w", name, err)
	}
	return lib, nil
}
