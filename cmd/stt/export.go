package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"stt/internal/ident"
	"stt/internal/typelib"
)

var (
	exportOut    string
	exportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export <lib-name-or-id>",
	Short: "Export a stored library in a chosen format",
	Long: `Looks a compiled library up in the registry, by name or by library
id URN, and writes it to the output directory. The --format flag
overrides the configured output format.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", ".", "Output directory")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "",
		"Output format: bin, armor or zstd (default from config)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if exportFormat != "" {
		cfg.Output.Format = exportFormat
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	logger := newLogger(cfg)

	reg, err := openRegistry(cfg, logger)
	if err != nil {
		return err
	}
	defer reg.Close()

	var lib *typelib.TypeLib
	if id, idErr := typelib.ParseLibId(args[0]); idErr == nil {
		lib, err = reg.Get(cmd.Context(), id)
	} else {
		var name ident.LibName
		if name, err = ident.NewIdent(args[0]); err != nil {
			return fmt.Errorf("%q is neither a library id nor a library name", args[0])
		}
		lib, err = reg.GetByName(cmd.Context(), name)
	}
	if err != nil {
		return err
	}

	path, err := writeLibFiles(cfg, exportOut, lib)
	if err != nil {
		return err
	}
	logger.Info("library exported", "name", lib.Name(), "id", lib.Id(), "path", path)
	fmt.Printf("%s -- %s\n%s\n", lib.Name(), lib.Id(), path)
	return nil
}
