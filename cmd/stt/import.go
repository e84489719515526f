package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"stt/internal/armor"
	"stt/internal/stl"
	"stt/internal/typesys"
)

var (
	importOut string
	importStd bool
)

var importCmd = &cobra.Command{
	Use:   "import <lib-file>...",
	Short: "Merge type libraries into a complete type system",
	Long: `Imports one or more compiled library files and merges them into a
single type system. The merge fails unless every type referenced by
any imported library is itself present, and all reported problems are
listed. On success the system is written to the output directory.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVarP(&importOut, "out", "o", ".", "Output directory")
	importCmd.Flags().BoolVar(&importStd, "std", false,
		"Also import the built-in Std and StrictTypes libraries")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	builder := typesys.NewSystemBuilder()
	if importStd {
		if err := builder.Import(stl.Std()); err != nil {
			return err
		}
		if err := builder.Import(stl.StrictTypes()); err != nil {
			return err
		}
	}
	for _, path := range args {
		lib, err := readLibFile(path)
		if err != nil {
			return err
		}
		if err := builder.Import(lib); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		logger.Debug("library imported", "name", lib.Name(), "id", lib.Id())
	}

	sys, errs := builder.Finalize()
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, "error:", e)
		}
		return errors.New("type system is incomplete")
	}

	if err := os.MkdirAll(importOut, 0755); err != nil {
		return err
	}
	id := sys.Id()
	data := sys.Serialize()
	// File name carries a short hex prefix of the system id.
	stem := fmt.Sprintf("%x", id[:8])
	var path string
	var out []byte
	switch cfg.Output.Format {
	case "bin":
		path = filepath.Join(importOut, stem+".sts")
		out = data
	case "armor":
		path = filepath.Join(importOut, stem+".sta")
		out = []byte(armor.Enarmor(sysArmorLabel, id.String(), data))
	case "zstd":
		path = filepath.Join(importOut, stem+".sta")
		armored, err := armor.EnarmorZstd(sysArmorLabel, id.String(), data)
		if err != nil {
			return err
		}
		out = []byte(armored)
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return err
	}
	logger.Info("type system written", "id", id, "types", sys.CountTypes(),
		"libs", sys.CountLibs(), "path", path)
	fmt.Printf("%s\n%d libraries, %d types\n", id, sys.CountLibs(), sys.CountTypes())
	return nil
}
