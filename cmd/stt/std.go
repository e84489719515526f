package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"stt/internal/stl"
	"stt/internal/typelib"
)

var stdOut string

var stdCmd = &cobra.Command{
	Use:   "std",
	Short: "Write the built-in standard libraries to disk",
	Long: `Writes the built-in Std and StrictTypes libraries into the output
directory in the configured output format and stores them in the
registry so other libraries can depend on them.`,
	RunE: runStd,
}

func init() {
	stdCmd.Flags().StringVarP(&stdOut, "out", "o", ".", "Output directory")
	rootCmd.AddCommand(stdCmd)
}

func runStd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	reg, err := openRegistry(cfg, logger)
	if err != nil {
		return err
	}
	defer reg.Close()

	for _, lib := range []*typelib.TypeLib{stl.Std(), stl.StrictTypes()} {
		if err := reg.Put(cmd.Context(), lib); err != nil {
			return err
		}
		path, err := writeLibFiles(cfg, stdOut, lib)
		if err != nil {
			return err
		}
		logger.Info("library written", "name", lib.Name(), "id", lib.Id(), "path", path)
		fmt.Printf("%s -- %s\n", lib.Name(), lib.Id())
	}
	return nil
}
