package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"stt/internal/layout"
	"stt/internal/sty"
)

var dumpLayout string

var dumpCmd = &cobra.Command{
	Use:   "dump <file>",
	Short: "Render a library or type system file in readable form",
	Long: `Reads a compiled library (.stl/.sta) or type system (.sts) file and
prints its textual rendering. With --layout, prints the memory layout
tree of one type in the system instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runDump,
}

func init() {
	dumpCmd.Flags().StringVar(&dumpLayout, "layout", "",
		"Semantic id of a system type to render as a layout tree")
	rootCmd.AddCommand(dumpCmd)
}

func runDump(cmd *cobra.Command, args []string) error {
	path := args[0]
	if strings.HasSuffix(path, ".stl") {
		lib, err := readLibFile(path)
		if err != nil {
			return err
		}
		fmt.Println(lib)
		return nil
	}

	// A .sta fence may wrap either entity, so try the library decoding
	// first and fall back to the system one.
	if strings.HasSuffix(path, ".sta") {
		if lib, err := readLibFile(path); err == nil {
			fmt.Println(lib)
			return nil
		}
	}

	sys, err := readSysFile(path)
	if err != nil {
		return err
	}
	if dumpLayout == "" {
		fmt.Println(sys)
		return nil
	}

	id, err := sty.ParseSemId(dumpLayout)
	if err != nil {
		return err
	}
	tl, err := layout.TreeOf(sys, id)
	if err != nil {
		return err
	}
	fmt.Println(tl)
	return nil
}
