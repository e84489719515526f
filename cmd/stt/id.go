package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"stt/internal/sty"
	"stt/internal/typelib"
	"stt/internal/typesys"
)

var idCmd = &cobra.Command{
	Use:   "id <urn>",
	Short: "Verify and re-render a type, library or system identifier",
	Long: `Parses a semantic type id, library id or system id URN, verifies its
checksum and mnemonic, and prints the canonical rendering together
with the raw hex digest. Mnemonic suffixes follow the output.mnemonics
configuration setting.`,
	Args: cobra.ExactArgs(1),
	RunE: runId,
}

func init() {
	rootCmd.AddCommand(idCmd)
}

func runId(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	mn := cfg.Output.Mnemonics

	s := args[0]
	if id, err := sty.ParseSemId(s); err == nil {
		fmt.Printf("semantic type id\n%s\n%s\n", id.URN(mn), id.Hex())
		return nil
	}
	if id, err := typelib.ParseLibId(s); err == nil {
		fmt.Printf("type library id\n%s\n%x\n", id.URN(mn), id[:])
		return nil
	}
	if id, err := typesys.ParseTypeSysId(s); err == nil {
		fmt.Printf("type system id\n%s\n%x\n", id.URN(mn), id[:])
		return nil
	}
	return errors.New("not a valid strict types identifier: " + s)
}
