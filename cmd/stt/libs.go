package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var libsCmd = &cobra.Command{
	Use:   "libs",
	Short: "List the libraries stored in the registry",
	RunE:  runLibs,
}

func init() {
	rootCmd.AddCommand(libsCmd)
}

func runLibs(cmd *cobra.Command, args []string) error {
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

	records, err := reg.List(cmd.Context())
	if err != nil {
		return err
	}
	for _, rec := range records {
		fmt.Printf("%s -- %s (stored %s)\n",
			rec.Name, rec.Id, rec.CreatedAt.Format("2006-01-02 15:04"))
	}
	if len(records) == 0 {
		fmt.Println("registry is empty")
	}
	return nil
}
