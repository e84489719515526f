package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"stt/internal/armor"
	"stt/internal/config"
	"stt/internal/logging"
	"stt/internal/registry"
	"stt/internal/typelib"
	"stt/internal/typesys"
)

var (
	// workDir is the CLI --dir flag value
	workDir string
	// logLevel is the CLI --log-level flag value
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "stt",
	Short: "stt - strict type system tool",
	Long: `stt compiles strict type libraries, merges them into complete type
systems and manages their content-addressed identities. Libraries are
authored as TOML declaration files or produced programmatically; the
tool compiles, stores, exports and inspects them.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&workDir, "dir", ".",
		"Working directory holding .stt.toml and the data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Log level override: debug, info, warn, or error")
}

// loadConfig reads the tool configuration from the working directory.
func loadConfig() (*config.Config, error) {
	return config.Load(workDir)
}

// newLogger builds the CLI logger on stderr, honoring --log-level over
// the configured level.
func newLogger(cfg *config.Config) *slog.Logger {
	return logging.New(os.Stderr, cfg, logLevel)
}

// openRegistry opens the library registry under the data directory.
func openRegistry(cfg *config.Config, logger *slog.Logger) (*registry.Registry, error) {
	return registry.Open(cfg.DataDir, logger)
}

// Armor fence labels of the two exportable entities.
const (
	libArmorLabel = "STRICT TYPE LIB"
	sysArmorLabel = "STRICT TYPE SYSTEM"
)

// readLibFile loads a compiled library from a binary .stl or armored
// .sta file.
func readLibFile(path string) (*typelib.TypeLib, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.HasPrefix(strings.TrimSpace(string(data)), "-----BEGIN ") {
		block, err := armor.Dearmor(string(data))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if block.Label != libArmorLabel {
			return nil, fmt.Errorf("%s: armored block is a %q, not a type library", path, block.Label)
		}
		data = block.Data
	}
	lib, err := typelib.Deserialize(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lib, nil
}

// readSysFile loads a type system from a binary .sts or armored file.
func readSysFile(path string) (*typesys.TypeSystem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.HasPrefix(strings.TrimSpace(string(data)), "-----BEGIN ") {
		block, err := armor.Dearmor(string(data))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if block.Label != sysArmorLabel {
			return nil, fmt.Errorf("%s: armored block is a %q, not a type system", path, block.Label)
		}
		data = block.Data
	}
	sys, err := typesys.Deserialize(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sys, nil
}

// writeLibFiles writes a compiled library into dir in the configured
// format and returns the written path.
func writeLibFiles(cfg *config.Config, dir string, lib *typelib.TypeLib) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	data := lib.Serialize()
	id := lib.Id().String()
	var path string
	var out []byte
	switch cfg.Output.Format {
	case "bin":
		path = fmt.Sprintf("%s/%s.stl", dir, lib.Name())
		out = data
	case "armor":
		path = fmt.Sprintf("%s/%s.sta", dir, lib.Name())
		out = []byte(armor.Enarmor(libArmorLabel, id, data))
	case "zstd":
		path = fmt.Sprintf("%s/%s.sta", dir, lib.Name())
		armored, err := armor.EnarmorZstd(libArmorLabel, id, data)
		if err != nil {
			return "", err
		}
		out = []byte(armored)
	}
	return path, os.WriteFile(path, out, 0644)
}
