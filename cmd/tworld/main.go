// tworld is the workstation tool chest for Lynx-ruleset level packs.
//
// Usage:
//
//	tworld list                        - List packs in the packs directory
//	tworld info <pack>                 - Show a pack's level table
//	tworld convert <in.dat> <out.twp>  - Import an MS DAT level set
//	tworld verify <pack> <file.tws>    - Replay recorded solutions
//	tworld times <pack>                - Show best recorded times
//
// Global flags:
//
//	--config <path>  - Config file (default: search order, see internal/config)
//	--packs <dir>    - Packs directory (overrides config)
//	--db <path>      - Results database (overrides config)
//	--verbose        - Debug logging
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tileworld/internal/config"
)

var (
	// Global flags
	flagConfig   string
	flagPacksDir string
	flagDBPath   string
	flagVerbose  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tworld",
	Short: "Tile World level pack and solution tools",
	Long: `tworld converts, inspects and verifies Lynx-ruleset level packs.

Available commands:
  list     - Show packs found in the packs directory
  info     - Show a pack's level table or one level in detail
  convert  - Import an MS DAT level set into the native pack format
  verify   - Replay recorded solutions and record the results
  times    - Show the best recorded completion times

Examples:
  tworld list
  tworld info CHIPS
  tworld convert CHIPS.DAT packs/chips.twp
  tworld verify CHIPS public_CHIPS-lynx.tws
  tworld times CHIPS`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&flagPacksDir, "packs", "", "Packs directory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to results database (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(timesCmd)
}

// loadConfig resolves the effective configuration: file values with the
// global flag overrides applied on top.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if flagPacksDir != "" {
		cfg.PacksDir = flagPacksDir
	}
	if flagDBPath != "" {
		cfg.Database = flagDBPath
	}
	return cfg
}

// newLogger builds the CLI logger honoring the configured level and the
// --verbose flag.
func newLogger(cfg config.Config) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
	})
	if lvl, err := log.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(lvl)
	}
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
