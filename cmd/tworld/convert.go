package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tileworld/internal/dat"
	"github.com/vovakirdan/tileworld/internal/pack"
)

var (
	flagConvertName        string
	flagConvertGhostBlocks bool
	flagConvertStrict      bool
)

var convertCmd = &cobra.Command{
	Use:   "convert <in.dat> <out.twp>",
	Short: "Import an MS DAT level set",
	Long: `Convert an MS format level set into the native pack format, applying
the level preprocessing the simulation expects: unlinked traps and
cloners are neutralized and permanently pinned monsters and blocks are
turned static.

Cells that cannot be mapped are substituted with a near equivalent and
reported; with --strict, any substitution fails the conversion.

Examples:
  tworld convert CHIPS.DAT packs/chips.twp
  tworld convert CCLP1.DAT packs/cclp1.twp --name CCLP1 --strict`,
	Args: cobra.ExactArgs(2),
	Run:  runConvert,
}

func init() {
	convertCmd.Flags().StringVar(&flagConvertName, "name", "", "Pack display name (default: output file name)")
	convertCmd.Flags().BoolVar(&flagConvertGhostBlocks, "ghost-blocks", false, "Turn untouchable blocks into ghost blocks")
	convertCmd.Flags().BoolVar(&flagConvertStrict, "strict", false, "Fail on any substituted cell")
}

func runConvert(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger(cfg)
	inPath, outPath := args[0], args[1]

	ghostBlocks := cfg.Convert.GhostBlocks
	if cmd.Flags().Changed("ghost-blocks") {
		ghostBlocks = flagConvertGhostBlocks
	}
	strict := cfg.Convert.Strict
	if cmd.Flags().Changed("strict") {
		strict = flagConvertStrict
	}

	name := flagConvertName
	if name == "" {
		base := filepath.Base(outPath)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	levels, err := dat.ReadFile(inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("read level set", "file", inPath, "levels", len(levels))

	w, err := pack.NewWriter(name, len(levels))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	conv := dat.NewConverter()
	conv.SetLogger(logger)
	conv.SetGhostBlocks(ghostBlocks)

	for _, ms := range levels {
		lv := conv.Convert(ms)
		if err := w.WriteLevel(lv); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing level %d: %v\n", lv.Number, err)
			os.Exit(1)
		}
	}

	if conv.Errors() > 0 || conv.Warnings() > 0 {
		logger.Warn("conversion finished with issues",
			"errors", conv.Errors(), "warnings", conv.Warnings())
	}
	if strict && conv.Errors() > 0 {
		fmt.Fprintf(os.Stderr, "Error: %d cells could not be converted faithfully\n", conv.Errors())
		os.Exit(1)
	}

	if err := w.WriteFile(outPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d levels to %s (%d bytes)\n", len(levels), outPath, len(w.Bytes()))
}
