package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tileworld/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List packs in the packs directory",
	Long:  `Shows every readable level pack found in the configured packs directory.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	packs, err := registry.Scan(cfg.PacksDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if len(packs) == 0 {
		fmt.Printf("No packs found in %s.\n", cfg.PacksDir)
		fmt.Println("Run 'tworld convert <in.dat> <out.twp>' to create one.")
		return
	}

	maxNameLen := len("Name")
	for _, p := range packs {
		if len(p.Name) > maxNameLen {
			maxNameLen = len(p.Name)
		}
	}

	fmt.Printf("  %-*s  %6s  %s\n", maxNameLen, "Name", "Levels", "Path")
	fmt.Printf("  %-*s  %6s  %s\n", maxNameLen, "----", "------", "----")
	for _, p := range packs {
		fmt.Printf("  %-*s  %6d  %s\n", maxNameLen, p.Name, p.Levels, p.Path)
	}
}
