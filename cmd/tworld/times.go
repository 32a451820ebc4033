package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tileworld/internal/lynx"
	"github.com/vovakirdan/tileworld/internal/registry"
	"github.com/vovakirdan/tileworld/internal/storage"
)

var timesCmd = &cobra.Command{
	Use:   "times [pack]",
	Short: "Show best recorded times",
	Long: `Display the fastest recorded passing run for each level, drawn from the
results database. Without a pack name, every recorded pack is listed.

Examples:
  tworld times
  tworld times CHIPS`,
	Args: cobra.MaximumNArgs(1),
	Run:  runTimes,
}

func runTimes(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	store, err := storage.Open(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	var times []storage.BestTime
	if len(args) == 1 {
		// Results are keyed by set name; accept a file path too.
		name := args[0]
		if p, err := registry.Find(cfg.PacksDir, name); err == nil {
			name = p.Name
		}
		times, err = store.BestTimes(name)
	} else {
		times, err = store.AllBestTimes()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if len(times) == 0 {
		fmt.Println("No passing runs recorded yet.")
		fmt.Println("Run 'tworld verify <pack> <solutions.tws>' to record some.")
		return
	}

	fmt.Printf("  %-10s  %3s  %-36s  %8s  %7s  %s\n", "Pack", "No.", "Title", "Ticks", "Time", "Date")
	fmt.Printf("  %-10s  %3s  %-36s  %8s  %7s  %s\n", "----", "---", "-----", "-----", "----", "----")
	for _, bt := range times {
		seconds := float64(bt.Ticks) / lynx.TicksPerSecond
		fmt.Printf("  %-10s  %3d  %-36s  %8d  %6.1fs  %s\n",
			bt.Pack, bt.Level, bt.Title, bt.Ticks, seconds, bt.CreatedAt.Format("2006-01-02 15:04"))
	}
}
