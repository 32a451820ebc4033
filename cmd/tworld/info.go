package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tileworld/internal/lynx"
	"github.com/vovakirdan/tileworld/internal/pack"
	"github.com/vovakirdan/tileworld/internal/registry"
)

var flagInfoLevel int

var infoCmd = &cobra.Command{
	Use:   "info <pack>",
	Short: "Show a pack's level table",
	Long: `Display the level table of a pack: number, title, password, required
chips and time limit. With --level, show one level in detail instead.

The pack may be given as a file path or as a set name from the packs
directory.

Examples:
  tworld info CHIPS
  tworld info packs/chips.twp --level 34`,
	Args: cobra.ExactArgs(1),
	Run:  runInfo,
}

func init() {
	infoCmd.Flags().IntVar(&flagInfoLevel, "level", 0, "Show this level in detail")
}

func runInfo(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	p, err := registry.Find(cfg.PacksDir, args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	f, err := pack.ReadFile(p.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flagInfoLevel > 0 {
		lv, err := f.Level(flagInfoLevel)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		printLevelDetail(f.Name(), lv)
		return
	}

	fmt.Printf("%s - %d levels (%s)\n", f.Name(), f.Count(), p.Path)
	fmt.Println()
	fmt.Printf("  %3s  %-36s  %-4s  %5s  %s\n", "No.", "Title", "Pass", "Chips", "Time")
	fmt.Printf("  %3s  %-36s  %-4s  %5s  %s\n", "---", "-----", "----", "-----", "----")
	for n := 1; n <= f.Count(); n++ {
		lv, err := f.Level(n)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading level %d: %v\n", n, err)
			os.Exit(1)
		}
		fmt.Printf("  %3d  %-36s  %-4s  %5d  %s\n",
			lv.Number, lv.Title, lv.Password, lv.RequiredChips, formatTimeLimit(lv.TimeLimit))
	}
}

func printLevelDetail(packName string, lv *lynx.Level) {
	fmt.Printf("%s level %d\n", packName, lv.Number)
	fmt.Println()
	fmt.Printf("  Title:      %s\n", lv.Title)
	fmt.Printf("  Password:   %s\n", lv.Password)
	fmt.Printf("  Chips:      %d\n", lv.RequiredChips)
	fmt.Printf("  Time limit: %s\n", formatTimeLimit(lv.TimeLimit))
	if lv.Hint != "" {
		fmt.Printf("  Hint:       %s\n", lv.Hint)
	}
	fmt.Printf("  Links:      %d trap, %d cloner\n", len(lv.TrapLinks), len(lv.ClonerLinks))

	actors := 0
	for _, a := range lv.Top {
		if e := a.Entity(); e == lynx.EntityChip || e.OnActorList() {
			actors++
		}
	}
	fmt.Printf("  Actors:     %d\n", actors)
}

// formatTimeLimit renders a tick count as seconds, or "none" for an
// untimed level.
func formatTimeLimit(ticks uint16) string {
	if ticks == 0 {
		return "none"
	}
	return fmt.Sprintf("%d s", ticks/lynx.TicksPerSecond)
}
