package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tileworld/internal/config"
	"github.com/vovakirdan/tileworld/internal/lynx"
	"github.com/vovakirdan/tileworld/internal/pack"
	"github.com/vovakirdan/tileworld/internal/registry"
	"github.com/vovakirdan/tileworld/internal/storage"
	"github.com/vovakirdan/tileworld/internal/tws"
)

var (
	flagVerifyLevel     int
	flagVerifyJobs      int
	flagVerifyExportDir string
)

var verifyCmd = &cobra.Command{
	Use:   "verify <pack> <solutions.tws>",
	Short: "Replay recorded solutions",
	Long: `Replay every recorded solution against the pack and report whether the
simulation reaches the exit. Results are recorded in the results
database; a level that passed on the previous recorded run and fails
now is flagged as a regression.

With --export-dir, failing levels additionally get a per-tick trace
file for debugging.

Examples:
  tworld verify CHIPS public_CHIPS-lynx.tws
  tworld verify CHIPS public_CHIPS-lynx.tws --level 34
  tworld verify CHIPS public_CHIPS-lynx.tws --jobs 0 --export-dir traces`,
	Args: cobra.ExactArgs(2),
	Run:  runVerify,
}

func init() {
	verifyCmd.Flags().IntVar(&flagVerifyLevel, "level", 0, "Verify only this level")
	verifyCmd.Flags().IntVar(&flagVerifyJobs, "jobs", 1, "Parallel workers (0 = all CPUs)")
	verifyCmd.Flags().StringVar(&flagVerifyExportDir, "export-dir", "", "Write per-tick traces for failing levels here")
}

// verifyResult is the outcome of replaying one level's solution.
type verifyResult struct {
	Level   int
	Title   string
	Skipped bool // no solution recorded for this level
	Passed  bool
	Cause   string
	Ticks   int
}

func runVerify(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger(cfg)

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
	sols, err := tws.ReadFile(args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	numbers := make([]int, 0, f.Count())
	if flagVerifyLevel > 0 {
		numbers = append(numbers, flagVerifyLevel)
	} else {
		for n := 1; n <= f.Count(); n++ {
			numbers = append(numbers, n)
		}
	}

	// Decode everything up front so the workers only touch their own
	// engine instances.
	type job struct {
		level    *lynx.Level
		solution *tws.Solution
	}
	work := make([]job, len(numbers))
	for i, n := range numbers {
		lv, err := f.Level(n)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading level %d: %v\n", n, err)
			os.Exit(1)
		}
		sol, err := sols.Solution(uint16(n))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error decoding solution for level %d: %v\n", n, err)
			os.Exit(1)
		}
		work[i] = job{level: lv, solution: sol}
	}

	jobCount := flagVerifyJobs
	if jobCount <= 0 {
		jobCount = runtime.NumCPU()
	}

	results := make([]verifyResult, len(work))
	indexes := make(chan int)
	var wg sync.WaitGroup
	for range jobCount {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				results[i] = verifyLevel(work[i].level, work[i].solution, cfg.Engine, p.Name)
			}
		}()
	}
	for i := range work {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	// Recording is best-effort: verification output stands on its own.
	var store *storage.Store
	var previous map[int]storage.Result
	if store, err = storage.Open(cfg.Database); err != nil {
		logger.Warn("results will not be recorded", "err", err)
		store = nil
	} else {
		defer store.Close()
		if previous, err = store.LatestResults(p.Name); err != nil {
			logger.Warn("cannot read previous results", "err", err)
		}
	}

	passed, failed, skipped, regressions := 0, 0, 0, 0
	fmt.Printf("Verifying %s against %s\n", p.Name, args[1])
	fmt.Println()
	for _, r := range results {
		if r.Skipped {
			skipped++
			fmt.Printf("  %3d  %-36s  no solution\n", r.Level, r.Title)
			continue
		}

		status := "FAIL"
		if r.Passed {
			passed++
			status = "pass"
		} else {
			failed++
		}
		note := ""
		if prev, ok := previous[r.Level]; ok && prev.Passed && !r.Passed {
			regressions++
			note = "  REGRESSION"
		}
		fmt.Printf("  %3d  %-36s  %s  %6d ticks  %s%s\n",
			r.Level, r.Title, status, r.Ticks, r.Cause, note)

		if store != nil {
			_, err := store.SaveResult(storage.Result{
				Pack:   p.Name,
				Level:  r.Level,
				Title:  r.Title,
				Passed: r.Passed,
				Reason: r.Cause,
				Ticks:  r.Ticks,
			})
			if err != nil {
				logger.Warn("cannot record result", "level", r.Level, "err", err)
			}
		}
	}

	fmt.Println()
	fmt.Printf("%d passed, %d failed, %d without solution\n", passed, failed, skipped)
	if regressions > 0 {
		fmt.Printf("%d regression(s) against the previous recorded run\n", regressions)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

// verifyLevel replays one solution on a fresh engine instance.
func verifyLevel(lv *lynx.Level, sol *tws.Solution, ec config.EngineConfig, packName string) verifyResult {
	r := verifyResult{Level: lv.Number, Title: lv.Title}
	if sol == nil {
		r.Skipped = true
		return r
	}

	g, err := lynx.NewGame(lv)
	if err != nil {
		r.Cause = err.Error()
		return r
	}
	g.SetSanityChecks(ec.SanityChecks)
	g.SetStrictInit(ec.StrictInit)
	g.SetStrictCloners(ec.StrictCloners)
	g.SetSeed(sol.Seed)
	g.SetStepping(sol.Stepping)
	g.SetSlideDir(lynx.Direction(sol.InitialSlideDir))
	g.Restart()

	var trace *bytes.Buffer
	if flagVerifyExportDir != "" {
		trace = &bytes.Buffer{}
	}

	stepErr := func(input lynx.DirMask) error {
		tick := g.CurrentTime()
		if err := g.Step(input); err != nil {
			return err
		}
		if trace != nil {
			x, y := g.ChipPosition()
			fmt.Fprintf(trace, "%6d  input=%-4s  chip=(%2d,%2d)  chips_left=%d\n",
				tick, maskLetters(input), x, y, g.ChipsLeft())
		}
		return nil
	}

	for input := range sol.Steps() {
		if err := stepErr(input); err != nil {
			r.Cause = err.Error()
			r.Ticks = int(g.CurrentTime())
			return r
		}
		if g.GameOver() {
			break
		}
	}
	// The last recorded press rarely lands on the final tick; keep
	// stepping with idle input until the recorded play time runs out.
	for !g.GameOver() && g.CurrentTime() < sol.TotalTime {
		if err := stepErr(0); err != nil {
			r.Cause = err.Error()
			r.Ticks = int(g.CurrentTime())
			return r
		}
	}

	r.Ticks = int(g.CurrentTime())
	r.Passed = g.EndCause() == lynx.EndComplete
	r.Cause = g.EndCause().String()
	if !r.Passed && trace != nil {
		exportTrace(packName, lv.Number, trace.Bytes(), r.Cause)
	}
	return r
}

// exportTrace writes a failing level's per-tick trace for debugging.
func exportTrace(packName string, level int, trace []byte, cause string) {
	if err := os.MkdirAll(flagVerifyExportDir, 0o755); err != nil {
		return
	}
	path := filepath.Join(flagVerifyExportDir, fmt.Sprintf("%s-%03d.log", packName, level))
	out := append(trace, fmt.Sprintf("end: %s\n", cause)...)
	_ = os.WriteFile(path, out, 0o644)
}

// maskLetters renders an input mask as direction letters.
func maskLetters(m lynx.DirMask) string {
	if m == 0 {
		return "-"
	}
	letters := ""
	for d, l := range "NWSE" {
		if m&(1<<d) != 0 {
			letters += string(l)
		}
	}
	return letters
}
